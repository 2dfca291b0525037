package users

import (
	"context"
	"testing"
	"time"

	"github.com/Domenick1991/carrental/internal/auth"
	"github.com/Domenick1991/carrental/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, id uuid.UUID, role domain.Role) (*domain.User, error) {
	args := m.Called(ctx, id, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateImage(ctx context.Context, id uuid.UUID, imageURL string) error {
	args := m.Called(ctx, id, imageURL)
	return args.Error(0)
}

func testTokens() *auth.TokenManager {
	return auth.NewTokenManager("test-secret", time.Hour)
}

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects incomplete input", func(t *testing.T) {
		service := NewUserService(&MockUserRepository{}, testTokens())

		for _, input := range []RegisterInput{
			{Email: "a@b.com", Password: "password123"},
			{Name: "Ann", Password: "password123"},
			{Name: "Ann", Email: "a@b.com", Password: "short"},
		} {
			token, err := service.Register(ctx, input)
			assert.Empty(t, token)
			assert.ErrorIs(t, err, domain.ErrValidation)
		}
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		mockUsers := &MockUserRepository{}
		service := NewUserService(mockUsers, testTokens())

		existing := &domain.User{ID: uuid.New(), Email: "ann@example.com"}
		mockUsers.On("GetByEmail", ctx, "ann@example.com").Return(existing, nil).Once()

		token, err := service.Register(ctx, RegisterInput{Name: "Ann", Email: "Ann@Example.com", Password: "password123"})
		assert.Empty(t, token)
		assert.ErrorIs(t, err, domain.ErrValidation)
		mockUsers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("store outage on the email check is not treated as email free", func(t *testing.T) {
		mockUsers := &MockUserRepository{}
		service := NewUserService(mockUsers, testTokens())

		mockUsers.On("GetByEmail", ctx, "ann@example.com").Return(nil, domain.ErrStoreUnavailable).Once()

		token, err := service.Register(ctx, RegisterInput{Name: "Ann", Email: "ann@example.com", Password: "password123"})
		assert.Empty(t, token)
		assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
		mockUsers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("racing duplicate registration reads as a validation error", func(t *testing.T) {
		mockUsers := &MockUserRepository{}
		service := NewUserService(mockUsers, testTokens())

		mockUsers.On("GetByEmail", ctx, "ann@example.com").Return(nil, domain.ErrNotFound).Once()
		mockUsers.On("Create", ctx, mock.Anything).Return(domain.ErrConflict).Once()

		token, err := service.Register(ctx, RegisterInput{Name: "Ann", Email: "ann@example.com", Password: "password123"})
		assert.Empty(t, token)
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.NotErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("creates user with hashed password and lowercased email", func(t *testing.T) {
		mockUsers := &MockUserRepository{}
		tokens := testTokens()
		service := NewUserService(mockUsers, tokens)

		mockUsers.On("GetByEmail", ctx, "ann@example.com").Return(nil, domain.ErrNotFound).Once()
		mockUsers.On("Create", ctx, mock.MatchedBy(func(user *domain.User) bool {
			return user.Email == "ann@example.com" &&
				user.Role == domain.RoleUser &&
				user.PasswordHash != "password123" &&
				auth.CheckPassword(user.PasswordHash, "password123")
		})).Return(nil).Once()

		token, err := service.Register(ctx, RegisterInput{Name: "Ann", Email: "Ann@Example.com", Password: "password123"})
		require.NoError(t, err)

		identity, err := tokens.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleUser, identity.Role)
		mockUsers.AssertExpectations(t)
	})
}

func TestUserService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown email", func(t *testing.T) {
		mockUsers := &MockUserRepository{}
		service := NewUserService(mockUsers, testTokens())

		mockUsers.On("GetByEmail", ctx, "ghost@example.com").Return(nil, domain.ErrNotFound).Once()

		token, err := service.Login(ctx, LoginInput{Email: "ghost@example.com", Password: "password123"})
		assert.Empty(t, token)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("wrong password", func(t *testing.T) {
		mockUsers := &MockUserRepository{}
		service := NewUserService(mockUsers, testTokens())

		hash, err := auth.HashPassword("password123")
		require.NoError(t, err)
		user := &domain.User{ID: uuid.New(), Email: "ann@example.com", PasswordHash: hash, Role: domain.RoleUser}
		mockUsers.On("GetByEmail", ctx, "ann@example.com").Return(user, nil).Once()

		token, err := service.Login(ctx, LoginInput{Email: "ann@example.com", Password: "not-the-password"})
		assert.Empty(t, token)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("valid credentials mint a token for the stored role", func(t *testing.T) {
		mockUsers := &MockUserRepository{}
		tokens := testTokens()
		service := NewUserService(mockUsers, tokens)

		hash, err := auth.HashPassword("password123")
		require.NoError(t, err)
		user := &domain.User{ID: uuid.New(), Email: "ann@example.com", PasswordHash: hash, Role: domain.RoleOwner}
		mockUsers.On("GetByEmail", ctx, "ann@example.com").Return(user, nil).Once()

		token, err := service.Login(ctx, LoginInput{Email: "Ann@Example.com", Password: "password123"})
		require.NoError(t, err)

		identity, err := tokens.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, identity.ID)
		assert.Equal(t, domain.RoleOwner, identity.Role)
	})
}

func TestUserService_BecomeOwner(t *testing.T) {
	ctx := context.Background()
	mockUsers := &MockUserRepository{}
	tokens := testTokens()
	service := NewUserService(mockUsers, tokens)

	identity := domain.Identity{ID: uuid.New(), Role: domain.RoleUser}
	promoted := &domain.User{ID: identity.ID, Email: "ann@example.com", Role: domain.RoleOwner}
	mockUsers.On("UpdateRole", ctx, identity.ID, domain.RoleOwner).Return(promoted, nil).Once()

	user, token, err := service.BecomeOwner(ctx, identity)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleOwner, user.Role)

	// the fresh token carries the new role
	fresh, err := tokens.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleOwner, fresh.Role)
}

func TestUserService_UpdateImage(t *testing.T) {
	ctx := context.Background()
	identity := domain.Identity{ID: uuid.New(), Role: domain.RoleUser}

	t.Run("empty url is rejected", func(t *testing.T) {
		service := NewUserService(&MockUserRepository{}, testTokens())

		err := service.UpdateImage(ctx, identity, "")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("stores the url", func(t *testing.T) {
		mockUsers := &MockUserRepository{}
		service := NewUserService(mockUsers, testTokens())

		mockUsers.On("UpdateImage", ctx, identity.ID, "https://img.example.com/u.png").Return(nil).Once()

		err := service.UpdateImage(ctx, identity, "https://img.example.com/u.png")
		require.NoError(t, err)
		mockUsers.AssertExpectations(t)
	})
}

func TestUserService_ResolveIdentity(t *testing.T) {
	ctx := context.Background()
	mockUsers := &MockUserRepository{}
	service := NewUserService(mockUsers, testTokens())

	userID := uuid.New()
	mockUsers.On("GetByID", ctx, userID).Return(&domain.User{ID: userID, Role: domain.RoleOwner}, nil).Once()

	identity, err := service.ResolveIdentity(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, userID, identity.ID)
	assert.Equal(t, domain.RoleOwner, identity.Role)

	mockUsers.On("GetByID", ctx, userID).Return(nil, domain.ErrNotFound).Once()
	identity, err = service.ResolveIdentity(ctx, userID)
	assert.Nil(t, identity)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
