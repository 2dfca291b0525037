package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Domenick1991/carrental/internal/auth"
	"github.com/Domenick1991/carrental/internal/domain"
	"github.com/Domenick1991/carrental/internal/repository"
	"github.com/google/uuid"
)

type UserUseCase interface {
	Register(ctx context.Context, input RegisterInput) (string, error)
	Login(ctx context.Context, input LoginInput) (string, error)
	Get(ctx context.Context, identity domain.Identity) (*domain.User, error)
	BecomeOwner(ctx context.Context, identity domain.Identity) (*domain.User, string, error)
	UpdateImage(ctx context.Context, identity domain.Identity, imageURL string) error
	ResolveIdentity(ctx context.Context, id uuid.UUID) (*domain.Identity, error)
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserService struct {
	users  repository.UserRepository
	tokens *auth.TokenManager
}

func NewUserService(users repository.UserRepository, tokens *auth.TokenManager) *UserService {
	return &UserService{users: users, tokens: tokens}
}

func (s *UserService) Register(ctx context.Context, input RegisterInput) (string, error) {
	if input.Name == "" || input.Email == "" || len(input.Password) < 8 {
		return "", fmt.Errorf("%w: fill all the fields, password must be at least 8 characters", domain.ErrValidation)
	}

	// a store outage must not read as "email free"
	switch _, err := s.users.GetByEmail(ctx, strings.ToLower(input.Email)); {
	case err == nil:
		return "", fmt.Errorf("%w: user already exists", domain.ErrValidation)
	case !errors.Is(err, domain.ErrNotFound):
		return "", err
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return "", err
	}

	user := &domain.User{
		ID:           uuid.New(),
		Name:         input.Name,
		Email:        strings.ToLower(input.Email),
		PasswordHash: hash,
		Role:         domain.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// unique violation from a racing registration of the same email
		if errors.Is(err, domain.ErrConflict) {
			return "", fmt.Errorf("%w: user already exists", domain.ErrValidation)
		}
		return "", err
	}

	return s.tokens.CreateToken(user.ID, user.Role)
}

func (s *UserService) Login(ctx context.Context, input LoginInput) (string, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(input.Email))
	if err != nil {
		return "", fmt.Errorf("%w: user not found", domain.ErrUnauthorized)
	}

	if !auth.CheckPassword(user.PasswordHash, input.Password) {
		return "", fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
	}

	return s.tokens.CreateToken(user.ID, user.Role)
}

func (s *UserService) Get(ctx context.Context, identity domain.Identity) (*domain.User, error) {
	return s.users.GetByID(ctx, identity.ID)
}

// BecomeOwner flips the caller's role and mints a fresh token so the
// role claim matches the store again.
func (s *UserService) BecomeOwner(ctx context.Context, identity domain.Identity) (*domain.User, string, error) {
	user, err := s.users.UpdateRole(ctx, identity.ID, domain.RoleOwner)
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.CreateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// UpdateImage stores the already-uploaded image location. Upload and
// transformation happen in an external image service; only the opaque
// URL lands here.
func (s *UserService) UpdateImage(ctx context.Context, identity domain.Identity, imageURL string) error {
	if imageURL == "" {
		return fmt.Errorf("%w: image url is required", domain.ErrValidation)
	}
	return s.users.UpdateImage(ctx, identity.ID, imageURL)
}

// ResolveIdentity backs the auth middleware's per-request lookup.
func (s *UserService) ResolveIdentity(ctx context.Context, id uuid.UUID) (*domain.Identity, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &domain.Identity{ID: user.ID, Role: user.Role}, nil
}

var _ UserUseCase = (*UserService)(nil)
