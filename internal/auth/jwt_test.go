package auth

import (
	"testing"
	"time"

	"github.com/Domenick1991/carrental/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	manager := NewTokenManager("secret", time.Hour)
	userID := uuid.New()

	token, err := manager.CreateToken(userID, domain.RoleOwner)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	identity, err := manager.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, identity.ID)
	assert.Equal(t, domain.RoleOwner, identity.Role)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	minted := NewTokenManager("secret-a", time.Hour)
	verifier := NewTokenManager("secret-b", time.Hour)

	token, err := minted.CreateToken(uuid.New(), domain.RoleUser)
	require.NoError(t, err)

	identity, err := verifier.ValidateToken(token)
	assert.Nil(t, identity)
	assert.Error(t, err)
}

func TestTokenManager_ExpiredToken(t *testing.T) {
	manager := NewTokenManager("secret", -time.Minute)

	token, err := manager.CreateToken(uuid.New(), domain.RoleUser)
	require.NoError(t, err)

	identity, err := manager.ValidateToken(token)
	assert.Nil(t, identity)
	assert.Error(t, err)
}

func TestTokenManager_GarbageToken(t *testing.T) {
	manager := NewTokenManager("secret", time.Hour)

	for _, tokenStr := range []string{"", "not-a-jwt", "aaa.bbb.ccc"} {
		identity, err := manager.ValidateToken(tokenStr)
		assert.Nil(t, identity)
		assert.Error(t, err)
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", hash)

	assert.True(t, CheckPassword(hash, "password123"))
	assert.False(t, CheckPassword(hash, "Password123"))
	assert.False(t, CheckPassword(hash, ""))
}
