package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	apperrors "assignment-tracker.com/assignment-tracker/internal/errors"
	repository "assignment-tracker.com/assignment-tracker/internal/repositories"
)

func newAuthService(t *testing.T) *AuthService {
	return NewAuthService(repository.NewUserRepository(setupTestDB(t)))
}

func TestRegisterStoresSaltedHash(t *testing.T) {
	s := newAuthService(t)

	user, err := s.Register(context.Background(), "alice", "correct-horse")
	require.NoError(t, err)

	assert.NotEqual(t, "correct-horse", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("correct-horse")))
}

func TestRegisterDuplicateUsername(t *testing.T) {
	s := newAuthService(t)
	ctx := context.Background()

	_, err := s.Register(ctx, "bob", "password123")
	require.NoError(t, err)

	_, err = s.Register(ctx, "bob", "different-pass")
	assert.ErrorIs(t, err, apperrors.ErrUsernameTaken)
}

func TestLoginSuccess(t *testing.T) {
	s := newAuthService(t)
	ctx := context.Background()

	registered, err := s.Register(ctx, "carol", "password123")
	require.NoError(t, err)

	user, err := s.Login(ctx, "carol", "password123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	s := newAuthService(t)
	ctx := context.Background()

	_, err := s.Register(ctx, "dave", "password123")
	require.NoError(t, err)

	_, wrongPass := s.Login(ctx, "dave", "not-the-password")
	_, unknownUser := s.Login(ctx, "nobody", "password123")

	assert.ErrorIs(t, wrongPass, apperrors.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownUser, apperrors.ErrInvalidCredentials)
	assert.Equal(t, wrongPass.Error(), unknownUser.Error())
}
