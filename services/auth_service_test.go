package services

import (
	"testing"
	"time"

	"blog-platform-api/models"
	"blog-platform-api/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthService(t *testing.T) (AuthService, TokenService) {
	t.Helper()
	store := repositories.NewMemoryStore()
	tokens := NewTokenService([]byte("test-secret"), time.Hour)
	return NewAuthService(store.Users(), NewPasswordHasher(), tokens), tokens
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	auth, tokens := newTestAuthService(t)

	registered, err := auth.Register(models.RegisterInput{
		Email:    "test@example.com",
		Password: "password123",
		Name:     "Test User",
	})
	require.NoError(t, err)
	require.NotEmpty(t, registered.Token)
	assert.Equal(t, models.RoleUser, registered.User.Role)

	payload, err := auth.Login(models.LoginInput{Email: "test@example.com", Password: "password123"})
	require.NoError(t, err)
	require.NotEmpty(t, payload.Token)
	assert.Equal(t, "test@example.com", payload.User.Email)

	// The token round-trips to the same identity.
	claims, err := tokens.Verify(payload.Token)
	require.NoError(t, err)
	assert.Equal(t, payload.User.ID, claims.UserID)
	assert.Equal(t, "test@example.com", claims.Email)
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	auth, _ := newTestAuthService(t)

	_, err := auth.Register(models.RegisterInput{
		Email:    "test@example.com",
		Password: "password123",
		Name:     "Test User",
	})
	require.NoError(t, err)

	_, err = auth.Login(models.LoginInput{Email: "test@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
}

func TestAuthService_LoginUnknownEmail(t *testing.T) {
	auth, _ := newTestAuthService(t)

	// Same error as a wrong password: the response must not reveal whether
	// the email exists.
	_, err := auth.Login(models.LoginInput{Email: "nobody@example.com", Password: "password123"})
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	auth, _ := newTestAuthService(t)

	_, err := auth.Register(models.RegisterInput{
		Email:    "test@example.com",
		Password: "password123",
		Name:     "Test User",
	})
	require.NoError(t, err)

	_, err = auth.Register(models.RegisterInput{
		Email:    "test@example.com",
		Password: "another-password",
		Name:     "Impostor",
	})
	var conflict *models.ConflictError
	assert.ErrorAs(t, err, &conflict)
}
