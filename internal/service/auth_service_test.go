package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/cryptobloom/backend/internal/auth"
	"github.com/cryptobloom/backend/internal/config"
	"github.com/cryptobloom/backend/internal/domain"
	apperrors "github.com/cryptobloom/backend/pkg/util"
)

func newTestAuthService(users *memUsers) *AuthService {
	return NewAuthService(config.AuthConfig{
		JWTSecret:             "auth-service-test-secret",
		AccessTokenTTLMinutes: 60,
		BcryptCost:            bcrypt.MinCost,
	}, users, nil)
}

func TestRegisterDefaults(t *testing.T) {
	users := newMemUsers()
	svc := newTestAuthService(users)

	user, token, _, err := svc.Register(context.Background(), "alice", "Alice@Example.COM", "secret1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@example.com", user.Email, "email is lowercase-normalized")
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.Equal(t, domain.DefaultWalletBalance, user.Wallet)
	assert.True(t, user.IsActive)
	assert.False(t, user.EmailVerified)

	assert.NotEqual(t, "secret1", user.PasswordHash, "plaintext must never be stored")
	assert.NoError(t, auth.ComparePassword(user.PasswordHash, "secret1"))
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name     string
		username string
		email    string
		password string
	}{
		{"short username", "ab", "a@example.com", "secret1"},
		{"long username", "abcdefghijklmnopqrstuvwxyz-abcde", "a@example.com", "secret1"},
		{"bad email", "alice", "not-an-email", "secret1"},
		{"short password", "alice", "a@example.com", "12345"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestAuthService(newMemUsers())
			_, _, _, err := svc.Register(context.Background(), tt.username, tt.email, tt.password)
			require.Error(t, err)

			de := apperrors.ToDomainError(err)
			assert.Equal(t, "VALIDATION_FAILED", de.Code)
		})
	}
}

func TestRegisterDuplicates(t *testing.T) {
	users := newMemUsers()
	svc := newTestAuthService(users)

	_, _, _, err := svc.Register(context.Background(), "alice", "alice@example.com", "secret1")
	require.NoError(t, err)

	_, _, _, err = svc.Register(context.Background(), "alice2", "alice@example.com", "secret1")
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperrors.ToDomainError(err).Code)

	_, _, _, err = svc.Register(context.Background(), "alice", "other@example.com", "secret1")
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperrors.ToDomainError(err).Code)
}

func TestLogin(t *testing.T) {
	users := newMemUsers()
	svc := newTestAuthService(users)

	registered, _, _, err := svc.Register(context.Background(), "alice", "alice@example.com", "secret1")
	require.NoError(t, err)

	user, token, _, err := svc.Login(context.Background(), "ALICE@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.NotEmpty(t, token)

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, claims.UserID)
}

func TestLoginFailuresAreUniform(t *testing.T) {
	users := newMemUsers()
	svc := newTestAuthService(users)

	_, _, _, err := svc.Register(context.Background(), "alice", "alice@example.com", "secret1")
	require.NoError(t, err)

	_, _, _, wrongPassword := svc.Login(context.Background(), "alice@example.com", "nope")
	require.Error(t, wrongPassword)
	_, _, _, unknownEmail := svc.Login(context.Background(), "nobody@example.com", "secret1")
	require.Error(t, unknownEmail)

	// Unknown account and wrong password are indistinguishable to the caller.
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestLoginDeactivatedAccount(t *testing.T) {
	users := newMemUsers()
	svc := newTestAuthService(users)

	user, _, _, err := svc.Register(context.Background(), "alice", "alice@example.com", "secret1")
	require.NoError(t, err)
	require.NoError(t, users.SetActive(context.Background(), user.ID, false))

	_, _, _, err = svc.Login(context.Background(), "alice@example.com", "secret1")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperrors.ToDomainError(err).Code)
}

func TestChangePassword(t *testing.T) {
	users := newMemUsers()
	svc := newTestAuthService(users)

	user, _, _, err := svc.Register(context.Background(), "alice", "alice@example.com", "secret1")
	require.NoError(t, err)
	oldHash := user.PasswordHash

	require.Error(t, svc.ChangePassword(context.Background(), user.ID, "wrong", "newsecret"))

	require.NoError(t, svc.ChangePassword(context.Background(), user.ID, "secret1", "newsecret"))
	stored, err := users.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, oldHash, stored.PasswordHash)
	assert.NoError(t, auth.ComparePassword(stored.PasswordHash, "newsecret"))
	assert.Error(t, auth.ComparePassword(stored.PasswordHash, "secret1"))
}

func TestProfileUpdateKeepsHash(t *testing.T) {
	users := newMemUsers()
	authSvc := newTestAuthService(users)
	userSvc := NewUserService(users)

	user, _, _, err := authSvc.Register(context.Background(), "alice", "alice@example.com", "secret1")
	require.NoError(t, err)
	originalHash := user.PasswordHash

	newName := "alice-renamed"
	_, err = userSvc.UpdateProfile(context.Background(), user.ID, ProfileUpdate{Username: &newName})
	require.NoError(t, err)

	stored, err := users.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice-renamed", stored.Username)
	// A profile-only save must never rewrite the credential.
	assert.Equal(t, originalHash, stored.PasswordHash)

	_, _, _, err = authSvc.Login(context.Background(), "alice@example.com", "secret1")
	assert.NoError(t, err)
}
