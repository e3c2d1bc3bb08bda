package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-signing-secret"

func TestGenerateAndParseToken(t *testing.T) {
	tm := NewTokenManager(testSecret, 60)

	token, exp, err := tm.GenerateToken("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "user-123", claims.Subject)
}

func TestParseTokenWrongSecret(t *testing.T) {
	issuer := NewTokenManager(testSecret, 60)
	verifier := NewTokenManager("a-different-secret", 60)

	token, _, err := issuer.GenerateToken("user-123")
	require.NoError(t, err)

	_, err = verifier.ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenExpired(t *testing.T) {
	tm := NewTokenManager(testSecret, 60)

	claims := &Claims{
		UserID: "user-123",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-123",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = tm.ParseToken(expired)
	assert.Error(t, err)
}

func TestParseTokenMalformed(t *testing.T) {
	tm := NewTokenManager(testSecret, 60)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := tm.ParseToken(token)
		assert.Error(t, err, "token %q should not parse", token)
	}
}

func TestParseTokenRejectsForeignSigningMethod(t *testing.T) {
	tm := NewTokenManager(testSecret, 60)

	// HS512 is validly signed with the same secret but must be refused.
	claims := &Claims{
		UserID: "user-123",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = tm.ParseToken(token)
	assert.Error(t, err)
}

func TestNewTokenManagerDefaultTTL(t *testing.T) {
	tm := NewTokenManager(testSecret, 0)

	_, exp, err := tm.GenerateToken("user-123")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)
}
