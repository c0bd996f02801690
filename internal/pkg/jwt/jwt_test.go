package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken(42, "20250042", "Kim Minji", "STUDENT", testSecret, 5)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "20250042", claims.LoginID)
	assert.Equal(t, "Kim Minji", claims.Name)
	assert.Equal(t, "STUDENT", claims.Role)
	assert.NotEmpty(t, claims.ID, "every token carries a unique jti")
}

func TestTokenLifetime(t *testing.T) {
	token, err := GenerateToken(1, "admin", "Admin", "ADMIN", testSecret, 5)
	require.NoError(t, err)

	claims, err := ValidateToken(token, testSecret)
	require.NoError(t, err)

	lifetime := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	assert.Equal(t, 5*time.Minute, lifetime)
}

func TestExpiredTokenRejected(t *testing.T) {
	token, err := GenerateToken(1, "admin", "Admin", "ADMIN", testSecret, -1)
	require.NoError(t, err)

	_, err = ValidateToken(token, testSecret)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestWrongSecretRejected(t *testing.T) {
	token, err := GenerateToken(1, "admin", "Admin", "ADMIN", testSecret, 5)
	require.NoError(t, err)

	_, err = ValidateToken(token, "some-other-secret")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTamperedTokenRejected(t *testing.T) {
	token, err := GenerateToken(1, "admin", "Admin", "ADMIN", testSecret, 5)
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = ValidateToken(tampered, testSecret)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestGarbageTokenRejected(t *testing.T) {
	_, err := ValidateToken("not.a.token", testSecret)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = ValidateToken("", testSecret)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestUniqueTokenIDs(t *testing.T) {
	t1, err := GenerateToken(1, "admin", "Admin", "ADMIN", testSecret, 5)
	require.NoError(t, err)
	t2, err := GenerateToken(1, "admin", "Admin", "ADMIN", testSecret, 5)
	require.NoError(t, err)

	c1, err := ValidateToken(t1, testSecret)
	require.NoError(t, err)
	c2, err := ValidateToken(t2, testSecret)
	require.NoError(t, err)

	assert.NotEqual(t, c1.ID, c2.ID)
}
