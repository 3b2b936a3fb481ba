package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	tok, err := NewAccessToken("secret", 42, "test@example.com", time.Minute)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Minute), tok.Exp, 5*time.Second)

	claims, err := ParseAccessToken("secret", tok.Token)
	require.NoError(t, err)
	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, uint64(42), id)
	assert.Equal(t, "test@example.com", claims.Email)
}

func TestParseAccessTokenRejects(t *testing.T) {
	good, err := NewAccessToken("secret", 1, "a@example.com", time.Minute)
	require.NoError(t, err)
	expired, err := NewAccessToken("secret", 1, "a@example.com", -time.Minute)
	require.NoError(t, err)
	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute))},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	otherAlg, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "1", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute))},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	for name, raw := range map[string]string{
		"wrong secret": good.Token,
		"garbage":      "not.a.token",
	} {
		_, err := ParseAccessToken("other", raw)
		assert.ErrorIs(t, err, ErrInvalidToken, name)
	}
	for name, raw := range map[string]string{
		"expired":    expired.Token,
		"no subject": noSubject,
		"hs512":      otherAlg,
	} {
		_, err := ParseAccessToken("secret", raw)
		assert.ErrorIs(t, err, ErrInvalidToken, name)
	}
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("password", bcrypt.MinCost)
	require.NoError(t, err)
	assert.True(t, VerifyPassword(hash, "password"))
	assert.False(t, VerifyPassword(hash, "Password"))
	assert.False(t, VerifyPassword("not a hash", "password"))
}
