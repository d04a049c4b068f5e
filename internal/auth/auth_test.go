package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/config"
)

var secret = []byte("test-secret")

func sign(t *testing.T, claims jwt.RegisteredClaims, key []byte) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func TestJWTVerifier_Verify(t *testing.T) {
	ctx := context.Background()
	v := NewHS256(secret, Options{Issuer: "taskboard", Audience: "web"})
	valid := jwt.RegisteredClaims{
		Subject:   "user-1",
		Issuer:    "taskboard",
		Audience:  jwt.ClaimStrings{"web"},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}

	t.Run("valid token", func(t *testing.T) {
		uid, err := v.Verify(ctx, sign(t, valid, secret))
		require.NoError(t, err)
		assert.Equal(t, "user-1", uid)
	})

	tests := []struct {
		name   string
		mutate func(c *jwt.RegisteredClaims)
		key    []byte
	}{
		{"expired", func(c *jwt.RegisteredClaims) { c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute)) }, secret},
		{"no expiry", func(c *jwt.RegisteredClaims) { c.ExpiresAt = nil }, secret},
		{"wrong issuer", func(c *jwt.RegisteredClaims) { c.Issuer = "other" }, secret},
		{"wrong audience", func(c *jwt.RegisteredClaims) { c.Audience = jwt.ClaimStrings{"mobile"} }, secret},
		{"no subject", func(c *jwt.RegisteredClaims) { c.Subject = "" }, secret},
		{"wrong key", func(*jwt.RegisteredClaims) {}, []byte("other-secret")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			_, err := v.Verify(ctx, sign(t, c, tt.key))
			assert.ErrorIs(t, err, ErrUnauthorized)
		})
	}

	t.Run("garbage", func(t *testing.T) {
		_, err := v.Verify(ctx, "not-a-jwt")
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := v.Verify(ctx, "")
		assert.ErrorIs(t, err, ErrUnauthorized)
	})
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	v, err := New(ctx, config.AuthConfig{JWTSecret: "s"})
	require.NoError(t, err)
	assert.NotNil(t, v)

	_, err = New(ctx, config.AuthConfig{})
	assert.Error(t, err)
}

func TestSecretMatches(t *testing.T) {
	assert.True(t, SecretMatches("s3cret", "s3cret"))
	assert.False(t, SecretMatches("s3cret", "other"))
	assert.False(t, SecretMatches("", ""))
	assert.False(t, SecretMatches("x", ""))
}
