package auth

import (
	"testing"
	"time"

	"coderr/config"
	"coderr/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig(secret string, ttl time.Duration) *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = secret
	if ttl > 0 {
		cfg.Auth = &config.AuthConfig{AccessTokenTTL: ttl}
	}

	return cfg
}

func TestNewJWTService(t *testing.T) {
	t.Parallel()

	t.Run("requires a secret", func(t *testing.T) {
		t.Parallel()

		svc, err := NewJWTService(newTestConfig("", 0))

		assert.Nil(t, svc)
		assert.Error(t, err)
	})
}

func TestJWTService_RoundTrip(t *testing.T) {
	t.Parallel()

	svc, err := NewJWTService(newTestConfig("test-secret", time.Hour))
	require.NoError(t, err)

	userID := uuid.New()

	token, err := svc.GenerateAccessToken(userID, entity.ProfileTypeBusiness)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, entity.ProfileTypeBusiness, claims.ProfileType)
}

func TestJWTService_ValidateToken(t *testing.T) {
	t.Parallel()

	t.Run("rejects a token signed with a different secret", func(t *testing.T) {
		t.Parallel()

		issuer, err := NewJWTService(newTestConfig("secret-a", time.Hour))
		require.NoError(t, err)
		verifier, err := NewJWTService(newTestConfig("secret-b", time.Hour))
		require.NoError(t, err)

		token, err := issuer.GenerateAccessToken(uuid.New(), entity.ProfileTypeCustomer)
		require.NoError(t, err)

		claims, err := verifier.ValidateToken(token)

		assert.Nil(t, claims)
		assert.Error(t, err)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		t.Parallel()

		svc, err := NewJWTService(newTestConfig("test-secret", time.Nanosecond))
		require.NoError(t, err)

		token, err := svc.GenerateAccessToken(uuid.New(), entity.ProfileTypeCustomer)
		require.NoError(t, err)

		time.Sleep(10 * time.Millisecond)

		claims, err := svc.ValidateToken(token)

		assert.Nil(t, claims)
		assert.Error(t, err)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		t.Parallel()

		svc, err := NewJWTService(newTestConfig("test-secret", time.Hour))
		require.NoError(t, err)

		claims, err := svc.ValidateToken("not.a.token")

		assert.Nil(t, claims)
		assert.Error(t, err)
	})
}
