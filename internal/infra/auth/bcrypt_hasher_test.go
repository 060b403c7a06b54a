package auth

import (
	"testing"

	"coderr/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{Auth: &config.AuthConfig{BcryptCost: bcrypt.MinCost}}
	hasher := NewBcryptHasher(cfg)

	t.Run("hash and check round trip", func(t *testing.T) {
		t.Parallel()

		hash, err := hasher.Hash("secret123")
		require.NoError(t, err)
		require.NotEmpty(t, hash)
		assert.NotEqual(t, "secret123", hash)

		assert.True(t, hasher.Check("secret123", hash))
		assert.False(t, hasher.Check("wrong", hash))
	})

	t.Run("same password hashes differently", func(t *testing.T) {
		t.Parallel()

		first, err := hasher.Hash("secret123")
		require.NoError(t, err)
		second, err := hasher.Hash("secret123")
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
	})
}

func TestNewBcryptHasher_CostFallback(t *testing.T) {
	t.Parallel()

	// An out-of-range cost falls back to the bcrypt default.
	cfg := &config.Config{Auth: &config.AuthConfig{BcryptCost: 99}}
	hasher := NewBcryptHasher(cfg)

	hash, err := hasher.Hash("secret123")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}
