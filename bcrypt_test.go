package credentials_test

import (
	"testing"

	credentials "github.com/goliatone/go-credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	t.Run("hashes and verifies", func(t *testing.T) {
		hash, err := credentials.HashPassword("some password")
		require.NoError(t, err)
		require.NotEmpty(t, hash)
		assert.NotEqual(t, "some password", hash)

		assert.NoError(t, credentials.ComparePasswordAndHash("some password", hash))
		assert.Error(t, credentials.ComparePasswordAndHash("other password", hash))
	})

	t.Run("empty password rejected", func(t *testing.T) {
		_, err := credentials.HashPassword("")
		require.Error(t, err)
		assert.ErrorIs(t, err, credentials.ErrNoEmptyString)
	})

	t.Run("same password hashes differently", func(t *testing.T) {
		first, err := credentials.HashPassword("some password")
		require.NoError(t, err)
		second, err := credentials.HashPassword("some password")
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
	})
}

func TestCredentialDigest(t *testing.T) {
	digest := credentials.CredentialDigest("stored-hash")

	assert.Len(t, digest, 64)
	assert.Equal(t, digest, credentials.CredentialDigest("stored-hash"))
	assert.NotEqual(t, digest, credentials.CredentialDigest("other-hash"))
}
