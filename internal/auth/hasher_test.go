package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		hash, err := HashPassword("pw123secret")
		require.NoError(t, err)
		require.NotEmpty(t, hash)
		assert.True(t, CheckPassword("pw123secret", hash))
	})

	t.Run("salt makes hashes unique", func(t *testing.T) {
		t.Parallel()
		first, err := HashPassword("same secret")
		require.NoError(t, err)
		second, err := HashPassword("same secret")
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
		assert.True(t, CheckPassword("same secret", first))
		assert.True(t, CheckPassword("same secret", second))
	})

	t.Run("mismatch fails", func(t *testing.T) {
		t.Parallel()
		hash, err := HashPassword("correct horse")
		require.NoError(t, err)
		assert.False(t, CheckPassword("battery staple", hash))
		assert.False(t, CheckPassword("", hash))
	})

	t.Run("garbage hash never verifies", func(t *testing.T) {
		t.Parallel()
		assert.False(t, CheckPassword("anything", "not-a-bcrypt-hash"))
	})
}
