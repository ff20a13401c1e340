package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	t.Run("StoredValueNeverEqualsPlaintext", func(t *testing.T) {
		hash, err := HashPassword("pw")
		require.NoError(t, err)
		assert.NotEqual(t, "pw", hash)
		assert.True(t, strings.HasPrefix(hash, "$argon2id$"))
	})

	t.Run("SaltsAreUniquePerHash", func(t *testing.T) {
		first, err := HashPassword("same-password")
		require.NoError(t, err)
		second, err := HashPassword("same-password")
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
	})
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)

	t.Run("CorrectPassword", func(t *testing.T) {
		ok, err := VerifyPassword("correct horse battery staple", hash)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		ok, err := VerifyPassword("wrong", hash)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("MalformedHash", func(t *testing.T) {
		_, err := VerifyPassword("pw", "not-a-phc-string")
		assert.ErrorIs(t, err, ErrInvalidHash)
	})

	t.Run("WrongAlgorithmTag", func(t *testing.T) {
		_, err := VerifyPassword("pw", "$bcrypt$v=19$m=65536,t=3,p=4$c2FsdA$aGFzaA")
		assert.ErrorIs(t, err, ErrInvalidHash)
	})
}
