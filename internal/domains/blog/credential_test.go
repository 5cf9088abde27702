package blog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "secret123", hash)

	// Salted: hashing the same password twice yields different hashes.
	other, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, hash, other)
}

func TestHashPasswordEmpty(t *testing.T) {
	_, err := HashPassword("")
	assert.ErrorIs(t, err, ErrEmptyPassword)
}

func TestVerifyPasswordAgainst(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)

	assert.True(t, VerifyPasswordAgainst(hash, "secret123"))
	assert.False(t, VerifyPasswordAgainst(hash, "wrong"))
	assert.False(t, VerifyPasswordAgainst(hash, ""))
}

func TestVerifyPasswordAgainstBadHash(t *testing.T) {
	// Mismatch, absent or malformed hashes all answer false, never an error.
	assert.False(t, VerifyPasswordAgainst("", "secret123"))
	assert.False(t, VerifyPasswordAgainst("not-a-bcrypt-hash", "secret123"))
}
