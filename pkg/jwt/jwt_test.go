package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerifyToken(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	token, err := m.GenerateToken("alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Handle)
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	m := NewManager("secret-a", time.Hour)
	token, err := m.GenerateToken("alice")
	require.NoError(t, err)

	other := NewManager("secret-b", time.Hour)
	_, err = other.VerifyToken(token)
	assert.Error(t, err)
}

func TestVerifyTokenExpired(t *testing.T) {
	m := NewManager("test-secret", -time.Minute)
	token, err := m.GenerateToken("alice")
	require.NoError(t, err)

	_, err = m.VerifyToken(token)
	assert.Error(t, err)
}
