package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("pw1", 4) // minimal cost keeps the test fast
	require.NoError(t, err)
	require.NotEqual(t, "pw1", hash)

	require.True(t, VerifyPassword(hash, "pw1"))
	require.False(t, VerifyPassword(hash, "pw2"))
	require.False(t, VerifyPassword("not-a-hash", "pw1"))
}

func TestHashesAreSalted(t *testing.T) {
	h1, err := HashPassword("same", 4)
	require.NoError(t, err)
	h2, err := HashPassword("same", 4)
	require.NoError(t, err)
	require.NotEqual(t, h1, h2)
}
