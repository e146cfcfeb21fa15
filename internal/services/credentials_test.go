package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	svc := NewCredentialService()

	hash, err := svc.HashPassword("Sup3rSecret!")
	require.NoError(t, err)
	assert.NotEqual(t, "Sup3rSecret!", hash)

	assert.True(t, svc.VerifyPassword("Sup3rSecret!", hash))
	assert.False(t, svc.VerifyPassword("wrong-password", hash))
}

func TestHashPasswordUniqueSalts(t *testing.T) {
	svc := NewCredentialService()

	h1, err := svc.HashPassword("Sup3rSecret!")
	require.NoError(t, err)
	h2, err := svc.HashPassword("Sup3rSecret!")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
	assert.True(t, svc.VerifyPassword("Sup3rSecret!", h1))
	assert.True(t, svc.VerifyPassword("Sup3rSecret!", h2))
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	svc := NewCredentialService()

	assert.False(t, svc.VerifyPassword("anything", ""))
	assert.False(t, svc.VerifyPassword("anything", "not-a-bcrypt-hash"))
}

func TestGenerateTemporaryPassword(t *testing.T) {
	svc := NewCredentialService()

	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		pw, err := svc.GenerateTemporaryPassword(12)
		require.NoError(t, err)
		assert.Len(t, pw, 12)
		for _, c := range pw {
			assert.True(t, strings.ContainsRune(temporaryPasswordCharset, c), "unexpected character %q", c)
		}
		assert.False(t, seen[pw], "temporary passwords should not repeat")
		seen[pw] = true
	}
}
