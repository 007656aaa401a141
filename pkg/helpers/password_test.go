package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)

	assert.NotEqual(t, "hunter22", hash)
	assert.True(t, CompareHashAndPassword(hash, "hunter22"))
	assert.False(t, CompareHashAndPassword(hash, "hunter23"))
}

func TestCompareHashAndPassword_NotAHash(t *testing.T) {
	assert.False(t, CompareHashAndPassword("plaintext", "plaintext"))
}
