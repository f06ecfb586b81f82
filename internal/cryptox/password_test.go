package cryptox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHasher_RoundTrip(t *testing.T) {
	h := NewBcryptHasher()

	hash, err := h.Hash("123456")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.NotEqual(t, "123456", hash, "hash must not equal the plaintext")
	assert.True(t, h.Verify("123456", hash))
	assert.False(t, h.Verify("wrong", hash))
}

func TestBcryptHasher_DistinctSalts(t *testing.T) {
	h := NewBcryptHasher()

	h1, err := h.Hash("same-password")
	require.NoError(t, err)
	h2, err := h.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2, "each hash must carry its own salt")
	assert.True(t, h.Verify("same-password", h1))
	assert.True(t, h.Verify("same-password", h2))
}

func TestBcryptHasher_Verify_MalformedHash(t *testing.T) {
	h := NewBcryptHasher()
	assert.False(t, h.Verify("123456", "not-a-bcrypt-hash"))
}
