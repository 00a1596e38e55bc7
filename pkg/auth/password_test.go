package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasher_HashAndVerify(t *testing.T) {
	// Low cost keeps the test fast; correctness is cost-independent.
	h := NewHasher(4)

	digest, err := h.Hash("TestPass123!")
	require.NoError(t, err)
	require.NotEmpty(t, digest)
	assert.NotEqual(t, "TestPass123!", digest)

	assert.True(t, h.Verify("TestPass123!", digest))
	assert.False(t, h.Verify("WrongPass123!", digest))
}

func TestHasher_SaltedDigestsDiffer(t *testing.T) {
	h := NewHasher(4)

	d1, err := h.Hash("TestPass123!")
	require.NoError(t, err)
	d2, err := h.Hash("TestPass123!")
	require.NoError(t, err)

	assert.NotEqual(t, d1, d2, "same input must yield different salted digests")
	assert.True(t, h.Verify("TestPass123!", d1))
	assert.True(t, h.Verify("TestPass123!", d2))
}

func TestHasher_VerifyGarbageDigest(t *testing.T) {
	h := NewHasher(4)
	assert.False(t, h.Verify("whatever", "not-a-bcrypt-digest"))
}

func TestNewHasher_CostBounds(t *testing.T) {
	assert.Equal(t, DefaultBcryptCost, NewHasher(0).cost)
	assert.Equal(t, DefaultBcryptCost, NewHasher(99).cost)
	assert.Equal(t, 10, NewHasher(10).cost)
}
