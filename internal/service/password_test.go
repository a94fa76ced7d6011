package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	hasher := NewPasswordHasher(minIterations)

	stored, err := hasher.Hash("s3cret-passphrase")
	require.NoError(t, err)

	parts := strings.Split(stored, ":")
	require.Len(t, parts, 2)

	assert.True(t, hasher.Verify("s3cret-passphrase", stored))
	assert.False(t, hasher.Verify("s3cret-passphrasf", stored))
	assert.False(t, hasher.Verify("", stored))
}

func TestPasswordHasher_SaltsEveryHash(t *testing.T) {
	hasher := NewPasswordHasher(minIterations)

	first, err := hasher.Hash("same")
	require.NoError(t, err)
	second, err := hasher.Hash("same")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Verify("same", first))
	assert.True(t, hasher.Verify("same", second))
}

func TestPasswordHasher_MalformedCredentialNeverMatches(t *testing.T) {
	hasher := NewPasswordHasher(minIterations)

	for _, stored := range []string{
		"",
		"no-separator",
		"a:b:c",
		"!!!:AAAA",
		"AAAAAAAAAAAAAAAAAAAAAA==:short",
	} {
		assert.False(t, hasher.Verify("anything", stored), stored)
	}
}

func TestPasswordHasher_IterationFloor(t *testing.T) {
	assert.Equal(t, minIterations, NewPasswordHasher(1).iterations)
	assert.Equal(t, DefaultIterations, NewPasswordHasher(DefaultIterations).iterations)
}
