package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHasher(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher()

	hashed, err := hasher.Hash("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, hashed)
	assert.NotEqual(t, "correct horse battery staple", hashed)

	assert.NoError(t, hasher.Compare(hashed, "correct horse battery staple"))
	assert.Error(t, hasher.Compare(hashed, "wrong password"))
	assert.Error(t, hasher.Compare("not-a-bcrypt-hash", "correct horse battery staple"))
}

func TestBcryptHasherSaltsEachHash(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher()

	first, err := hasher.Hash("secretpassword")
	require.NoError(t, err)
	second, err := hasher.Hash("secretpassword")
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "bcrypt salts must differ per hash")
	assert.NoError(t, hasher.Compare(first, "secretpassword"))
	assert.NoError(t, hasher.Compare(second, "secretpassword"))
}
