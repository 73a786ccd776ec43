package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotContains(t, hash, "s3cret")

	assert.True(t, CheckPassword("s3cret", hash))
	assert.False(t, CheckPassword("wrong", hash))
}

func TestHashPassword_Salted(t *testing.T) {
	t.Parallel()

	h1, err := HashPassword("same-password")
	require.NoError(t, err)
	h2, err := HashPassword("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
	assert.True(t, CheckPassword("same-password", h1))
	assert.True(t, CheckPassword("same-password", h2))
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	t.Parallel()

	assert.False(t, CheckPassword("anything", "not-a-bcrypt-hash"))
	assert.False(t, CheckPassword("anything", ""))
}
