package v1

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	digest, err := HashPassword("pw123")
	require.NoError(t, err)
	require.NotEmpty(t, digest)
	assert.NotEqual(t, "pw123", digest)

	assert.True(t, CheckPassword("pw123", digest))
	assert.False(t, CheckPassword("pw124", digest))
	assert.False(t, CheckPassword("", digest))
}

func TestHashPasswordSalted(t *testing.T) {
	d1, err := HashPassword("same-password")
	require.NoError(t, err)
	d2, err := HashPassword("same-password")
	require.NoError(t, err)

	// bcrypt embeds a fresh salt, so equal passwords hash differently.
	assert.NotEqual(t, d1, d2)
	assert.True(t, CheckPassword("same-password", d1))
	assert.True(t, CheckPassword("same-password", d2))
}

func TestCheckPasswordMalformedDigest(t *testing.T) {
	assert.False(t, CheckPassword("pw123", ""))
	assert.False(t, CheckPassword("pw123", "not-a-bcrypt-digest"))
}
