package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("secret123")
	require.NoError(t, err)

	assert.NotEqual(t, "secret123", hash)
	assert.True(t, strings.HasPrefix(hash, "$2a$"))
	assert.True(t, Verify("secret123", hash))
}

func TestVerify_WrongPassword(t *testing.T) {
	hash, err := Hash("secret123")
	require.NoError(t, err)

	assert.False(t, Verify("wrong-password", hash))
}

func TestVerify_NotAHash(t *testing.T) {
	assert.False(t, Verify("secret123", "plaintext"))
}
