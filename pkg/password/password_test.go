package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("Secreta1!")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.NotEqual(t, "Secreta1!", hash)
	assert.True(t, strings.HasPrefix(hash, "$2a$10$"), "cost factor should be 10")

	assert.True(t, Verify("Secreta1!", hash))
	assert.False(t, Verify("secreta1!", hash))
	assert.False(t, Verify("", hash))
}

func TestHashEmptyPassword(t *testing.T) {
	_, err := Hash("")
	assert.ErrorIs(t, err, ErrEmptyPassword)
}

func TestVerifyMalformedHash(t *testing.T) {
	assert.False(t, Verify("whatever", "not-a-bcrypt-hash"))
	assert.False(t, Verify("whatever", ""))
}

func TestHashesAreSalted(t *testing.T) {
	first, err := Hash("Secreta1!")
	require.NoError(t, err)
	second, err := Hash("Secreta1!")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
