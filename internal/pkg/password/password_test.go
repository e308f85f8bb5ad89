package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("correct horse battery")
	require.NoError(t, err)
	require.NotEqual(t, "correct horse battery", hash)

	assert.True(t, Verify("correct horse battery", hash))
	assert.False(t, Verify("wrong password", hash))
}

func TestHashIsSalted(t *testing.T) {
	h1, err := Hash("same-input")
	require.NoError(t, err)
	h2, err := Hash("same-input")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
}

func TestHashToken(t *testing.T) {
	h1 := HashToken("refresh-token-value")
	h2 := HashToken("refresh-token-value")

	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64)
	assert.NotEqual(t, h1, HashToken("other-token"))
}

func TestValidatePassword(t *testing.T) {
	assert.True(t, ValidatePassword("123456"))
	assert.False(t, ValidatePassword("12345"))
	assert.False(t, ValidatePassword(""))
}
