package safe_random

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRandomBytes(t *testing.T) {
	a, err := GenerateRandomBytes(32)
	require.NoError(t, err)
	assert.Len(t, a, 32)
	assert.NotEqual(t, make([]byte, 32), a)

	b, err := GenerateRandomBytes(32)
	require.NoError(t, err)
	assert.False(t, bytes.Equal(a, b))
}
