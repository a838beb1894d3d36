package crypto_util

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDigests(t *testing.T) {
	input := []byte("hello world")

	tests := []struct {
		digest Digest
		want   string
	}{
		{SHA256, "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"},
		{Keccak256, "47173285a8d7341e5e972fc677286384f802f8ef42a5ec5f03bbfa254cb01fad"},
	}

	for _, tt := range tests {
		t.Run(string(tt.digest), func(t *testing.T) {
			sum, err := tt.digest.Sum(input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, hex.EncodeToString(sum[:]))
		})
	}

	// blake3 has no vector here; check it is deterministic and distinct.
	a, err := Blake3.Sum(input)
	require.NoError(t, err)
	b, _ := Blake3.Sum(input)
	assert.Equal(t, a, b)
	s, _ := SHA256.Sum(input)
	assert.NotEqual(t, s, a)
}

func TestParseDigest(t *testing.T) {
	d, err := ParseDigest("")
	require.NoError(t, err)
	assert.Equal(t, SHA256, d)

	d, err = ParseDigest("blake3")
	require.NoError(t, err)
	assert.Equal(t, Blake3, d)

	_, err = ParseDigest("md5")
	assert.Error(t, err)

	_, err = Digest("md5").Sum(nil)
	assert.Error(t, err)
}
