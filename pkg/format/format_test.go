package format

import (
	"encoding/hex"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmount(t *testing.T) {
	tests := []struct {
		name    string
		coin    string
		value   uint64
		want    string
		wantErr error
	}{
		{name: "scenario", coin: "BTC", value: 1500, want: "BTC 1500"},
		{name: "zero", coin: "ETH", value: 0, want: "ETH 0"},
		{name: "max value and coin", coin: "ABCDEFGHIJ", value: math.MaxUint64, want: "ABCDEFGHIJ 18446744073709551615"},
		{name: "coin one byte over budget", coin: "ABCDEFGHIJK", value: 1, wantErr: ErrOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Amount(tt.coin, tt.value)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len(got), AmountCapacity)
		})
	}
}

func TestAmountPrefixLaw(t *testing.T) {
	for _, v := range []uint64{0, 1, 9, 10, 999, 1 << 32, math.MaxUint64 - 1} {
		got, err := Amount("DOGE", v)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(got, "DOGE "))
		assert.Equal(t, strconv.FormatUint(v, 10), got[len("DOGE "):])
	}
}

func TestAddress(t *testing.T) {
	var zero [20]byte
	assert.Equal(t, "0x0000000000000000000000000000000000000000", Address(zero))

	inputs := [][20]byte{zero}
	var seq, ff [20]byte
	for i := range seq {
		seq[i] = byte(i * 13)
		ff[i] = 0xff
	}
	inputs = append(inputs, seq, ff)

	for _, in := range inputs {
		got := Address(in)
		require.Len(t, got, AddressLength)
		assert.Equal(t, "0x", got[:2])
		assert.Equal(t, strings.ToUpper(got[2:]), got[2:])

		back, err := hex.DecodeString(got[2:])
		require.NoError(t, err)
		assert.Equal(t, in[:], back)
	}
}
