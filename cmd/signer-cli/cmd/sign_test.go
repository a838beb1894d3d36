package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToBaseUnits(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		decimals int32
		want     uint64
		wantErr  bool
	}{
		{"integer", "1500", 0, 1500, false},
		{"btc", "0.015", 8, 1500000, false},
		{"eth", "1", 18, 1000000000000000000, false},
		{"max uint64", "18446744073709551615", 0, 18446744073709551615, false},
		{"overflow", "18446744073709551616", 0, 0, true},
		{"too many decimals", "0.123", 2, 0, true},
		{"negative", "-1", 0, 0, true},
		{"garbage", "abc", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := toBaseUnits(tt.amount, tt.decimals)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
