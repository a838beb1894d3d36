// Package format renders transaction attributes into fixed-capacity display
// strings. Nothing here truncates: a value that does not fit is an error.
package format

import (
	"errors"
	"strconv"
)

const (
	// MaxCoinLength is the display budget for a coin ticker.
	MaxCoinLength = 10
	// MaxUint64Digits is the number of decimal digits of math.MaxUint64.
	MaxUint64Digits = 20
	// AmountCapacity holds digits, ticker and the separating space.
	AmountCapacity = MaxUint64Digits + MaxCoinLength + 1
	// AddressLength is "0x" plus 40 hex digits.
	AddressLength = 2 + 2*20
)

var ErrOverflow = errors.New("format: value exceeds display buffer")

const upperHex = "0123456789ABCDEF"

// Amount returns "<coin> <value>", e.g. "BTC 1500".
func Amount(coin string, value uint64) (string, error) {
	if len(coin) > MaxCoinLength {
		return "", ErrOverflow
	}

	var buf [AmountCapacity]byte
	out := append(buf[:0], coin...)
	out = append(out, ' ')
	out = strconv.AppendUint(out, value, 10)
	return string(out), nil
}

// Address returns "0x" followed by 40 uppercase hex digits.
func Address(to [20]byte) string {
	var buf [AddressLength]byte
	buf[0], buf[1] = '0', 'x'
	for i, b := range to {
		buf[2+2*i] = upperHex[b>>4]
		buf[3+2*i] = upperHex[b&0x0f]
	}
	return string(buf[:])
}
