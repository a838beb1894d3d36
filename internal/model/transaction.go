package model

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

// Sign payload wire format, all fields back to back:
//
//	coin   1..32 bytes   ticker, UTF-8
//	sep    1 byte        0x00
//	value  8 bytes       big-endian uint64
//	to     20 bytes      raw destination
//	memo   0..n bytes    everything after the destination
//
// The whole payload is bounded by the link's 255 byte maximum.
const (
	Separator         byte = 0x00
	MaxCoinWireLength      = 32
	ValueLength            = 8
	AddressLength          = 20
	MaxPayloadLength       = 255

	// MinPayloadLength is a one byte coin, the separator, value and address.
	MinPayloadLength = 1 + 1 + ValueLength + AddressLength
)

var (
	ErrMalformed = errors.New("transaction: malformed payload")
	ErrTooLarge  = errors.New("transaction: field exceeds its bound")
)

// Transaction is a decoded Sign request. Coin and Memo are views into the
// payload passed to Decode and are only valid while that buffer is.
type Transaction struct {
	Coin  []byte
	Value uint64
	To    [AddressLength]byte
	Memo  []byte
}

// Decode parses a Sign payload without copying it.
func Decode(payload []byte) (Transaction, error) {
	if len(payload) > MaxPayloadLength {
		return Transaction{}, fmt.Errorf("%w: payload %d > %d", ErrTooLarge, len(payload), MaxPayloadLength)
	}
	if len(payload) < MinPayloadLength {
		return Transaction{}, fmt.Errorf("%w: payload %d < %d", ErrMalformed, len(payload), MinPayloadLength)
	}

	sep := bytes.IndexByte(payload, Separator)
	switch {
	case sep < 0:
		return Transaction{}, fmt.Errorf("%w: missing coin separator", ErrMalformed)
	case sep == 0:
		return Transaction{}, fmt.Errorf("%w: empty coin", ErrMalformed)
	case sep > MaxCoinWireLength:
		return Transaction{}, fmt.Errorf("%w: coin %d > %d", ErrTooLarge, sep, MaxCoinWireLength)
	}

	rest := payload[sep+1:]
	if len(rest) < ValueLength+AddressLength {
		return Transaction{}, fmt.Errorf("%w: %d bytes after coin, need %d", ErrMalformed, len(rest), ValueLength+AddressLength)
	}

	tx := Transaction{
		Coin:  payload[:sep:sep],
		Value: binary.BigEndian.Uint64(rest[:ValueLength]),
		Memo:  rest[ValueLength+AddressLength:],
	}
	copy(tx.To[:], rest[ValueLength:ValueLength+AddressLength])
	return tx, nil
}

// AppendTo encodes tx in the wire format; used by the host side.
func (tx Transaction) AppendTo(dst []byte) ([]byte, error) {
	switch {
	case len(tx.Coin) == 0:
		return dst, fmt.Errorf("%w: empty coin", ErrMalformed)
	case len(tx.Coin) > MaxCoinWireLength:
		return dst, fmt.Errorf("%w: coin %d > %d", ErrTooLarge, len(tx.Coin), MaxCoinWireLength)
	case bytes.IndexByte(tx.Coin, Separator) >= 0:
		return dst, fmt.Errorf("%w: coin contains separator", ErrMalformed)
	case MinPayloadLength-1+len(tx.Coin)+len(tx.Memo) > MaxPayloadLength:
		return dst, fmt.Errorf("%w: memo %d bytes", ErrTooLarge, len(tx.Memo))
	}

	dst = append(dst, tx.Coin...)
	dst = append(dst, Separator)
	dst = binary.BigEndian.AppendUint64(dst, tx.Value)
	dst = append(dst, tx.To[:]...)
	return append(dst, tx.Memo...), nil
}

// Clear drops the references into the command buffer.
func (tx *Transaction) Clear() {
	*tx = Transaction{}
}
