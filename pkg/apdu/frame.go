package apdu

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// LengthPrefix is the size of the big-endian frame length on the stream.
const LengthPrefix = 2

var ErrFrameTooLarge = errors.New("apdu: frame exceeds buffer")

// ReadFrame reads one length-prefixed frame into buf and returns its length.
// A frame that does not fit is drained from r so the stream stays aligned,
// and ErrFrameTooLarge is returned.
func ReadFrame(r io.Reader, buf []byte) (int, error) {
	var prefix [LengthPrefix]byte
	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		return 0, err
	}
	n := int(binary.BigEndian.Uint16(prefix[:]))
	if n > len(buf) {
		if _, err := io.CopyN(io.Discard, r, int64(n)); err != nil {
			return 0, err
		}
		return 0, fmt.Errorf("%w: %d > %d", ErrFrameTooLarge, n, len(buf))
	}
	if _, err := io.ReadFull(r, buf[:n]); err != nil {
		return 0, err
	}
	return n, nil
}

// WriteFrame writes payload with its length prefix in a single Write.
// scratch is reused when large enough.
func WriteFrame(w io.Writer, scratch, payload []byte) error {
	if len(payload) > 0xFFFF {
		return fmt.Errorf("%w: %d", ErrFrameTooLarge, len(payload))
	}
	out := binary.BigEndian.AppendUint16(scratch[:0], uint16(len(payload)))
	out = append(out, payload...)
	_, err := w.Write(out)
	return err
}
