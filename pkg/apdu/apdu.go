// Package apdu holds the command/response units exchanged with the host and
// the length-prefixed framing that carries them over a stream.
package apdu

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	// CLA is the only class byte the device answers to.
	CLA byte = 0xE0

	HeaderLength     = 5 // CLA INS P1 P2 Lc
	MaxPayloadLength = 255
	MaxFrameLength   = HeaderLength + MaxPayloadLength
	SWLength         = 2
)

// Ins is an instruction code.
type Ins byte

const (
	InsGetPubkey Ins = 0x02
	InsSign      Ins = 0x03
	InsMenu      Ins = 0x04
	InsExit      Ins = 0xFF
)

func (i Ins) String() string {
	switch i {
	case InsGetPubkey:
		return "GetPubkey"
	case InsSign:
		return "Sign"
	case InsMenu:
		return "Menu"
	case InsExit:
		return "Exit"
	default:
		return fmt.Sprintf("Ins(0x%02x)", byte(i))
	}
}

var (
	ErrShortFrame      = errors.New("apdu: frame shorter than header")
	ErrLengthMismatch  = errors.New("apdu: Lc does not match data length")
	ErrPayloadTooLarge = errors.New("apdu: payload exceeds 255 bytes")
)

// Command is a parsed request. Data aliases the frame it was parsed from.
type Command struct {
	Cla  byte
	Ins  Ins
	P1   byte
	P2   byte
	Data []byte
}

// ParseCommand splits a frame into header and data without copying.
func ParseCommand(frame []byte) (Command, error) {
	if len(frame) < HeaderLength {
		return Command{}, ErrShortFrame
	}
	lc := int(frame[4])
	if len(frame)-HeaderLength != lc {
		return Command{}, fmt.Errorf("%w: Lc=%d data=%d", ErrLengthMismatch, lc, len(frame)-HeaderLength)
	}
	return Command{
		Cla:  frame[0],
		Ins:  Ins(frame[1]),
		P1:   frame[2],
		P2:   frame[3],
		Data: frame[HeaderLength:],
	}, nil
}

// AppendTo appends the encoded command to dst.
func (c Command) AppendTo(dst []byte) ([]byte, error) {
	if len(c.Data) > MaxPayloadLength {
		return dst, ErrPayloadTooLarge
	}
	dst = append(dst, c.Cla, byte(c.Ins), c.P1, c.P2, byte(len(c.Data)))
	return append(dst, c.Data...), nil
}

// Response is a reply: data followed by a two byte status word.
type Response struct {
	Data []byte
	SW   uint16
}

func (r Response) AppendTo(dst []byte) []byte {
	dst = append(dst, r.Data...)
	return binary.BigEndian.AppendUint16(dst, r.SW)
}

// ParseResponse splits a reply into data and status word. Data aliases frame.
func ParseResponse(frame []byte) (Response, error) {
	if len(frame) < SWLength {
		return Response{}, ErrShortFrame
	}
	n := len(frame) - SWLength
	return Response{
		Data: frame[:n],
		SW:   binary.BigEndian.Uint16(frame[n:]),
	}, nil
}
