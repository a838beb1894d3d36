package errno

import "errors"

// Errno pairs a two-byte status word with a human readable message.
// It is the only error shape that crosses the link boundary.
type Errno struct {
	Code    uint16
	Message string
}

func (e Errno) Error() string {
	return e.Message
}

// Decode converts an error into the status word and message sent back to
// the host. Errors that do not carry an Errno in their chain collapse into
// InternalError.
func Decode(err error) (uint16, string) {
	if err == nil {
		return OK.Code, OK.Message
	}

	var typed Errno
	if errors.As(err, &typed) {
		return typed.Code, typed.Message
	}
	var ptr *Errno
	if errors.As(err, &ptr) && ptr != nil {
		return ptr.Code, ptr.Message
	}
	return InternalError.Code, err.Error()
}

// Transport and framing status words (ISO 7816 / Ledger conventions).
var (
	OK              = Errno{Code: 0x9000, Message: "Success"}
	NothingReceived = Errno{Code: 0x6982, Message: "Nothing received"}
	WrongLength     = Errno{Code: 0x6E03, Message: "Wrong APDU length"}
	ClaNotSupported = Errno{Code: 0x6E00, Message: "Class not supported"}
	InsNotSupported = Errno{Code: 0x6D00, Message: "Instruction not supported"}
	InternalError   = Errno{Code: 0x6F00, Message: "Internal error"}
	Panic           = Errno{Code: 0xE000, Message: "Panic"}
)

// Application status words (0xB000 range).
var (
	TxDisplayFieldTooLarge = Errno{Code: 0xB001, Message: "Display field too large"}
	TxDisplayFail          = Errno{Code: 0xB002, Message: "Display failed"}
	TxTooLarge             = Errno{Code: 0xB004, Message: "Transaction field exceeds its bound"}
	TxMalformed            = Errno{Code: 0xB005, Message: "Transaction parsing failed"}
	TxSignFail             = Errno{Code: 0xB008, Message: "Signing failed"}
	KeyDeriveFail          = Errno{Code: 0xB009, Message: "Key derivation failed"}
)

var known = []Errno{
	OK, NothingReceived, WrongLength, ClaNotSupported, InsNotSupported, InternalError, Panic,
	TxDisplayFieldTooLarge, TxDisplayFail, TxTooLarge, TxMalformed, TxSignFail, KeyDeriveFail,
}

// Message returns the text of a known status word.
func Message(code uint16) string {
	for _, e := range known {
		if e.Code == code {
			return e.Message
		}
	}
	return "Unknown status"
}
