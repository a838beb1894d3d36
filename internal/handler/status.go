package handler

import (
	"errors"

	"signer-core/internal/model"
	"signer-core/internal/service"
	"signer-core/pkg/errno"
)

// statusTable maps component errors to status words. Order matters only
// when an error wraps more than one sentinel.
var statusTable = []struct {
	target error
	status errno.Errno
}{
	{ErrNothingReceived, errno.NothingReceived},
	{ErrClaNotSupported, errno.ClaNotSupported},
	{ErrUnknownInstruction, errno.InsNotSupported},
	{model.ErrMalformed, errno.TxMalformed},
	{model.ErrTooLarge, errno.TxTooLarge},
	{service.ErrFieldTooLarge, errno.TxDisplayFieldTooLarge},
	{service.ErrDisplayFail, errno.TxDisplayFail},
	{service.ErrDerivationFailed, errno.KeyDeriveFail},
	{service.ErrSignFailed, errno.TxSignFail},
}

// toErrno converts err into the Errno that crosses the link. Unknown errors
// are left as is and decode to InternalError.
func toErrno(err error) error {
	var e errno.Errno
	if errors.As(err, &e) {
		return e
	}
	for _, entry := range statusTable {
		if errors.Is(err, entry.target) {
			return entry.status
		}
	}
	return err
}
