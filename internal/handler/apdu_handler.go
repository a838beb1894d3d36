package handler

import (
	"errors"
	"fmt"
	"time"

	"signer-core/internal/handler/response"
	"signer-core/internal/model"
	"signer-core/internal/service"
	"signer-core/internal/ui"
	"signer-core/pkg/apdu"
	"signer-core/pkg/bip32"
	"signer-core/pkg/errno"
	"signer-core/pkg/logger"
	"signer-core/pkg/monitor"

	"go.uber.org/zap"
)

var (
	// ErrExit asks the link server to stop; no reply is sent.
	ErrExit               = errors.New("handler: exit requested")
	ErrNothingReceived    = errors.New("handler: empty payload")
	ErrUnknownInstruction = errors.New("handler: unknown instruction")
	ErrClaNotSupported    = errors.New("handler: class not supported")
)

// signSession lives only while a Sign command is handled.
type signSession struct {
	tx     model.Transaction
	review service.ReviewSession
}

func (s *signSession) clear() {
	s.tx.Clear()
	s.review.Reset()
}

// APDUHandler dispatches commands by instruction. It is not safe for
// concurrent use: the link server feeds it one command at a time.
type APDUHandler struct {
	keys    service.KeyDeriver
	review  *service.ReviewService
	signing *service.SigningService
	menu    *service.MenuService
	display ui.Display
	path    bip32.Path

	session signSession
	out     [apdu.MaxPayloadLength]byte
}

func NewAPDUHandler(
	keys service.KeyDeriver,
	review *service.ReviewService,
	signing *service.SigningService,
	menu *service.MenuService,
	display ui.Display,
	path bip32.Path,
) *APDUHandler {
	return &APDUHandler{
		keys:    keys,
		review:  review,
		signing: signing,
		menu:    menu,
		display: display,
		path:    path.Clone(),
	}
}

// Handle processes one command. resp.Data aliases a buffer owned by the
// handler and is valid until the next call. err is ErrExit when the host
// or the holder asked to leave the application; every other failure is
// already folded into resp.SW.
func (h *APDUHandler) Handle(cmd apdu.Command) (resp apdu.Response, err error) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			logger.Error("handler panic", zap.Stringer("ins", cmd.Ins), zap.Any("panic", r))
			resp, err = response.Error(errno.Panic), nil
		}
		h.session.clear()
		if !errors.Is(err, ErrExit) {
			monitor.ObserveCommand(byte(cmd.Ins), resp.SW, start)
		}
	}()

	data, err := h.dispatch(cmd)
	if errors.Is(err, ErrExit) {
		logger.Info("exit requested", zap.Stringer("ins", cmd.Ins))
		return apdu.Response{}, err
	}
	if err != nil {
		err = toErrno(err)
		resp = response.Error(err)
		logger.Warn("command failed",
			zap.Stringer("ins", cmd.Ins),
			zap.String("sw", fmt.Sprintf("0x%04X", resp.SW)),
			zap.Int("data_len", len(cmd.Data)),
			zap.Error(err),
			zap.Duration("elapsed", time.Since(start)),
		)
		return resp, nil
	}

	resp = response.Success(data)
	logger.Info("command handled",
		zap.Stringer("ins", cmd.Ins),
		zap.Int("data_len", len(cmd.Data)),
		zap.Int("reply_len", len(data)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return resp, nil
}

func (h *APDUHandler) dispatch(cmd apdu.Command) ([]byte, error) {
	if cmd.Cla != apdu.CLA {
		return nil, fmt.Errorf("%w: 0x%02X", ErrClaNotSupported, cmd.Cla)
	}

	switch cmd.Ins {
	case apdu.InsGetPubkey:
		return h.getPubkey()
	case apdu.InsSign:
		return h.sign(cmd.Data)
	case apdu.InsMenu:
		if h.menu.Run(h.path) {
			return nil, ErrExit
		}
		return nil, nil
	case apdu.InsExit:
		return nil, ErrExit
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownInstruction, cmd.Ins)
	}
}

func (h *APDUHandler) getPubkey() ([]byte, error) {
	pk, err := h.keys.PublicKey(h.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", service.ErrDerivationFailed, err)
	}
	monitor.Business.PubkeyExports.Inc()
	return h.out[:copy(h.out[:], pk)], nil
}

// sign runs decode, review and signing over the one payload slice.
func (h *APDUHandler) sign(payload []byte) ([]byte, error) {
	// 1. Empty payload: no transaction is built
	if len(payload) == 0 {
		return nil, ErrNothingReceived
	}

	// 2. Decode into the session; Coin and Memo borrow payload
	tx, err := model.Decode(payload)
	if err != nil {
		return nil, err
	}
	h.session.tx = tx

	// 3. Holder review
	approved, err := h.review.Review(&h.session.review, &h.session.tx)
	if err != nil {
		return nil, err
	}
	if !approved {
		h.display.Popup("Cancelled")
		return nil, nil
	}

	// 4. Sign exactly what was decoded and displayed
	sig, err := h.signing.Sign(h.path, payload)
	if err != nil {
		return nil, err
	}
	h.display.Popup("Done !")
	return h.out[:copy(h.out[:], sig.Bytes())], nil
}
