package service

import (
	"bytes"
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"

	"signer-core/internal/model"
	"signer-core/internal/ui"
	"signer-core/pkg/format"
	"signer-core/pkg/logger"
	"signer-core/pkg/monitor"

	"go.uber.org/zap"
)

var (
	ErrFieldTooLarge   = errors.New("review: field too large for display")
	ErrDisplayFail     = errors.New("review: field cannot be displayed")
	ErrSessionConsumed = errors.New("review: decision already consumed")
	ErrReviewState     = errors.New("review: invalid state transition")
)

// ReviewConfig is read once at the start of every review.
type ReviewConfig struct {
	HideMemo bool
}

// ReviewState tracks one review from field building to the holder's decision.
type ReviewState int

const (
	StateIdle ReviewState = iota
	StateFieldsBuilt
	StateAwaitingApproval
	StateApproved
	StateRejected
)

func (s ReviewState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFieldsBuilt:
		return "fields_built"
	case StateAwaitingApproval:
		return "awaiting_approval"
	case StateApproved:
		return "approved"
	case StateRejected:
		return "rejected"
	default:
		return fmt.Sprintf("ReviewState(%d)", int(s))
	}
}

// ReviewSession is the review half of a signing session. The zero value is
// an idle session.
type ReviewSession struct {
	state    ReviewState
	consumed bool
	fields   [model.MaxReviewFields]model.Field
	n        int
}

func (s *ReviewSession) State() ReviewState { return s.state }

// Fields returns the fields built for the current review.
func (s *ReviewSession) Fields() []model.Field { return s.fields[:s.n] }

// Consume hands out the decision exactly once.
func (s *ReviewSession) Consume() (bool, error) {
	if s.state != StateApproved && s.state != StateRejected {
		return false, fmt.Errorf("%w: consume in state %s", ErrReviewState, s.state)
	}
	if s.consumed {
		return false, ErrSessionConsumed
	}
	s.consumed = true
	return s.state == StateApproved, nil
}

// Reset returns the session to idle and drops the field strings.
func (s *ReviewSession) Reset() {
	*s = ReviewSession{}
}

func (s *ReviewSession) add(name, value string) {
	s.fields[s.n] = model.Field{Name: name, Value: value}
	s.n++
}

// ReviewService turns a decoded transaction into a review screen and waits
// for the holder's decision.
type ReviewService struct {
	display ui.Display
	config  func() ReviewConfig
}

// NewReviewService reads config at the start of every review; a nil config
// shows every field.
func NewReviewService(display ui.Display, config func() ReviewConfig) *ReviewService {
	if config == nil {
		config = func() ReviewConfig { return ReviewConfig{} }
	}
	return &ReviewService{display: display, config: config}
}

// Review runs a full review of tx on sess and returns true only when the
// holder approved it.
func (s *ReviewService) Review(sess *ReviewSession, tx *model.Transaction) (bool, error) {
	if err := s.BuildFields(sess, tx); err != nil {
		return false, err
	}
	if err := s.Await(sess); err != nil {
		return false, err
	}
	return sess.Consume()
}

// BuildFields formats tx into sess: Idle -> FieldsBuilt. Nothing is shown.
func (s *ReviewService) BuildFields(sess *ReviewSession, tx *model.Transaction) error {
	if sess.state != StateIdle {
		return fmt.Errorf("%w: build fields in state %s", ErrReviewState, sess.state)
	}
	cfg := s.config()

	// 1. Every byte the holder reads must render as itself
	if !displayable(tx.Coin) {
		return fmt.Errorf("%w: coin is not printable UTF-8", ErrDisplayFail)
	}
	if !displayable(tx.Memo) {
		return fmt.Errorf("%w: memo is not printable UTF-8", ErrDisplayFail)
	}

	// 2. Amount, refused rather than truncated
	amount, err := format.Amount(string(tx.Coin), tx.Value)
	if err != nil {
		return fmt.Errorf("%w: amount: %v", ErrFieldTooLarge, err)
	}

	// 3. Destination
	destination := format.Address(tx.To)

	// 4. Ordered field list
	sess.add(model.FieldAmount, amount)
	sess.add(model.FieldDestination, destination)
	if !cfg.HideMemo {
		sess.add(model.FieldMemo, string(tx.Memo))
	}
	sess.state = StateFieldsBuilt
	return nil
}

// displayable reports whether b is valid UTF-8 made of printable runes and
// ASCII spaces only. Control characters (CR, LF, ESC, ...) could redraw the
// review screen.
func displayable(b []byte) bool {
	return utf8.Valid(b) && !bytes.ContainsFunc(b, func(r rune) bool { return !unicode.IsPrint(r) })
}

// Await shows the built fields and blocks on the holder:
// FieldsBuilt -> AwaitingApproval -> Approved | Rejected.
func (s *ReviewService) Await(sess *ReviewSession) error {
	if sess.state != StateFieldsBuilt {
		return fmt.Errorf("%w: await in state %s", ErrReviewState, sess.state)
	}
	sess.state = StateAwaitingApproval

	approved := s.display.ShowReview(ui.Review{
		Title:        [2]string{"Review ", "Transaction"},
		Icon:         ui.GlyphEye,
		Fields:       sess.Fields(),
		ApproveLabel: "Approve",
		ApproveIcon:  ui.GlyphValidate14,
		RejectLabel:  "Reject",
		RejectIcon:   ui.GlyphCrossmark,
	})

	outcome := "rejected"
	sess.state = StateRejected
	if approved {
		outcome = "approved"
		sess.state = StateApproved
	}
	monitor.Business.ReviewsTotal.WithLabelValues(outcome).Inc()
	logger.Info("review decided", zap.String("outcome", outcome), zap.Int("fields", sess.n))
	return nil
}
