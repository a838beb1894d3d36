package service

import (
	"testing"

	"signer-core/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioTx() *model.Transaction {
	return &model.Transaction{Coin: []byte("BTC"), Value: 1500, Memo: []byte("test")}
}

func TestReview_Scenario(t *testing.T) {
	for _, approve := range []bool{true, false} {
		display := &fakeDisplay{approve: approve}
		svc := NewReviewService(display, nil)

		var sess ReviewSession
		got, err := svc.Review(&sess, scenarioTx())
		require.NoError(t, err)
		assert.Equal(t, approve, got)

		require.Len(t, display.reviews, 1)
		r := display.reviews[0]
		assert.Equal(t, [2]string{"Review ", "Transaction"}, r.Title)
		assert.Equal(t, "Approve", r.ApproveLabel)
		assert.Equal(t, "Reject", r.RejectLabel)
		assert.Equal(t, []model.Field{
			{Name: "Amount", Value: "BTC 1500"},
			{Name: "Destination", Value: "0x0000000000000000000000000000000000000000"},
			{Name: "Memo", Value: "test"},
		}, r.Fields)
	}
}

func TestReview_HideMemoReadPerReview(t *testing.T) {
	hide := true
	display := &fakeDisplay{approve: true}
	svc := NewReviewService(display, func() ReviewConfig { return ReviewConfig{HideMemo: hide} })

	var sess ReviewSession
	_, err := svc.Review(&sess, scenarioTx())
	require.NoError(t, err)
	assert.Len(t, display.reviews[0].Fields, 2)

	hide = false
	sess.Reset()
	_, err = svc.Review(&sess, scenarioTx())
	require.NoError(t, err)
	assert.Len(t, display.reviews[1].Fields, 3)
}

func TestReview_FailuresShowNothing(t *testing.T) {
	tests := []struct {
		name    string
		tx      *model.Transaction
		wantErr error
	}{
		{"coin over display budget", &model.Transaction{Coin: []byte("ABCDEFGHIJK"), Value: 1}, ErrFieldTooLarge},
		{"coin not utf8", &model.Transaction{Coin: []byte{0xff, 0xfe}, Value: 1}, ErrDisplayFail},
		{"memo not utf8", &model.Transaction{Coin: []byte("BTC"), Memo: []byte{0xc3, 0x28}}, ErrDisplayFail},
		{"coin over budget and not utf8", &model.Transaction{Coin: []byte("ABCDEFGHIJ\xff"), Value: 1}, ErrDisplayFail},
		{"coin with escape", &model.Transaction{Coin: []byte("BTC\x1b[2K"), Value: 1}, ErrDisplayFail},
		{"memo with line break", &model.Transaction{Coin: []byte("BTC"), Memo: []byte("ok\r\n  Amount       BTC 1")}, ErrDisplayFail},
		{"memo with cursor escapes", &model.Transaction{Coin: []byte("BTC"), Memo: []byte("ok\x1b[1A\x1b[2K")}, ErrDisplayFail},
		{"memo with tab", &model.Transaction{Coin: []byte("BTC"), Memo: []byte("a\tb")}, ErrDisplayFail},
		{"memo with C1 control", &model.Transaction{Coin: []byte("BTC"), Memo: []byte("a\u009bb")}, ErrDisplayFail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			display := &fakeDisplay{approve: true}
			var sess ReviewSession
			approved, err := NewReviewService(display, nil).Review(&sess, tt.tx)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.False(t, approved)
			assert.Empty(t, display.reviews)
			assert.Equal(t, StateIdle, sess.State())
		})
	}
}

func TestReview_PrintableUnicodeShown(t *testing.T) {
	display := &fakeDisplay{approve: true}
	tx := &model.Transaction{Coin: []byte("ΞTH"), Value: 7, Memo: []byte("café rent, 2 × €")}

	var sess ReviewSession
	approved, err := NewReviewService(display, nil).Review(&sess, tx)
	require.NoError(t, err)
	assert.True(t, approved)
	require.Len(t, display.reviews, 1)
	assert.Equal(t, "ΞTH 7", display.reviews[0].Fields[0].Value)
	assert.Equal(t, "café rent, 2 × €", display.reviews[0].Fields[2].Value)
}

func TestReviewSession_StateMachine(t *testing.T) {
	display := &fakeDisplay{approve: false}
	svc := NewReviewService(display, nil)
	var sess ReviewSession

	_, err := sess.Consume()
	assert.ErrorIs(t, err, ErrReviewState)
	assert.ErrorIs(t, svc.Await(&sess), ErrReviewState)

	require.NoError(t, svc.BuildFields(&sess, scenarioTx()))
	assert.Equal(t, StateFieldsBuilt, sess.State())
	assert.ErrorIs(t, svc.BuildFields(&sess, scenarioTx()), ErrReviewState)

	require.NoError(t, svc.Await(&sess))
	assert.Equal(t, StateRejected, sess.State())

	approved, err := sess.Consume()
	require.NoError(t, err)
	assert.False(t, approved)

	_, err = sess.Consume()
	assert.ErrorIs(t, err, ErrSessionConsumed)

	sess.Reset()
	assert.Equal(t, StateIdle, sess.State())
	assert.Empty(t, sess.Fields())
}
