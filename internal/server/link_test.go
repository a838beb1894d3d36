package server

import (
	"context"
	"errors"
	"io"
	"net"
	"sync"
	"testing"
	"time"

	"signer-core/pkg/apdu"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errStop = errors.New("stop")

// echoHandler replies with the command data and stops on InsExit.
type echoHandler struct {
	mu   sync.Mutex
	seen []apdu.Ins
}

func (h *echoHandler) Handle(cmd apdu.Command) (apdu.Response, error) {
	h.mu.Lock()
	h.seen = append(h.seen, cmd.Ins)
	h.mu.Unlock()
	if cmd.Ins == apdu.InsExit {
		return apdu.Response{}, errStop
	}
	return apdu.Response{Data: cmd.Data, SW: 0x9000}, nil
}

func (h *echoHandler) instructions() []apdu.Ins {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]apdu.Ins(nil), h.seen...)
}

func startServer(t *testing.T, h Handler) (net.Conn, <-chan error, context.CancelFunc) {
	t.Helper()
	srv := NewLinkServer(LinkConfig{Addr: "127.0.0.1:0", WriteTimeout: time.Second}, h)
	require.NoError(t, srv.Listen())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx) }()

	conn, err := net.Dial("tcp", srv.Addr().String())
	require.NoError(t, err)
	t.Cleanup(func() {
		conn.Close()
		cancel()
	})
	return conn, done, cancel
}

func exchange(t *testing.T, conn net.Conn, frame []byte) apdu.Response {
	t.Helper()
	require.NoError(t, apdu.WriteFrame(conn, nil, frame))
	buf := make([]byte, 512)
	n, err := apdu.ReadFrame(conn, buf)
	require.NoError(t, err)
	resp, err := apdu.ParseResponse(buf[:n])
	require.NoError(t, err)
	return resp
}

func TestLinkServer_Exchange(t *testing.T) {
	h := &echoHandler{}
	conn, _, _ := startServer(t, h)

	frame, err := apdu.Command{Cla: apdu.CLA, Ins: apdu.InsSign, Data: []byte("abc")}.AppendTo(nil)
	require.NoError(t, err)

	resp := exchange(t, conn, frame)
	assert.Equal(t, uint16(0x9000), resp.SW)
	assert.Equal(t, []byte("abc"), resp.Data)
}

func TestLinkServer_BadFrames(t *testing.T) {
	h := &echoHandler{}
	conn, _, _ := startServer(t, h)

	// shorter than a header
	assert.Equal(t, uint16(0x6E03), exchange(t, conn, []byte{0xE0, 0x03}).SW)

	// Lc disagrees with the data
	assert.Equal(t, uint16(0x6E03), exchange(t, conn, []byte{0xE0, 0x03, 0, 0, 9, 1}).SW)

	// longer than the command buffer: drained, answered, stream stays aligned
	big := make([]byte, apdu.MaxFrameLength+40)
	assert.Equal(t, uint16(0x6E03), exchange(t, conn, big).SW)

	frame, err := apdu.Command{Cla: apdu.CLA, Ins: apdu.InsGetPubkey}.AppendTo(nil)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x9000), exchange(t, conn, frame).SW)

	assert.Equal(t, []apdu.Ins{apdu.InsGetPubkey}, h.instructions())
}

func TestLinkServer_HandlerErrorStops(t *testing.T) {
	conn, done, _ := startServer(t, &echoHandler{})

	frame, err := apdu.Command{Cla: apdu.CLA, Ins: apdu.InsExit}.AppendTo(nil)
	require.NoError(t, err)
	require.NoError(t, apdu.WriteFrame(conn, nil, frame))

	select {
	case err := <-done:
		assert.ErrorIs(t, err, errStop)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}

	// no reply, the connection is closed
	var prefix [2]byte
	_, err = io.ReadFull(conn, prefix[:])
	assert.Error(t, err)
}

func TestLinkServer_ContextCancel(t *testing.T) {
	_, done, cancel := startServer(t, &echoHandler{})
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestLinkServer_NextHostAfterDisconnect(t *testing.T) {
	h := &echoHandler{}
	srv := NewLinkServer(LinkConfig{Addr: "127.0.0.1:0"}, h)
	require.NoError(t, srv.Listen())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = srv.Serve(ctx) }()

	frame := []byte{0xE0, 0x02, 0, 0, 0}
	for i := 0; i < 2; i++ {
		conn, err := net.Dial("tcp", srv.Addr().String())
		require.NoError(t, err)
		resp := exchange(t, conn, frame)
		assert.Equal(t, uint16(0x9000), resp.SW)
		conn.Close()
	}

	assert.Len(t, h.instructions(), 2)
}
