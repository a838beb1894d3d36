package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"syscall"
	"time"

	"signer-core/internal/model"
	"signer-core/pkg/apdu"
	"signer-core/pkg/errno"
)

// StatusError is a non-0x9000 reply.
type StatusError struct {
	SW uint16
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("device returned status 0x%04X (%s)", e.SW, errno.Message(e.SW))
}

// Client is the host side of the link. It is not safe for concurrent use.
type Client struct {
	conn    net.Conn
	timeout time.Duration
	buf     [apdu.MaxPayloadLength + apdu.SWLength]byte
}

// Dial connects to a device. timeout bounds each exchange; 0 waits forever,
// which is what a pending review needs.
func Dial(ctx context.Context, addr string, timeout time.Duration) (*Client, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial device %s: %w", addr, err)
	}
	return &Client{conn: conn, timeout: timeout}, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

// Exchange sends one command and waits for its reply. The returned data is
// a copy.
func (c *Client) Exchange(cmd apdu.Command) ([]byte, error) {
	resp, err := c.roundTrip(cmd)
	if err != nil {
		return nil, err
	}
	if resp.SW != errno.OK.Code {
		return nil, &StatusError{SW: resp.SW}
	}
	return append([]byte(nil), resp.Data...), nil
}

func (c *Client) roundTrip(cmd apdu.Command) (apdu.Response, error) {
	frame, err := cmd.AppendTo(make([]byte, 0, apdu.MaxFrameLength))
	if err != nil {
		return apdu.Response{}, err
	}

	if c.timeout > 0 {
		_ = c.conn.SetDeadline(time.Now().Add(c.timeout))
	}
	if err := apdu.WriteFrame(c.conn, nil, frame); err != nil {
		return apdu.Response{}, fmt.Errorf("send %s: %w", cmd.Ins, err)
	}
	n, err := apdu.ReadFrame(c.conn, c.buf[:])
	if err != nil {
		return apdu.Response{}, fmt.Errorf("receive %s: %w", cmd.Ins, err)
	}
	return apdu.ParseResponse(c.buf[:n])
}

func (c *Client) GetPubkey() ([]byte, error) {
	return c.Exchange(apdu.Command{Cla: apdu.CLA, Ins: apdu.InsGetPubkey})
}

// Sign submits tx for review. signed is false when the holder rejected it.
func (c *Client) Sign(tx model.Transaction) (signature []byte, signed bool, err error) {
	payload, err := tx.AppendTo(make([]byte, 0, apdu.MaxPayloadLength))
	if err != nil {
		return nil, false, err
	}
	sig, err := c.Exchange(apdu.Command{Cla: apdu.CLA, Ins: apdu.InsSign, Data: payload})
	if err != nil {
		return nil, false, err
	}
	return sig, len(sig) > 0, nil
}

// Menu opens the device menu and returns once the holder leaves it. If the
// holder picks Exit App the device closes the link, reported as exited.
func (c *Client) Menu() (exited bool, err error) {
	_, err = c.Exchange(apdu.Command{Cla: apdu.CLA, Ins: apdu.InsMenu})
	if isClosed(err) {
		return true, nil
	}
	return false, err
}

// Exit stops the device application. The device does not reply, so a
// closed link is success.
func (c *Client) Exit() error {
	_, err := c.Exchange(apdu.Command{Cla: apdu.CLA, Ins: apdu.InsExit})
	if err == nil || isClosed(err) {
		return nil
	}
	return err
}

func isClosed(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, net.ErrClosed) ||
		errors.Is(err, syscall.ECONNRESET)
}
