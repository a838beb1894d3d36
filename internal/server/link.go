package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"signer-core/pkg/apdu"
	"signer-core/pkg/errno"
	"signer-core/pkg/logger"

	"go.uber.org/zap"
)

// Handler answers one command. A non-nil error stops the server and is
// returned from Serve; no reply is written for it.
type Handler interface {
	Handle(cmd apdu.Command) (apdu.Response, error)
}

type LinkConfig struct {
	Addr         string
	ReadTimeout  time.Duration // idle time allowed between commands, 0 = none
	WriteTimeout time.Duration
}

// Comm holds the fixed buffers of the link. Every command is read into rx
// and every reply is built in reply and tx, so a command's data is only
// valid until the next frame is read.
type Comm struct {
	rx    [apdu.MaxFrameLength]byte
	reply [apdu.MaxPayloadLength + apdu.SWLength]byte
	tx    [apdu.LengthPrefix + apdu.MaxPayloadLength + apdu.SWLength]byte
}

// LinkServer serves the device over TCP, one connection and one command at
// a time.
type LinkServer struct {
	cfg      LinkConfig
	handler  Handler
	listener net.Listener
	comm     Comm
}

func NewLinkServer(cfg LinkConfig, handler Handler) *LinkServer {
	return &LinkServer{cfg: cfg, handler: handler}
}

// Listen binds the configured address.
func (s *LinkServer) Listen() error {
	lis, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on link address %s: %w", s.cfg.Addr, err)
	}
	s.listener = lis
	return nil
}

// Addr is the bound address, useful with port 0.
func (s *LinkServer) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Serve accepts hosts until ctx is done (returns nil) or the handler
// returns an error (returned as is).
func (s *LinkServer) Serve(ctx context.Context) error {
	if s.listener == nil {
		if err := s.Listen(); err != nil {
			return err
		}
	}
	defer s.listener.Close()

	var (
		mu     sync.Mutex
		active net.Conn
	)
	stop := context.AfterFunc(ctx, func() {
		s.listener.Close()
		mu.Lock()
		if active != nil {
			active.Close()
		}
		mu.Unlock()
	})
	defer stop()

	logger.Info("Starting link server", zap.String("addr", s.listener.Addr().String()))
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("link accept: %w", err)
		}

		mu.Lock()
		active = conn
		mu.Unlock()
		if ctx.Err() != nil {
			conn.Close()
			return nil
		}

		err = s.serveConn(conn)

		mu.Lock()
		active = nil
		mu.Unlock()
		conn.Close()

		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

// serveConn runs the command loop of one host. It returns nil when the host
// goes away and the handler's error otherwise.
func (s *LinkServer) serveConn(conn net.Conn) error {
	remote := conn.RemoteAddr().String()
	logger.Info("host connected", zap.String("remote", remote))

	for {
		if s.cfg.ReadTimeout > 0 {
			_ = conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout))
		} else {
			_ = conn.SetReadDeadline(time.Time{})
		}

		n, err := apdu.ReadFrame(conn, s.comm.rx[:])
		switch {
		case errors.Is(err, apdu.ErrFrameTooLarge):
			logger.Warn("oversized frame dropped", zap.String("remote", remote), zap.Error(err))
			if err := s.reply(conn, apdu.Response{SW: errno.WrongLength.Code}); err != nil {
				return nil
			}
			continue
		case err != nil:
			if !errors.Is(err, io.EOF) && !errors.Is(err, net.ErrClosed) {
				logger.Info("host link closed", zap.String("remote", remote), zap.Error(err))
			}
			return nil
		}

		cmd, err := apdu.ParseCommand(s.comm.rx[:n])
		if err != nil {
			logger.Warn("bad frame", zap.String("remote", remote), zap.Error(err))
			if err := s.reply(conn, apdu.Response{SW: errno.WrongLength.Code}); err != nil {
				return nil
			}
			continue
		}

		resp, err := s.handler.Handle(cmd)
		if err != nil {
			return err
		}
		if err := s.reply(conn, resp); err != nil {
			logger.Warn("reply failed", zap.String("remote", remote), zap.Error(err))
			return nil
		}
	}
}

func (s *LinkServer) reply(conn net.Conn, resp apdu.Response) error {
	if s.cfg.WriteTimeout > 0 {
		_ = conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
	}
	if len(resp.Data) > apdu.MaxPayloadLength {
		resp = apdu.Response{SW: errno.InternalError.Code}
	}
	payload := resp.AppendTo(s.comm.reply[:0])
	return apdu.WriteFrame(conn, s.comm.tx[:], payload)
}
