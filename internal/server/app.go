package server

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"signer-core/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Config struct {
	Link        LinkConfig
	MetricsAddr string // empty disables the HTTP side server
}

// App runs the link server and, optionally, the metrics side server.
type App struct {
	link       *LinkServer
	httpServer *http.Server
}

func New(cfg Config, h Handler, httpHandler *gin.Engine) *App {
	app := &App{link: NewLinkServer(cfg.Link, h)}
	if cfg.MetricsAddr != "" && httpHandler != nil {
		app.httpServer = &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           httpHandler,
			ReadHeaderTimeout: 5 * time.Second,
		}
	}
	return app
}

// Run blocks until SIGINT/SIGTERM, ctx cancellation or a handler error
// (such as an exit request), which is returned.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Bind the link first so a bad address fails before anything starts
	if err := a.link.Listen(); err != nil {
		return err
	}

	// 2. Start HTTP
	if a.httpServer != nil {
		go func() {
			logger.Info("Starting HTTP Server", zap.String("addr", a.httpServer.Addr))
			if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("HTTP Server failure", zap.Error(err))
			}
		}()
	}

	// 3. Serve the link (blocking)
	err := a.link.Serve(ctx)
	if err == nil {
		logger.Info("Shutting down signer...")
	}

	// 4. Graceful shutdown
	if a.httpServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP Server forced to shutdown", zap.Error(err))
		}
	}
	return err
}
