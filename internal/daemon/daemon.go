package daemon

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// UnsavedGuard reports whether stopping now would lose changes
type UnsavedGuard interface {
	HasUnsavedChanges() bool
}

// Daemon serves the planner API until it is stopped or signalled
type Daemon struct {
	server          *http.Server
	guard           UnsavedGuard
	shutdownTimeout time.Duration
	logger          *zap.Logger
	ctx             context.Context
	cancel          context.CancelFunc
	mu              sync.Mutex
	refused         bool // a shutdown signal was already refused because of unsaved changes
}

// NewDaemon creates a new daemon instance
func NewDaemon(addr string, handler http.Handler, guard UnsavedGuard, shutdownTimeout time.Duration, logger *zap.Logger) *Daemon {
	ctx, cancel := context.WithCancel(context.Background())

	return &Daemon{
		server: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		guard:           guard,
		shutdownTimeout: shutdownTimeout,
		logger:          logger,
		ctx:             ctx,
		cancel:          cancel,
	}
}

// Start listens on the configured address and serves until stopped
func (d *Daemon) Start() error {
	listener, err := net.Listen("tcp", d.server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", d.server.Addr, err)
	}

	// Setup signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	return d.Serve(listener, sigChan)
}

// Serve runs the HTTP server on listener and reacts to signals until the
// daemon stops. With unsaved changes the first signal is refused and a second
// one forces the shutdown.
func (d *Daemon) Serve(listener net.Listener, signals <-chan os.Signal) error {
	d.logger.Info("Daemon started", zap.String("addr", listener.Addr().String()))

	errCh := make(chan error, 1)
	go func() {
		if err := d.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	for {
		select {
		case <-d.ctx.Done():
			d.logger.Info("Daemon stopped")
			return d.shutdown()

		case err, ok := <-errCh:
			if ok {
				return fmt.Errorf("http server failed: %w", err)
			}
			return nil

		case sig := <-signals:
			if !d.acceptSignal(sig) {
				continue
			}
			d.logger.Info("Received signal, shutting down",
				zap.String("signal", sig.String()))
			return d.shutdown()
		}
	}
}

// Stop stops the daemon
func (d *Daemon) Stop() {
	d.cancel()
}

func (d *Daemon) acceptSignal(sig os.Signal) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.guard == nil || d.refused || !d.guard.HasUnsavedChanges() {
		return true
	}

	d.refused = true
	d.logger.Warn("Unsaved changes, refusing to stop; save first or signal again to discard them",
		zap.String("signal", sig.String()))
	return false
}

func (d *Daemon) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), d.shutdownTimeout)
	defer cancel()

	if err := d.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	if d.guard != nil && d.guard.HasUnsavedChanges() {
		d.logger.Warn("Stopped with unsaved changes")
	}
	return nil
}
