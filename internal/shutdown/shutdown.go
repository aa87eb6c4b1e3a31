package shutdown

import (
	"context"
	"errors"
	"log/slog"
	"os/signal"
	"syscall"
	"time"
)

// Server is the part of *fiber.App that Serve drives.
type Server interface {
	Listen(addr string) error
	ShutdownWithContext(ctx context.Context) error
}

// Serve listens on addr until ctx ends or the process gets SIGINT/SIGTERM,
// then gives in-flight requests up to grace to finish. A listener that fails
// before shutdown was asked for is returned as the error.
func Serve(ctx context.Context, srv Server, addr string, grace time.Duration, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", slog.String("addr", addr))
		errCh <- srv.Listen(addr)
	}()

	select {
	case err := <-errCh:
		if err == nil {
			err = errors.New("server stopped unexpectedly")
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", slog.Duration("grace", grace))
	drainCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	if err := srv.ShutdownWithContext(drainCtx); err != nil {
		return err
	}
	// Listen returns once the listener closes
	select {
	case <-errCh:
	case <-drainCtx.Done():
		log.Warn("listener did not close within grace period")
	}
	return nil
}

