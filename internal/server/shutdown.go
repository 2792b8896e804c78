package server

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// shutdownGrace bounds how long in-flight page renders may run once a
// termination signal arrives.
const shutdownGrace = 10 * time.Second

// GracefulShutdown blocks until SIGINT or SIGTERM, then drains the HTTP
// server and signals completion on done.
func GracefulShutdown(srv *http.Server, logger *zap.Logger, done chan bool) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	logger.Info("Shutdown signal received, draining requests",
		zap.Duration("grace", shutdownGrace))

	// Restore default signal handling so a second signal kills immediately.
	stop()

	drainCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	if err := srv.Shutdown(drainCtx); err != nil {
		logger.Error("Drain incomplete, closing anyway", zap.Error(err))
	}

	logger.Info("HTTP server stopped")
	done <- true
}
