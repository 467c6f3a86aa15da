// Command mock-server serves the static appetizers backend the client is
// developed and tested against.
package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"go.uber.org/zap"

	"github.com/xenking/appetizers/internal/mockserver"
	"github.com/xenking/appetizers/pkg/health"
	"github.com/xenking/appetizers/pkg/httpmiddleware"
)

func main() {
	app.Run(func(ctx context.Context, lg *zap.Logger, _ *app.Telemetry) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return run(ctx, lg, cfg)
	})
}

func run(ctx context.Context, lg *zap.Logger, cfg *Config) error {
	srv, err := mockserver.New(mockserver.Config{ImageBaseURL: cfg.ImageBaseURL}, lg.Named("mockserver"))
	if err != nil {
		return errors.Wrap(err, "create mock server")
	}

	srv.Health().AddCheck("goroutines", time.Second, health.GoroutineCountCheck(1000))
	srv.Health().Start(ctx, 10*time.Second)
	defer srv.Health().Stop()

	server := &http.Server{
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		Addr:              cfg.Addr,
		Handler: httpmiddleware.Wrap(srv.Handler(),
			httpmiddleware.Recovery(),
			httpmiddleware.AllowAllCORS(),
			httpmiddleware.RequestID(),
			httpmiddleware.InjectLogger(lg),
			httpmiddleware.LogRequests(),
		),
	}

	// Graceful shutdown: wait for context cancellation, then drain.
	shutdownDone := make(chan struct{})
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Graceful.ShutdownTimeout)
		defer cancel()

		lg.Info("Shutting down", zap.Duration("timeout", cfg.Graceful.ShutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			lg.Error("Server shutdown error", zap.Error(err))
		}
		close(shutdownDone)
	}()

	lg.Info("Mock server listening", zap.String("addr", cfg.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "server")
	}
	<-shutdownDone
	return nil
}
