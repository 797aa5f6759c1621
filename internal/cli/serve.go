package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/josh-kwaku/economy-hud/internal/config"
	"github.com/josh-kwaku/economy-hud/internal/logging"
	"github.com/josh-kwaku/economy-hud/internal/server"
)

const idempotencySweepInterval = 10 * time.Minute

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the HUD API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := logging.Init("economy-hud", cfg.LogLevel, cfg.AppEnv)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, logger)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	s := server.New(cfg, logger)
	srv := s.HTTPServer(cfg.Port)
	defer s.Registry.Close()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server started", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("serve: shutdown: %w", err)
		}
		logger.Info("server stopped")
		return nil
	})

	g.Go(func() error {
		ticker := time.NewTicker(idempotencySweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				if n := s.Idempotency.CleanExpired(); n > 0 {
					logger.Debug("expired idempotency entries removed", "count", n)
				}
			}
		}
	})

	return g.Wait()
}
