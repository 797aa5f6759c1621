// Package server assembles the HTTP surface of the economy service.
package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/josh-kwaku/economy-hud/api"
	"github.com/josh-kwaku/economy-hud/internal/cache"
	"github.com/josh-kwaku/economy-hud/internal/config"
	"github.com/josh-kwaku/economy-hud/internal/forecast"
	"github.com/josh-kwaku/economy-hud/internal/handler"
	"github.com/josh-kwaku/economy-hud/internal/metrics"
	"github.com/josh-kwaku/economy-hud/internal/middleware"
	"github.com/josh-kwaku/economy-hud/internal/service"
	"github.com/josh-kwaku/economy-hud/internal/wallet"
)

type Server struct {
	Registry    *service.Registry
	Metrics     *metrics.Metrics
	Idempotency *cache.LRU[middleware.CachedResponse]
	Handler     http.Handler
}

func SettingsFromConfig(cfg *config.Config) service.Settings {
	return service.Settings{
		LedgerCapacity: cfg.LedgerCapacity,
		AllowNegative:  cfg.AllowNegativeBalances,
		Initial: wallet.Balances{
			Primary:   cfg.InitialPrimary,
			Secondary: cfg.InitialSecondary,
			Tertiary:  cfg.InitialTertiary,
		},
		ForecastMaxWeeks: cfg.ForecastMaxWeeks,
		Thresholds: forecast.Thresholds{
			LowBalance: cfg.ForecastLowBalance,
			Overspend:  cfg.ForecastOverspend,
		},
	}
}

func New(cfg *config.Config, logger *slog.Logger) *Server {
	m := metrics.New(nil)
	reg := service.NewRegistry(SettingsFromConfig(cfg), m, logger)
	idem := cache.NewLRU[middleware.CachedResponse](cfg.IdempotencyCacheSize, cfg.IdempotencyTTL)

	wallets := handler.NewWalletHandler(reg)
	projections := handler.NewProjectionHandler(reg)
	health := handler.NewHealthHandler(reg)

	authed := func(h http.HandlerFunc) http.Handler {
		return middleware.Logging(middleware.Auth(cfg.JWTSecret)(h))
	}
	idempotent := func(h http.HandlerFunc) http.Handler {
		return middleware.Logging(middleware.Auth(cfg.JWTSecret)(middleware.Idempotency(idem)(h)))
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", health.Liveness)
	mux.Handle("GET /metrics", m.Handler())
	mux.HandleFunc("GET /docs", handler.ServeDocs())
	mux.HandleFunc("GET /docs/openapi.yaml", handler.ServeSpec(api.Spec))

	mux.Handle("GET /api/v1/players/{id}/hud", authed(wallets.HUD))
	mux.Handle("GET /api/v1/players/{id}/transactions", authed(wallets.ListTransactions))
	mux.Handle("POST /api/v1/players/{id}/transactions", idempotent(wallets.RecordTransaction))
	mux.Handle("DELETE /api/v1/players/{id}/transactions", authed(wallets.ClearTransactions))
	mux.Handle("PUT /api/v1/players/{id}/forecast", authed(wallets.SetForecast))
	mux.Handle("POST /api/v1/players/{id}/forecast/weekly", authed(projections.WeeklyForecast))
	mux.Handle("POST /api/v1/players/{id}/simulate", authed(projections.Simulate))

	return &Server{
		Registry:    reg,
		Metrics:     m,
		Idempotency: idem,
		Handler:     middleware.Tracing(middleware.Recovery(mux)),
	}
}

func (s *Server) HTTPServer(port int) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.Handler,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
