// Package metrics exposes wallet activity as Prometheus counters.
package metrics

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/josh-kwaku/economy-hud/internal/wallet"
)

type Metrics struct {
	gatherer prometheus.Gatherer

	mutations        *prometheus.CounterVec
	evictions        prometheus.Counter
	listenerFailures prometheus.Counter
	forecastUpdates  prometheus.Counter
}

// New registers the economy collectors on reg. A nil reg gets a fresh registry
// so tests and multiple servers do not collide on the global one.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	f := promauto.With(reg)

	return &Metrics{
		gatherer: reg,
		mutations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "economy",
			Name:      "wallet_mutations_total",
			Help:      "Balance mutations applied, by resource.",
		}, []string{"resource"}),
		evictions: f.NewCounter(prometheus.CounterOpts{
			Namespace: "economy",
			Name:      "ledger_evictions_total",
			Help:      "Ledger entries dropped because a ledger was full.",
		}),
		listenerFailures: f.NewCounter(prometheus.CounterOpts{
			Namespace: "economy",
			Name:      "listener_failures_total",
			Help:      "Wallet listeners that returned an error or panicked.",
		}),
		forecastUpdates: f.NewCounter(prometheus.CounterOpts{
			Namespace: "economy",
			Name:      "forecast_updates_total",
			Help:      "Forecast values pushed into wallets.",
		}),
	}
}

// WalletListener counts every committed mutation and any ledger eviction it caused.
func (m *Metrics) WalletListener() wallet.Listener {
	return func(e wallet.Event) error {
		m.mutations.WithLabelValues(string(e.Transaction.Resource)).Inc()
		if e.Evicted {
			m.evictions.Inc()
		}
		return nil
	}
}

func (m *Metrics) ForecastListener() wallet.ForecastListener {
	return func(int64) error {
		m.forecastUpdates.Inc()
		return nil
	}
}

func (m *Metrics) ListenerErrorHook(logger *slog.Logger) wallet.ListenerErrorHook {
	return func(id uuid.UUID, err error) {
		m.listenerFailures.Inc()
		if logger != nil {
			logger.Debug("listener failure counted", "subscription_id", id, "error", err)
		}
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
