package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/josh-kwaku/economy-hud/internal/domain"
	"github.com/josh-kwaku/economy-hud/internal/forecast"
	"github.com/josh-kwaku/economy-hud/internal/ledger"
	"github.com/josh-kwaku/economy-hud/internal/logging"
	"github.com/josh-kwaku/economy-hud/internal/metrics"
	"github.com/josh-kwaku/economy-hud/internal/simulate"
	"github.com/josh-kwaku/economy-hud/internal/viewmodel"
	"github.com/josh-kwaku/economy-hud/internal/wallet"
)

const maxDescriptionLen = 200

type Settings struct {
	LedgerCapacity   int
	AllowNegative    bool
	Initial          wallet.Balances
	ForecastMaxWeeks int
	Thresholds       forecast.Thresholds
}

type player struct {
	wallet    *wallet.Wallet
	presenter *viewmodel.Presenter
}

// Registry owns one wallet and ledger per player, created on first use.
type Registry struct {
	settings  Settings
	metrics   *metrics.Metrics
	forecasts *forecast.Source
	logger    *slog.Logger

	mu      sync.RWMutex
	players map[uuid.UUID]*player
}

func NewRegistry(settings Settings, m *metrics.Metrics, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		settings:  settings,
		metrics:   m,
		forecasts: forecast.NewSource(settings.ForecastMaxWeeks, settings.Thresholds, logger),
		logger:    logger,
		players:   make(map[uuid.UUID]*player),
	}
}

type TransactionResult struct {
	Entry    viewmodel.Entry `json:"entry"`
	Balances wallet.Balances `json:"balances"`
}

func (r *Registry) player(ctx context.Context, id uuid.UUID) *player {
	r.mu.RLock()
	p, ok := r.players[id]
	r.mu.RUnlock()
	if ok {
		return p
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.players[id]; ok {
		return p
	}

	logger := r.logger.With("player_id", id)
	opts := []wallet.Option{
		wallet.WithLedger(ledger.New(r.settings.LedgerCapacity)),
		wallet.WithAllowNegative(r.settings.AllowNegative),
		wallet.WithInitialBalances(r.settings.Initial),
		wallet.WithLogger(logger),
	}
	if r.metrics != nil {
		opts = append(opts, wallet.WithListenerErrorHook(r.metrics.ListenerErrorHook(logger)))
	}
	w := wallet.New(opts...)
	if r.metrics != nil {
		w.Subscribe(r.metrics.WalletListener())
		w.SubscribeForecast(r.metrics.ForecastListener())
	}

	pres := viewmodel.NewPresenter(w, viewmodel.RenderFunc(func(vm viewmodel.ViewModel) error {
		logger.Debug("hud refreshed",
			"primary", vm.Balances.Primary,
			"secondary", vm.Balances.Secondary,
			"tertiary", vm.Balances.Tertiary,
			"forecast", vm.ForecastText,
		)
		return nil
	}), logger)
	pres.Activate()

	p = &player{wallet: w, presenter: pres}
	r.players[id] = p

	logging.FromContext(ctx).Info("wallet opened", "player_id", id)
	return p
}

func (r *Registry) HUD(ctx context.Context, playerID uuid.UUID) viewmodel.ViewModel {
	return r.player(ctx, playerID).presenter.Current()
}

// Transactions returns up to limit ledger entries, newest first. limit <= 0 returns all.
func (r *Registry) Transactions(ctx context.Context, playerID uuid.UUID, limit int) []viewmodel.Entry {
	store := r.player(ctx, playerID).wallet.Ledger()
	return viewmodel.Entries(store.Recent(limit))
}

func (r *Registry) RecordTransaction(ctx context.Context, playerID uuid.UUID, kind domain.ResourceKind, amount int64, description string) (*TransactionResult, error) {
	log := logging.FromContext(ctx)

	description = strings.TrimSpace(description)
	if len(description) > maxDescriptionLen {
		return nil, fmt.Errorf("RecordTransaction: description longer than %d: %w", maxDescriptionLen, domain.ErrInvalidRequest)
	}
	if !kind.IsValid() {
		return nil, fmt.Errorf("RecordTransaction: %w", domain.ErrInvalidResource)
	}

	p := r.player(ctx, playerID)
	tx, err := p.wallet.Add(kind, amount, description)
	if err != nil {
		return nil, fmt.Errorf("RecordTransaction: %w", err)
	}

	balances := p.wallet.Balances()
	log.Info("transaction recorded",
		"player_id", playerID,
		"transaction_id", tx.ID,
		"resource", kind,
		"amount", amount,
		"balance_after", balances.Get(kind),
	)

	return &TransactionResult{
		Entry:    viewmodel.Entries([]domain.Transaction{tx})[0],
		Balances: balances,
	}, nil
}

func (r *Registry) ClearLedger(ctx context.Context, playerID uuid.UUID) error {
	p := r.player(ctx, playerID)
	p.wallet.ClearLedger()
	if err := p.presenter.Refresh(); err != nil {
		return fmt.Errorf("ClearLedger: %w", err)
	}
	logging.FromContext(ctx).Info("ledger cleared", "player_id", playerID)
	return nil
}

func (r *Registry) SetForecast(ctx context.Context, playerID uuid.UUID, value int64) viewmodel.ViewModel {
	p := r.player(ctx, playerID)
	p.wallet.SetForecast(value)
	logging.FromContext(ctx).Info("forecast set", "player_id", playerID, "forecast", value)
	return p.presenter.Current()
}

// RunForecast projects the player's primary balance and pushes the next-week
// net change into the wallet's forecast.
func (r *Registry) RunForecast(ctx context.Context, playerID uuid.UUID, req forecast.Request) (*forecast.Result, error) {
	p := r.player(ctx, playerID)
	req.CurrentBalance = p.wallet.Primary()

	res, err := r.forecasts.Push(p.wallet, req)
	if err != nil {
		return nil, fmt.Errorf("RunForecast: %w", err)
	}

	logging.FromContext(ctx).Info("forecast computed",
		"player_id", playerID,
		"weeks", req.Weeks,
		"next_week", res.NextWeek(),
		"alerts", len(res.Alerts),
	)
	return &res, nil
}

// Simulate runs a week against a copy of the player's balances. The live wallet is unchanged.
func (r *Registry) Simulate(ctx context.Context, playerID uuid.UUID, params simulate.Params) (*simulate.Result, error) {
	p := r.player(ctx, playerID)

	res, err := simulate.Run(p.wallet.Balances(), params)
	if err != nil {
		return nil, fmt.Errorf("Simulate: %w", err)
	}
	return &res, nil
}

// Close deactivates every presenter.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.players {
		p.presenter.Deactivate()
	}
}

func (r *Registry) Players() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.players)
}
