// Package wallet holds the three resource balances and the forecast value,
// records each balance mutation in an attached ledger, and notifies observers.
package wallet

import (
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/josh-kwaku/economy-hud/internal/domain"
	"github.com/josh-kwaku/economy-hud/internal/ledger"
)

type Balances struct {
	Primary   int64 `json:"primary"`
	Secondary int64 `json:"secondary"`
	Tertiary  int64 `json:"tertiary"`
}

func (b Balances) Get(kind domain.ResourceKind) int64 {
	switch kind {
	case domain.ResourcePrimary:
		return b.Primary
	case domain.ResourceSecondary:
		return b.Secondary
	case domain.ResourceTertiary:
		return b.Tertiary
	}
	return 0
}

func (b *Balances) add(kind domain.ResourceKind, amount int64) {
	switch kind {
	case domain.ResourcePrimary:
		b.Primary += amount
	case domain.ResourceSecondary:
		b.Secondary += amount
	case domain.ResourceTertiary:
		b.Tertiary += amount
	}
}

// Event describes a committed balance mutation.
type Event struct {
	Transaction domain.Transaction
	Balances    Balances
	Recorded    bool // a ledger was attached and received the transaction
	Evicted     bool // recording the transaction evicted the oldest ledger entry
}

type (
	Listener          func(Event) error
	ForecastListener  func(value int64) error
	ListenerErrorHook func(id uuid.UUID, err error)
)

// View is a consistent read of balances, forecast and ledger contents.
type View struct {
	Balances Balances
	Forecast int64
	Entries  []domain.Transaction
}

type subscription[T any] struct {
	id uuid.UUID
	fn T
}

type Wallet struct {
	mu            sync.RWMutex
	balances      Balances
	forecast      int64
	ledger        *ledger.Store
	allowNegative bool
	now           func() time.Time
	logger        *slog.Logger
	onListenerErr ListenerErrorHook

	listeners         []subscription[Listener]
	forecastListeners []subscription[ForecastListener]

	warnNoLedger sync.Once
}

type Option func(*Wallet)

func WithLedger(store *ledger.Store) Option {
	return func(w *Wallet) { w.ledger = store }
}

// WithAllowNegative controls whether a mutation may take a balance below zero.
// Wallets are permissive unless told otherwise.
func WithAllowNegative(allow bool) Option {
	return func(w *Wallet) { w.allowNegative = allow }
}

func WithInitialBalances(b Balances) Option {
	return func(w *Wallet) { w.balances = b }
}

func WithClock(now func() time.Time) Option {
	return func(w *Wallet) { w.now = now }
}

func WithLogger(logger *slog.Logger) Option {
	return func(w *Wallet) { w.logger = logger }
}

func WithListenerErrorHook(hook ListenerErrorHook) Option {
	return func(w *Wallet) { w.onListenerErr = hook }
}

func New(opts ...Option) *Wallet {
	w := &Wallet{
		allowNegative: true,
		now:           func() time.Time { return time.Now().UTC() },
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Wallet) AddPrimary(amount int64, description string) (domain.Transaction, error) {
	return w.Add(domain.ResourcePrimary, amount, description)
}

func (w *Wallet) AddSecondary(amount int64, description string) (domain.Transaction, error) {
	return w.Add(domain.ResourceSecondary, amount, description)
}

func (w *Wallet) AddTertiary(amount int64, description string) (domain.Transaction, error) {
	return w.Add(domain.ResourceTertiary, amount, description)
}

// Add applies amount to the balance of kind, records the transaction in the
// attached ledger, then notifies listeners in registration order.
func (w *Wallet) Add(kind domain.ResourceKind, amount int64, description string) (domain.Transaction, error) {
	if !kind.IsValid() {
		return domain.Transaction{}, fmt.Errorf("Add: %q: %w", kind, domain.ErrInvalidResource)
	}

	w.mu.Lock()
	current := w.balances.Get(kind)
	if overflows(current, amount) {
		w.mu.Unlock()
		return domain.Transaction{}, fmt.Errorf("Add: %s balance %d plus %d: %w",
			kind, current, amount, domain.ErrBalanceOverflow)
	}
	if !w.allowNegative && amount < 0 && current+amount < 0 {
		w.mu.Unlock()
		return domain.Transaction{}, fmt.Errorf("Add: %s balance %d cannot cover %d: %w",
			kind, current, amount, domain.ErrInsufficientBalance)
	}

	tx := domain.NewTransaction(kind, amount, description, w.now())
	w.balances.add(kind, amount)

	event := Event{Transaction: tx, Balances: w.balances}
	if w.ledger != nil {
		event.Recorded = true
		event.Evicted = w.ledger.Append(tx)
	}
	listeners := append([]subscription[Listener](nil), w.listeners...)
	w.mu.Unlock()

	if !event.Recorded {
		w.warnNoLedger.Do(func() {
			w.logger.Warn("wallet has no ledger attached, transactions are not recorded")
		})
	}

	for _, l := range listeners {
		w.notify(l.id, func() error { return l.fn(event) })
	}
	return tx, nil
}

func overflows(balance, amount int64) bool {
	if amount > 0 {
		return balance > math.MaxInt64-amount
	}
	return balance < math.MinInt64-amount
}

// SetForecast replaces the forecast value and notifies forecast listeners only.
func (w *Wallet) SetForecast(value int64) {
	w.mu.Lock()
	w.forecast = value
	listeners := append([]subscription[ForecastListener](nil), w.forecastListeners...)
	w.mu.Unlock()

	for _, l := range listeners {
		w.notify(l.id, func() error { return l.fn(value) })
	}
}

func (w *Wallet) notify(id uuid.UUID, call func() error) {
	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("listener panic: %v", r)
			}
		}()
		return call()
	}()
	if err == nil {
		return
	}

	w.logger.Warn("wallet listener failed", "subscription_id", id, "error", err)
	if w.onListenerErr != nil {
		w.onListenerErr(id, err)
	}
}

func (w *Wallet) Subscribe(l Listener) uuid.UUID {
	id := uuid.New()
	w.mu.Lock()
	w.listeners = append(w.listeners, subscription[Listener]{id: id, fn: l})
	w.mu.Unlock()
	return id
}

func (w *Wallet) SubscribeForecast(l ForecastListener) uuid.UUID {
	id := uuid.New()
	w.mu.Lock()
	w.forecastListeners = append(w.forecastListeners, subscription[ForecastListener]{id: id, fn: l})
	w.mu.Unlock()
	return id
}

// Unsubscribe removes a wallet or forecast listener. It reports whether id was registered.
func (w *Wallet) Unsubscribe(id uuid.UUID) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	var removed bool
	w.listeners, removed = without(w.listeners, id)
	if removed {
		return true
	}
	w.forecastListeners, removed = without(w.forecastListeners, id)
	return removed
}

func without[T any](subs []subscription[T], id uuid.UUID) ([]subscription[T], bool) {
	for i, s := range subs {
		if s.id == id {
			return append(subs[:i:i], subs[i+1:]...), true
		}
	}
	return subs, false
}

func (w *Wallet) Primary() int64   { return w.Balance(domain.ResourcePrimary) }
func (w *Wallet) Secondary() int64 { return w.Balance(domain.ResourceSecondary) }
func (w *Wallet) Tertiary() int64  { return w.Balance(domain.ResourceTertiary) }

func (w *Wallet) Balance(kind domain.ResourceKind) int64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.balances.Get(kind)
}

func (w *Wallet) Balances() Balances {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.balances
}

func (w *Wallet) Forecast() int64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.forecast
}

// Ledger returns the attached store, or nil.
func (w *Wallet) Ledger() *ledger.Store {
	return w.ledger
}

func (w *Wallet) View() View {
	w.mu.RLock()
	defer w.mu.RUnlock()

	v := View{Balances: w.balances, Forecast: w.forecast}
	if w.ledger != nil {
		v.Entries = w.ledger.Snapshot()
	}
	return v
}

// ClearLedger empties the attached ledger under the wallet lock. It is a no-op without a ledger.
func (w *Wallet) ClearLedger() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.ledger != nil {
		w.ledger.Clear()
	}
}
