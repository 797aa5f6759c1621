package viewmodel

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/josh-kwaku/economy-hud/internal/wallet"
)

// Renderer draws a ViewModel. Implementations belong to the presentation layer.
type Renderer interface {
	Render(vm ViewModel) error
}

type RenderFunc func(vm ViewModel) error

func (f RenderFunc) Render(vm ViewModel) error { return f(vm) }

// Presenter re-renders on every wallet or forecast notification while active.
type Presenter struct {
	wallet   *wallet.Wallet
	renderer Renderer
	logger   *slog.Logger

	mu          sync.Mutex
	active      bool
	walletSub   uuid.UUID
	forecastSub uuid.UUID
	current     ViewModel
}

func NewPresenter(w *wallet.Wallet, r Renderer, logger *slog.Logger) *Presenter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Presenter{wallet: w, renderer: r, logger: logger}
}

// Activate registers with the wallet and renders the current state.
// A presenter without a wallet or renderer logs a warning and stays inactive.
func (p *Presenter) Activate() {
	if p.wallet == nil || p.renderer == nil {
		p.logger.Warn("presenter not activated: missing collaborator",
			"has_wallet", p.wallet != nil,
			"has_renderer", p.renderer != nil,
		)
		return
	}

	p.mu.Lock()
	if p.active {
		p.mu.Unlock()
		return
	}
	p.active = true
	p.walletSub = p.wallet.Subscribe(func(wallet.Event) error { return p.refresh() })
	p.forecastSub = p.wallet.SubscribeForecast(func(int64) error { return p.refresh() })
	p.mu.Unlock()

	if err := p.refresh(); err != nil {
		p.logger.Warn("initial render failed", "error", err)
	}
}

// Deactivate deregisters from the wallet. It is safe to call more than once.
func (p *Presenter) Deactivate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.active {
		return
	}
	p.wallet.Unsubscribe(p.walletSub)
	p.wallet.Unsubscribe(p.forecastSub)
	p.active = false
}

func (p *Presenter) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}

// Current returns the most recently rendered view model.
func (p *Presenter) Current() ViewModel {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Refresh rebuilds and renders the view model. Wallet changes that do not
// notify listeners, such as clearing the ledger, need an explicit Refresh.
func (p *Presenter) Refresh() error {
	if !p.Active() {
		return nil
	}
	return p.refresh()
}

// refresh builds and stores under mu so the stored value always follows the
// latest wallet notification.
func (p *Presenter) refresh() error {
	p.mu.Lock()
	vm := Build(p.wallet)
	p.current = vm
	p.mu.Unlock()
	return p.renderer.Render(vm)
}
