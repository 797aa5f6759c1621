package viewmodel

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josh-kwaku/economy-hud/internal/domain"
	"github.com/josh-kwaku/economy-hud/internal/ledger"
	"github.com/josh-kwaku/economy-hud/internal/wallet"
)

func newWallet() *wallet.Wallet {
	return wallet.New(
		wallet.WithLedger(ledger.New(10)),
		wallet.WithInitialBalances(wallet.Balances{Primary: 100}),
		wallet.WithClock(func() time.Time { return time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC) }),
	)
}

func TestFormatSigned(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{in: 120, want: "+120"},
		{in: 0, want: "+0"},
		{in: -200, want: "-200"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, FormatSigned(tc.in))
	}
}

func TestBuild(t *testing.T) {
	w := newWallet()
	_, err := w.AddPrimary(150, "match win")
	require.NoError(t, err)
	_, err = w.AddPrimary(-30, "coach hiring")
	require.NoError(t, err)
	w.SetForecast(-200)

	vm := Build(w)
	assert.Equal(t, int64(220), vm.Balances.Primary)
	assert.Equal(t, int64(-200), vm.Forecast)
	assert.Equal(t, "-200", vm.ForecastText)
	require.Len(t, vm.Entries, 2)
	assert.Equal(t, "[-] - 30 Coins", vm.Entries[0].Text)
	assert.Equal(t, "coach hiring", vm.Entries[0].Description)
	assert.Equal(t, "[+] + 150 Coins", vm.Entries[1].Text)
	assert.Equal(t, domain.ResourcePrimary, vm.Entries[1].Resource)
}

func TestPresenterLifecycle(t *testing.T) {
	w := newWallet()
	var renders []ViewModel
	p := NewPresenter(w, RenderFunc(func(vm ViewModel) error {
		renders = append(renders, vm)
		return nil
	}), nil)

	p.Activate()
	require.True(t, p.Active())
	require.Len(t, renders, 1)

	_, err := w.AddSecondary(3, "")
	require.NoError(t, err)
	w.SetForecast(45)

	require.Len(t, renders, 3)
	assert.Equal(t, int64(3), renders[1].Balances.Secondary)
	assert.Len(t, renders[1].Entries, 1)
	assert.Equal(t, "+45", renders[2].ForecastText)
	assert.Equal(t, renders[2], p.Current())

	p.Activate()
	_, err = w.AddPrimary(1, "")
	require.NoError(t, err)
	assert.Len(t, renders, 4, "second Activate must not double-subscribe")

	p.Deactivate()
	p.Deactivate()
	assert.False(t, p.Active())

	_, err = w.AddPrimary(1, "")
	require.NoError(t, err)
	w.SetForecast(1)
	assert.Len(t, renders, 4)
}

func TestPresenterRenderFailureDoesNotBlockWallet(t *testing.T) {
	w := newWallet()
	p := NewPresenter(w, RenderFunc(func(ViewModel) error { return errors.New("widget gone") }), nil)
	p.Activate()

	_, err := w.AddPrimary(5, "")
	require.NoError(t, err)
	assert.Equal(t, int64(105), w.Primary())
}

func TestPresenterMissingRenderer(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	p := NewPresenter(newWallet(), nil, logger)
	p.Activate()
	p.Deactivate()

	assert.False(t, p.Active())
	assert.Contains(t, buf.String(), "missing collaborator")
}

func TestPresenterRefreshAfterClear(t *testing.T) {
	w := newWallet()
	renders := 0
	p := NewPresenter(w, RenderFunc(func(ViewModel) error {
		renders++
		return nil
	}), nil)

	require.NoError(t, p.Refresh(), "inactive refresh is a no-op")
	assert.Equal(t, 0, renders)

	p.Activate()
	_, err := w.AddPrimary(5, "")
	require.NoError(t, err)
	require.Len(t, p.Current().Entries, 1)

	w.ClearLedger()
	assert.Len(t, p.Current().Entries, 1, "clearing does not notify")

	require.NoError(t, p.Refresh())
	assert.Empty(t, p.Current().Entries)
	assert.Equal(t, 3, renders)
}
