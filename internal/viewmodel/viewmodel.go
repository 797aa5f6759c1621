// Package viewmodel turns wallet state into a render-ready value and keeps a
// renderer in sync with wallet notifications.
package viewmodel

import (
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/josh-kwaku/economy-hud/internal/domain"
	"github.com/josh-kwaku/economy-hud/internal/wallet"
)

type Entry struct {
	ID          uuid.UUID           `json:"id"`
	Resource    domain.ResourceKind `json:"resource"`
	Amount      int64               `json:"amount"`
	Description string              `json:"description,omitempty"`
	Timestamp   time.Time           `json:"timestamp"`
	Text        string              `json:"text"`
}

type ViewModel struct {
	Balances     wallet.Balances `json:"balances"`
	Forecast     int64           `json:"forecast"`
	ForecastText string          `json:"forecast_text"`
	Entries      []Entry         `json:"entries"`
}

type source interface {
	View() wallet.View
}

// Build captures the wallet in one consistent read. Entries are newest-first.
func Build(w source) ViewModel {
	v := w.View()
	return ViewModel{
		Balances:     v.Balances,
		Forecast:     v.Forecast,
		ForecastText: FormatSigned(v.Forecast),
		Entries:      Entries(v.Entries),
	}
}

func Entries(txs []domain.Transaction) []Entry {
	out := make([]Entry, len(txs))
	for i, tx := range txs {
		out[i] = Entry{
			ID:          tx.ID,
			Resource:    tx.Resource,
			Amount:      tx.Amount,
			Description: tx.Description,
			Timestamp:   tx.Timestamp,
			Text:        tx.GetFormattedText(),
		}
	}
	return out
}

// FormatSigned prefixes non-negative values with "+".
func FormatSigned(n int64) string {
	if n >= 0 {
		return "+" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}
