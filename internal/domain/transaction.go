package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Transaction is one economic event. It is never mutated after construction.
type Transaction struct {
	ID          uuid.UUID
	Resource    ResourceKind
	Amount      int64
	Description string
	Timestamp   time.Time
}

func NewTransaction(resource ResourceKind, amount int64, description string, at time.Time) Transaction {
	return Transaction{
		ID:          uuid.New(),
		Resource:    resource,
		Amount:      amount,
		Description: description,
		Timestamp:   at,
	}
}

// GetFormattedText renders the record as "[+] + 150 Coins" or "[-] - 30 Coins".
func (t Transaction) GetFormattedText() string {
	glyph, sign, abs := "[+]", "+", uint64(t.Amount)
	if t.Amount < 0 {
		// math.MinInt64 has no positive int64 counterpart.
		glyph, sign, abs = "[-]", "-", uint64(-(t.Amount+1))+1
	}
	return fmt.Sprintf("%s %s %d %s", glyph, sign, abs, t.Resource.DisplayName())
}
