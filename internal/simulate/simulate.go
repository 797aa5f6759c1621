// Package simulate plays a week of daily income, expenses and a weekly bonus
// against a scratch copy of a wallet.
package simulate

import (
	"fmt"

	"github.com/josh-kwaku/economy-hud/internal/domain"
	"github.com/josh-kwaku/economy-hud/internal/ledger"
	"github.com/josh-kwaku/economy-hud/internal/wallet"
)

const Days = 7

type StepKind string

const (
	StepDailyIncome  StepKind = "daily_income"
	StepDailyExpense StepKind = "daily_expense"
	StepWeeklyBonus  StepKind = "weekly_bonus"
)

type Params struct {
	DailyIncomePrimary   int64 `json:"daily_income_primary"`
	DailyIncomeSecondary int64 `json:"daily_income_secondary"`
	DailyExpensesPrimary int64 `json:"daily_expenses_primary"`
	WeeklyBonusPrimary   int64 `json:"weekly_bonus_primary"`
	WeeklyBonusSecondary int64 `json:"weekly_bonus_secondary"`
}

func DefaultParams() Params {
	return Params{
		DailyIncomePrimary:   100,
		DailyIncomeSecondary: 2,
		DailyExpensesPrimary: 50,
		WeeklyBonusPrimary:   200,
		WeeklyBonusSecondary: 10,
	}
}

type Step struct {
	Day          int                 `json:"day"`
	Kind         StepKind            `json:"kind"`
	Resource     domain.ResourceKind `json:"resource"`
	Amount       int64               `json:"amount"`
	BalanceAfter int64               `json:"balance_after"`
}

type Series struct {
	Primary   []int64 `json:"primary"`
	Secondary []int64 `json:"secondary"`
	Tertiary  []int64 `json:"tertiary"`
}

type Result struct {
	Final         wallet.Balances `json:"final"`
	NetChanges    wallet.Balances `json:"net_changes"`
	Steps         []Step          `json:"steps"`
	DailyBalances Series          `json:"daily_balances"`
	Peak          wallet.Balances `json:"peak"`
	Lowest        wallet.Balances `json:"lowest"`
	Alerts        []string        `json:"alerts"`
}

type movement struct {
	kind     StepKind
	resource domain.ResourceKind
	amount   int64
}

func (p Params) day(d int) []movement {
	moves := []movement{
		{StepDailyIncome, domain.ResourcePrimary, p.DailyIncomePrimary},
		{StepDailyIncome, domain.ResourceSecondary, p.DailyIncomeSecondary},
		{StepDailyExpense, domain.ResourcePrimary, -p.DailyExpensesPrimary},
	}
	if d == Days {
		moves = append(moves,
			movement{StepWeeklyBonus, domain.ResourcePrimary, p.WeeklyBonusPrimary},
			movement{StepWeeklyBonus, domain.ResourceSecondary, p.WeeklyBonusSecondary},
		)
	}
	return moves
}

// Run simulates one week starting from start. The caller's wallet is never
// touched; every movement goes through a scratch wallet and its ledger.
func Run(start wallet.Balances, p Params) (Result, error) {
	if p.DailyIncomePrimary < 0 || p.DailyIncomeSecondary < 0 || p.DailyExpensesPrimary < 0 ||
		p.WeeklyBonusPrimary < 0 || p.WeeklyBonusSecondary < 0 {
		return Result{}, fmt.Errorf("Run: parameters must not be negative: %w", domain.ErrInvalidRequest)
	}

	scratch := wallet.New(
		wallet.WithInitialBalances(start),
		wallet.WithLedger(ledger.New(Days*5)),
	)

	res := Result{Steps: []Step{}}
	record(&res.DailyBalances, start)

	for d := 1; d <= Days; d++ {
		for _, m := range p.day(d) {
			if m.amount == 0 {
				continue
			}
			if _, err := scratch.Add(m.resource, m.amount, fmt.Sprintf("day %d %s", d, m.kind)); err != nil {
				return Result{}, fmt.Errorf("Run: day %d: %w", d, err)
			}
			res.Steps = append(res.Steps, Step{
				Day:          d,
				Kind:         m.kind,
				Resource:     m.resource,
				Amount:       m.amount,
				BalanceAfter: scratch.Balance(m.resource),
			})
		}
		record(&res.DailyBalances, scratch.Balances())
	}

	res.Final = scratch.Balances()
	res.NetChanges = wallet.Balances{
		Primary:   res.Final.Primary - start.Primary,
		Secondary: res.Final.Secondary - start.Secondary,
		Tertiary:  res.Final.Tertiary - start.Tertiary,
	}
	res.Peak = wallet.Balances{
		Primary:   extreme(res.DailyBalances.Primary, greater),
		Secondary: extreme(res.DailyBalances.Secondary, greater),
		Tertiary:  extreme(res.DailyBalances.Tertiary, greater),
	}
	res.Lowest = wallet.Balances{
		Primary:   extreme(res.DailyBalances.Primary, less),
		Secondary: extreme(res.DailyBalances.Secondary, less),
		Tertiary:  extreme(res.DailyBalances.Tertiary, less),
	}
	res.Alerts = Risks(res)
	return res, nil
}

func record(s *Series, b wallet.Balances) {
	s.Primary = append(s.Primary, b.Primary)
	s.Secondary = append(s.Secondary, b.Secondary)
	s.Tertiary = append(s.Tertiary, b.Tertiary)
}

func greater(a, b int64) bool { return a > b }
func less(a, b int64) bool    { return a < b }

func extreme(xs []int64, better func(a, b int64) bool) int64 {
	if len(xs) == 0 {
		return 0
	}
	out := xs[0]
	for _, x := range xs[1:] {
		if better(x, out) {
			out = x
		}
	}
	return out
}
