// Package forecast projects a balance week by week from a fixed income,
// salary and per-week bonuses and expenses.
package forecast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/economy-hud/internal/domain"
)

const DefaultMaxWeeks = 52

type Request struct {
	CurrentBalance int64
	Weeks          int
	Salary         int64
	Income         int64
	Expenses       map[int]int64
	Bonuses        map[int]int64
}

type Week struct {
	Week      int   `json:"week"`
	Income    int64 `json:"income"`
	Salary    int64 `json:"salary"`
	Bonus     int64 `json:"bonus"`
	Expenses  int64 `json:"expenses"`
	NetChange int64 `json:"net_change"`
	Balance   int64 `json:"balance"`
}

type Summary struct {
	TotalNetChange   int64           `json:"total_net_change"`
	FinalBalance     int64           `json:"final_balance"`
	LowestBalance    int64           `json:"lowest_balance"`
	AverageNetChange decimal.Decimal `json:"average_net_change"`
}

type Result struct {
	Weeks   []Week   `json:"weeks"`
	Summary Summary  `json:"summary"`
	Alerts  []string `json:"alerts"`
}

// NextWeek is the projected net change for the first forecast week.
func (r Result) NextWeek() int64 {
	if len(r.Weeks) == 0 {
		return 0
	}
	return r.Weeks[0].NetChange
}

// Compute walks weeks 1..req.Weeks applying income - salary + bonus - expenses.
func Compute(req Request, maxWeeks int) ([]Week, error) {
	if maxWeeks < 1 {
		maxWeeks = DefaultMaxWeeks
	}
	if req.Weeks < 1 || req.Weeks > maxWeeks {
		return nil, fmt.Errorf("Compute: weeks=%d, want 1..%d: %w", req.Weeks, maxWeeks, domain.ErrInvalidWeeks)
	}

	balance := req.CurrentBalance
	out := make([]Week, 0, req.Weeks)
	for w := 1; w <= req.Weeks; w++ {
		bonus := req.Bonuses[w]
		expense := req.Expenses[w]
		net := req.Income - req.Salary + bonus - expense
		balance += net
		out = append(out, Week{
			Week:      w,
			Income:    req.Income,
			Salary:    req.Salary,
			Bonus:     bonus,
			Expenses:  expense,
			NetChange: net,
			Balance:   balance,
		})
	}
	return out, nil
}

func Summarize(start int64, weeks []Week) Summary {
	s := Summary{FinalBalance: start, LowestBalance: start, AverageNetChange: decimal.Zero}
	if len(weeks) == 0 {
		return s
	}
	for _, w := range weeks {
		s.TotalNetChange += w.NetChange
		if w.Balance < s.LowestBalance {
			s.LowestBalance = w.Balance
		}
	}
	s.FinalBalance = weeks[len(weeks)-1].Balance
	s.AverageNetChange = decimal.NewFromInt(s.TotalNetChange).
		Div(decimal.NewFromInt(int64(len(weeks)))).
		Round(2)
	return s
}

// ParseWeekKeys converts keys such as "3" or "week_3" into week numbers.
// Entries whose key names no positive week are rejected.
func ParseWeekKeys(in map[string]int64) (map[int]int64, error) {
	out := make(map[int]int64, len(in))
	for k, v := range in {
		key := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(k)), "week_")
		w, err := strconv.Atoi(key)
		if err != nil || w < 1 {
			return nil, fmt.Errorf("ParseWeekKeys: bad week key %q: %w", k, domain.ErrInvalidRequest)
		}
		out[w] += v
	}
	return out, nil
}
