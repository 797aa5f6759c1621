package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/josh-kwaku/economy-hud/internal/domain"
	"github.com/josh-kwaku/economy-hud/internal/simulate"
	"github.com/josh-kwaku/economy-hud/internal/viewmodel"
	"github.com/josh-kwaku/economy-hud/internal/wallet"
)

func newSimulateCmd() *cobra.Command {
	var (
		start   wallet.Balances
		params  = simulate.DefaultParams()
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Simulate one week of daily income, expenses and the weekly bonus",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := simulate.Run(start, params)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if verbose {
				for _, s := range res.Steps {
					fmt.Fprintf(out, "day %d  %-13s %-16s %6s  -> %d\n",
						s.Day, s.Kind, s.Resource.DisplayName(), viewmodel.FormatSigned(s.Amount), s.BalanceAfter)
				}
				fmt.Fprintln(out)
			}

			fmt.Fprintf(out, "%-17s %8s %8s %8s %8s\n", "RESOURCE", "FINAL", "NET", "PEAK", "LOWEST")
			for _, kind := range domain.ResourceKinds() {
				fmt.Fprintf(out, "%-17s %8d %8s %8d %8d\n",
					kind.DisplayName(),
					res.Final.Get(kind),
					viewmodel.FormatSigned(res.NetChanges.Get(kind)),
					res.Peak.Get(kind),
					res.Lowest.Get(kind),
				)
			}
			fmt.Fprintf(out, "\nTransactions: %d\n", len(res.Steps))
			printAlerts(out, res.Alerts)
			return nil
		},
	}

	f := cmd.Flags()
	f.Int64Var(&start.Primary, "primary", 10000, "starting coins")
	f.Int64Var(&start.Secondary, "secondary", 20, "starting gems")
	f.Int64Var(&start.Tertiary, "tertiary", 100, "starting coaching credits")
	f.Int64Var(&params.DailyIncomePrimary, "daily-income-primary", params.DailyIncomePrimary, "coins earned each day")
	f.Int64Var(&params.DailyIncomeSecondary, "daily-income-secondary", params.DailyIncomeSecondary, "gems earned each day")
	f.Int64Var(&params.DailyExpensesPrimary, "daily-expenses-primary", params.DailyExpensesPrimary, "coins spent each day")
	f.Int64Var(&params.WeeklyBonusPrimary, "weekly-bonus-primary", params.WeeklyBonusPrimary, "coins granted on day 7")
	f.Int64Var(&params.WeeklyBonusSecondary, "weekly-bonus-secondary", params.WeeklyBonusSecondary, "gems granted on day 7")
	f.BoolVarP(&verbose, "verbose", "v", false, "print every simulated transaction")
	return cmd
}
