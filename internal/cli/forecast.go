package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/josh-kwaku/economy-hud/internal/forecast"
	"github.com/josh-kwaku/economy-hud/internal/viewmodel"
)

func newForecastCmd() *cobra.Command {
	var (
		req      forecast.Request
		maxWeeks int
		expenses map[string]int64
		bonuses  map[string]int64
	)

	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Project a balance week by week",
		Example: `  economy forecast --balance 500 --weeks 4 --income 120 --salary 40 \
    --expense 2=300 --bonus week_3=50`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if req.Expenses, err = forecast.ParseWeekKeys(expenses); err != nil {
				return fmt.Errorf("--expense: %w", err)
			}
			if req.Bonuses, err = forecast.ParseWeekKeys(bonuses); err != nil {
				return fmt.Errorf("--bonus: %w", err)
			}

			res, err := forecast.NewSource(maxWeeks, forecast.DefaultThresholds(), nil).Run(req)
			if err != nil {
				return err
			}
			return printForecast(cmd.OutOrStdout(), res)
		},
	}

	f := cmd.Flags()
	f.Int64Var(&req.CurrentBalance, "balance", 0, "starting balance")
	f.IntVar(&req.Weeks, "weeks", 4, "number of weeks to project")
	f.Int64Var(&req.Income, "income", 0, "income per week")
	f.Int64Var(&req.Salary, "salary", 0, "salary paid out per week")
	f.StringToInt64Var(&expenses, "expense", nil, "one-off expense by week, e.g. 2=30 or week_2=30")
	f.StringToInt64Var(&bonuses, "bonus", nil, "one-off bonus by week, e.g. 3=20 or week_3=20")
	f.IntVar(&maxWeeks, "max-weeks", forecast.DefaultMaxWeeks, "largest accepted --weeks")
	return cmd
}

func printForecast(out io.Writer, res forecast.Result) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "WEEK\tINCOME\tSALARY\tBONUS\tEXPENSES\tNET\tBALANCE\t")
	for _, w := range res.Weeks {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%d\t%s\t%d\t\n",
			w.Week, w.Income, w.Salary, w.Bonus, w.Expenses, viewmodel.FormatSigned(w.NetChange), w.Balance)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	s := res.Summary
	fmt.Fprintf(out, "\nTotal net change: %s\n", viewmodel.FormatSigned(s.TotalNetChange))
	fmt.Fprintf(out, "Final balance:    %d\n", s.FinalBalance)
	fmt.Fprintf(out, "Lowest balance:   %d\n", s.LowestBalance)
	fmt.Fprintf(out, "Average per week: %s\n", s.AverageNetChange.StringFixed(2))
	fmt.Fprintf(out, "Next week:        %s\n", viewmodel.FormatSigned(res.NextWeek()))
	printAlerts(out, res.Alerts)
	return nil
}

func printAlerts(out io.Writer, alerts []string) {
	if len(alerts) == 0 {
		fmt.Fprintln(out, "\nNo alerts.")
		return
	}
	fmt.Fprintln(out, "\nAlerts:")
	for _, a := range alerts {
		fmt.Fprintf(out, "  - %s\n", a)
	}
}
