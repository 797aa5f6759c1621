// Package cli wires the economy command tree.
package cli

import (
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "economy",
		Short: "Player wallet, ledger and forecast service",
		Long: `economy keeps per-player balances of coins, gems and coaching credits,
a bounded history of recent transactions and a projected next-week change.
It serves a HUD API and can run forecasts and simulations offline.`,
		SilenceUsage: true,
	}

	root.AddCommand(newServeCmd())
	root.AddCommand(newForecastCmd())
	root.AddCommand(newSimulateCmd())
	root.AddCommand(newTokenCmd())
	return root
}
