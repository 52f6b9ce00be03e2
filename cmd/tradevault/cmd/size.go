package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Alias1177/TradeVault/internal/trading/risk"
)

var (
	sizeStop    float64
	sizeAccount float64
	sizeRisk    float64
)

var sizeCmd = &cobra.Command{
	Use:   "size SYMBOL",
	Short: "Size a position with the 1% risk rule",
	Long: `Computes how many shares to buy at the current price so that a stop-out
loses at most --risk of the account. Without --stop the stop goes to the
lower Bollinger band, or 4% below the price.

Examples:
  go run ./cmd/tradevault size CELH
  go run ./cmd/tradevault size TCS --stop 3800 --account 500000 --risk 0.02`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		listing, plan, err := a.PositionPlan(args[0], sizeStop, sizeAccount, sizeRisk)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), risk.FormatPlan(listing.Symbol, listing.Currency, plan))
		return nil
	},
}

func init() {
	sizeCmd.Flags().Float64Var(&sizeStop, "stop", 0, "stop-loss price (default: lower band or 4% below)")
	sizeCmd.Flags().Float64Var(&sizeAccount, "account", 10000, "account size")
	sizeCmd.Flags().Float64Var(&sizeRisk, "risk", risk.DefaultRiskFraction, "fraction of the account to risk")
}
