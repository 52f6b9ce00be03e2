package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Alias1177/TradeVault/internal/api/openai"
	"github.com/Alias1177/TradeVault/internal/app"
	"github.com/Alias1177/TradeVault/internal/model"
	"github.com/Alias1177/TradeVault/internal/trading/backtest"
)

var (
	btStrategy   string
	btOversold   float64
	btOverbought float64
	btFast       int
	btSlow       int
	btSave       bool
)

var backtestCmd = &cobra.Command{
	Use:   "backtest SYMBOL",
	Short: "Run a strategy over a stock's simulated closes",
	Long: `Backtests RSI reversal or SMA crossover on the 60 simulated closes of a
demo stock, starting from 10,000 in cash. Unset parameters come from the
BT_* environment defaults.

Examples:
  go run ./cmd/tradevault backtest CRWD --oversold 25 --overbought 75
  go run ./cmd/tradevault backtest TCS --strategy sma --fast 5 --slow 20 --save`,
	Args: cobra.ExactArgs(1),
	RunE: runBacktest,
}

func init() {
	backtestCmd.Flags().StringVarP(&btStrategy, "strategy", "s", string(model.StrategyRSIReversal), "strategy: rsi or sma")
	backtestCmd.Flags().Float64Var(&btOversold, "oversold", 30, "RSI buy threshold (15-40)")
	backtestCmd.Flags().Float64Var(&btOverbought, "overbought", 70, "RSI sell threshold (60-85)")
	backtestCmd.Flags().IntVar(&btFast, "fast", 10, "fast SMA window (3-15)")
	backtestCmd.Flags().IntVar(&btSlow, "slow", 30, "slow SMA window (15-50)")
	backtestCmd.Flags().BoolVar(&btSave, "save", false, "save the summary to the vault")
}

func runBacktest(cmd *cobra.Command, args []string) error {
	params, err := app.ParseStrategy(btStrategy, nil, cfg.Backtest)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("oversold") {
		params.Oversold = btOversold
	}
	if flags.Changed("overbought") {
		params.Overbought = btOverbought
	}
	if flags.Changed("fast") {
		params.FastWindow = btFast
	}
	if flags.Changed("slow") {
		params.SlowWindow = btSlow
	}

	ctx := cmd.Context()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	listing, result, err := a.Backtest(args[0], params)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%s) · %s\n", listing.Symbol, listing.Name, listing.Market)
	fmt.Fprint(out, backtest.FormatResults(params, result))

	if btSave {
		note, err := a.AddNote(ctx, model.Note{
			Title:    fmt.Sprintf("Backtest %s · %s", listing.Symbol, params.Kind),
			Category: model.CategoryStrategy,
			Content:  openai.FormatBacktestSummary(listing.Symbol, params, result),
			Source:   "Backtest",
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Saved to vault: %s\n", note.ID)
	}
	return nil
}
