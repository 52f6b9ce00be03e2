package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Alias1177/TradeVault/internal/analyze"
	"github.com/Alias1177/TradeVault/internal/simulate"
)

var (
	genSteps      int
	genStart      float64
	genDrift      float64
	genVolatility float64
	genSeed       int64
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Simulate a price series and score it",
	Long: `Generates a reproducible random-walk price series and runs the signal
scoring on it. The same flags always print the same series.

Examples:
  go run ./cmd/tradevault generate --start 178 --drift 0.0006 --vol 0.022 --seed 77`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		closes, err := simulate.Generate(genSteps, genStart, genDrift, genVolatility, genSeed)
		if err != nil {
			return err
		}
		renderAsset(cmd.OutOrStdout(), closes, analyze.ScoreSeries(closes))
		return nil
	},
}

func init() {
	generateCmd.Flags().IntVar(&genSteps, "steps", 60, "number of closes")
	generateCmd.Flags().Float64Var(&genStart, "start", 100, "starting price")
	generateCmd.Flags().Float64Var(&genDrift, "drift", 0.0005, "per-step drift")
	generateCmd.Flags().Float64Var(&genVolatility, "vol", 0.02, "per-step volatility")
	generateCmd.Flags().Int64Var(&genSeed, "seed", 77, "random seed")
}
