package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Alias1177/TradeVault/internal/model"
	"github.com/Alias1177/TradeVault/internal/screener"
)

var (
	screenMarket   string
	screenCap      string
	screenMinScore int
	screenSort     string
	screenLive     bool
)

var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "List scored stocks of one market",
	Long: `Shows the demo universe of one market with signals and scores.
With --live the first LIVE_FETCH_LIMIT stocks are refreshed from Twelve Data
first (requires TWELVE_API_KEY).

Examples:
  go run ./cmd/tradevault screen --market us --cap small --sort chg
  go run ./cmd/tradevault screen --market in --min-score 0 --live`,
	Args: cobra.NoArgs,
	RunE: runScreen,
}

func init() {
	screenCmd.Flags().StringVarP(&screenMarket, "market", "m", "us", "market: us or in")
	screenCmd.Flags().StringVar(&screenCap, "cap", screener.CapAll, "cap class: all, large, mid, small, penny")
	screenCmd.Flags().IntVar(&screenMinScore, "min-score", screener.DefaultMinScore, "minimum score (default from MIN_SCORE)")
	screenCmd.Flags().StringVar(&screenSort, "sort", string(screener.SortScore), "sort by: score, chg, rsi")
	screenCmd.Flags().BoolVar(&screenLive, "live", false, "refresh from Twelve Data before listing")
}

func runScreen(cmd *cobra.Command, args []string) error {
	market, err := model.ParseMarket(screenMarket)
	if err != nil {
		return err
	}
	sortKey, err := screener.ParseSortKey(screenSort)
	if err != nil {
		return err
	}
	minScore := cfg.MinScore
	if cmd.Flags().Changed("min-score") {
		minScore = screenMinScore
	}

	ctx := cmd.Context()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if screenLive {
		report, err := a.Refresh(ctx, market)
		if err != nil {
			return err
		}
		log.Info().
			Int("updated", report.Updated).
			Int("failed", report.Failed).
			Msg("Live refresh done")
	}

	listings := a.Screen(market, screener.Query{Cap: screenCap, MinScore: minScore, SortBy: sortKey})
	return renderListings(cmd.OutOrStdout(), listings)
}
