// Package cmd - tradevault CLI commands
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Alias1177/TradeVault/internal/app"
	"github.com/Alias1177/TradeVault/internal/config"
	"github.com/Alias1177/TradeVault/internal/logger"
)

var (
	cfg     *config.Config
	verbose bool
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "tradevault",
	Short: "US and Indian stock screener, backtester and strategy vault",
	Long: `TradeVault - stock screener, backtester and strategy vault

Usage:
    go run ./cmd/tradevault [command]

Commands:
    generate    simulate a price series and score it
    screen      list scored stocks of one market
    backtest    run a strategy over a stock's simulated closes
    size        size a position with the 1% risk rule
    picks       ask the assistant for today's top picks
    idea        ask the assistant to critique a trading idea
    ask         ask the trading tutor a question
    notes       list, add, delete or extract vault notes
`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

// Execute runs the root command until it finishes or the process is
// interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(screenCmd)
	rootCmd.AddCommand(backtestCmd)
	rootCmd.AddCommand(sizeCmd)
	rootCmd.AddCommand(picksCmd)
	rootCmd.AddCommand(ideaCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(notesCmd)
}

// initConfig loads .env and environment settings and sets up logging.
func initConfig() error {
	loaded, err := config.Load()
	if err != nil {
		return err
	}
	cfg = loaded

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	return logger.Init(logger.Config{
		Level:       level,
		Format:      cfg.LogFormat,
		Dir:         cfg.LogDir,
		ServiceName: "tradevault",
	})
}

// openApp builds the application; callers must Close it.
func openApp(ctx context.Context) (*app.App, error) {
	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize")
		return nil, err
	}
	return a, nil
}
