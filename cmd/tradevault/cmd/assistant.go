package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Alias1177/TradeVault/internal/api/openai"
)

var (
	picksSave  bool
	ideaSource string
	ideaSave   bool
)

var picksCmd = &cobra.Command{
	Use:   "picks",
	Short: "Ask the assistant for today's top picks",
	Long: `Sends the top six stocks of each market and the newest vault notes to
the assistant and prints its three picks (requires OPENAI_API_KEY).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		reply, err := a.Picks(ctx, picksSave)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), reply)
		return nil
	},
}

var ideaCmd = &cobra.Command{
	Use:   "idea TEXT...",
	Short: "Ask the assistant to critique a trading idea",
	Example: `  go run ./cmd/tradevault idea --source Reddit "buy when RSI < 20 on penny stocks" --save`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		reply, err := a.AnalyzeIdea(ctx, ideaSource, strings.Join(args, " "), ideaSave)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), reply)
		return nil
	},
}

var askCmd = &cobra.Command{
	Use:   "ask QUESTION...",
	Short: "Ask the trading tutor a question",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		reply, err := a.Ask(ctx, []openai.Message{openai.User(strings.Join(args, " "))})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), reply)
		return nil
	},
}

func init() {
	picksCmd.Flags().BoolVar(&picksSave, "save", false, "save the picks to the vault")
	ideaCmd.Flags().StringVar(&ideaSource, "source", openai.DefaultIdeaSource, "where the idea came from")
	ideaCmd.Flags().BoolVar(&ideaSave, "save", false, "save the idea and verdict to the vault")
}
