package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Alias1177/TradeVault/internal/model"
	"github.com/Alias1177/TradeVault/internal/vault"
)

var (
	notesQuery    string
	notesCategory string
	notesLimit    int

	noteTitle    string
	noteCategory string
	noteContent  string
	noteSource   string

	extractSource string
)

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Manage the strategy vault",
	Long: `Lists, adds and deletes vault notes, and extracts strategies from
documents with the assistant.

Examples:
  go run ./cmd/tradevault notes list --query rsi
  go run ./cmd/tradevault notes add --title "Gap fill" --category Strategy --content "..."
  go run ./cmd/tradevault notes extract book.txt`,
}

var notesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		notes, err := a.Notes(ctx, vault.Filter{Query: notesQuery, Category: notesCategory, Limit: notesLimit})
		if err != nil {
			return err
		}
		return renderNotes(cmd.OutOrStdout(), notes)
	},
}

var notesShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Print one note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		notes, err := a.Notes(ctx, vault.Filter{})
		if err != nil {
			return err
		}
		for _, n := range notes {
			if n.ID == args[0] {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s · %s · %s\n\n%s\n", n.Title, n.Category, n.Source, n.Date, n.Content)
				return nil
			}
		}
		return fmt.Errorf("%w: %s", model.ErrNoteNotFound, args[0])
	},
}

var notesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a note",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		note, err := a.AddNote(ctx, model.Note{
			Title:    noteTitle,
			Category: noteCategory,
			Content:  noteContent,
			Source:   noteSource,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", note.ID)
		return nil
	},
}

var notesDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.DeleteNote(ctx, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
		return nil
	},
}

var notesExtractCmd = &cobra.Command{
	Use:   "extract FILE",
	Short: "Extract strategies from a text document into the vault",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		document, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading document: %w", err)
		}
		source := extractSource
		if source == "" {
			source = filepath.Base(args[0])
		}

		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		notes, err := a.Extract(ctx, source, string(document))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %d entries\n", len(notes))
		return renderNotes(cmd.OutOrStdout(), notes)
	},
}

func init() {
	notesListCmd.Flags().StringVarP(&notesQuery, "query", "q", "", "search title and content")
	notesListCmd.Flags().StringVar(&notesCategory, "category", "", "only this category")
	notesListCmd.Flags().IntVar(&notesLimit, "limit", 0, "maximum number of notes")

	notesAddCmd.Flags().StringVar(&noteTitle, "title", "", "note title")
	notesAddCmd.Flags().StringVar(&noteCategory, "category", model.CategoryIdea, "Strategy, Indicator, Rule, Concept, Pattern or Idea")
	notesAddCmd.Flags().StringVar(&noteContent, "content", "", "note text")
	notesAddCmd.Flags().StringVar(&noteSource, "source", "Manual", "where the note came from")
	_ = notesAddCmd.MarkFlagRequired("title")

	notesExtractCmd.Flags().StringVar(&extractSource, "source", "", "source name (default: file name)")

	notesCmd.AddCommand(notesListCmd)
	notesCmd.AddCommand(notesShowCmd)
	notesCmd.AddCommand(notesAddCmd)
	notesCmd.AddCommand(notesDeleteCmd)
	notesCmd.AddCommand(notesExtractCmd)
}
