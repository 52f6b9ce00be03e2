// Package app wires the screener, backtester, vault and assistant into the
// use cases shared by the CLI and the Telegram bot.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/TradeVault/internal/api/openai"
	"github.com/Alias1177/TradeVault/internal/api/twelvedata"
	"github.com/Alias1177/TradeVault/internal/config"
	"github.com/Alias1177/TradeVault/internal/database"
	"github.com/Alias1177/TradeVault/internal/metrics"
	"github.com/Alias1177/TradeVault/internal/model"
	"github.com/Alias1177/TradeVault/internal/screener"
	"github.com/Alias1177/TradeVault/internal/trading/backtest"
	"github.com/Alias1177/TradeVault/internal/trading/risk"
	"github.com/Alias1177/TradeVault/internal/universe"
	"github.com/Alias1177/TradeVault/internal/vault"
)

// Assistant answers prompts. Failures come back as a fallback text.
type Assistant interface {
	Reply(ctx context.Context, system string, messages []openai.Message) string
}

// App holds the long-lived collaborators of one process.
type App struct {
	Universe  *universe.Universe
	Board     *screener.Board
	Store     vault.Store
	Assistant Assistant
	Metrics   *metrics.Metrics

	engine  *backtest.Engine
	now     func() time.Time
	closers []func() error
	logger  zerolog.Logger
}

// New builds an App from configuration. The vault uses PostgreSQL when a
// database host is configured and memory otherwise; in both cases it is
// seeded with the default notes when empty. Live data and the assistant
// are enabled only when their API keys are set.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	u := universe.Default()
	if cfg.UniverseFile != "" {
		loaded, err := universe.LoadFile(cfg.UniverseFile)
		if err != nil {
			return nil, fmt.Errorf("loading universe: %w", err)
		}
		u = loaded
	}

	m := metrics.NewMetrics()

	var fetcher screener.Fetcher
	if cfg.TwelveAPIKey != "" {
		fetcher = twelvedata.NewClient(twelvedata.ClientOptions{
			APIKey:         cfg.TwelveAPIKey,
			RequestTimeout: cfg.RequestTimeout,
			RequestsPerSec: cfg.RequestsPerSec,
			MaxRetries:     3,
		})
	}

	a := &App{
		Universe: u,
		Board: screener.NewBoard(u, fetcher, screener.Options{
			LiveLimit: cfg.LiveFetchLimit,
			Metrics:   m,
		}),
		Metrics: m,
		engine:  backtest.NewEngine(),
		now:     time.Now,
		logger:  log.With().Str("component", "app").Logger(),
	}

	if cfg.OpenAIAPIKey != "" {
		a.Assistant = openai.NewClient(openai.Options{
			APIKey:  cfg.OpenAIAPIKey,
			Model:   cfg.OpenAIModel,
			Metrics: m,
		})
	}

	if cfg.Database.Enabled() {
		db, err := database.New(ctx, database.ConnectionParams{
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			DBName:   cfg.Database.Name,
			SSLMode:  cfg.Database.SSLMode,
		})
		if err != nil {
			return nil, fmt.Errorf("connecting to database: %w", err)
		}
		a.Store = db
		a.closers = append(a.closers, db.Close)
	} else {
		a.Store = vault.NewMemoryStore()
	}

	if n, err := vault.Seed(ctx, a.Store); err != nil {
		a.Close()
		return nil, err
	} else if n > 0 {
		a.logger.Info().Int("notes", n).Msg("Vault seeded with default notes")
	}

	return a, nil
}

// Close releases the database connection, if any.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	a.closers = nil
	return errors.Join(errs...)
}

// Screen returns the market's listings that pass q.
func (a *App) Screen(market model.Market, q screener.Query) []model.Listing {
	return a.Board.Filter(market, q)
}

// Refresh pulls live quotes for the market.
func (a *App) Refresh(ctx context.Context, market model.Market) (screener.RefreshReport, error) {
	return a.Board.Refresh(ctx, market)
}

// Backtest runs params over the simulated closes of symbol, looked up in
// either market.
func (a *App) Backtest(symbol string, params model.StrategyParams) (model.Listing, *model.BacktestResult, error) {
	listing, err := a.Universe.Locate(symbol)
	if err != nil {
		return model.Listing{}, nil, err
	}
	result, err := a.engine.Run(listing.Closes, params)
	if err != nil {
		return listing, nil, err
	}
	a.Metrics.ObserveBacktest(string(params.Kind))
	return listing, result, nil
}

// find looks symbol up on the board, US first.
func (a *App) find(symbol string) (model.Listing, error) {
	for _, m := range []model.Market{model.MarketUS, model.MarketIndia} {
		if listing, err := a.Board.Find(m, symbol); err == nil {
			return listing, nil
		}
	}
	return model.Listing{}, fmt.Errorf("%w: %s", model.ErrUnknownSymbol, symbol)
}

// SaveListing stores the current screener view of symbol as a vault note.
func (a *App) SaveListing(ctx context.Context, symbol string) (model.Note, error) {
	listing, err := a.find(symbol)
	if err != nil {
		return model.Note{}, err
	}
	return a.save(ctx, vault.AssetNote(listing))
}

// PositionPlan sizes a long entry at the symbol's current price. Zero
// values select the defaults: a stop at the lower band (or 4% below),
// the backtest starting cash and 1% risk.
func (a *App) PositionPlan(symbol string, stop, account, riskFraction float64) (model.Listing, *risk.PositionPlan, error) {
	listing, err := a.find(symbol)
	if err != nil {
		return model.Listing{}, nil, err
	}
	entry := listing.Asset.LastPrice
	if stop <= 0 {
		stop = risk.DetermineStopLoss(entry, listing.Asset.Snapshot.Bollinger)
	}
	if account <= 0 {
		account = backtest.DefaultInitialCash
	}
	if riskFraction <= 0 {
		riskFraction = risk.DefaultRiskFraction
	}
	plan, err := risk.CalculatePositionSize(entry, stop, account, riskFraction)
	return listing, plan, err
}

// AddNote saves a user-written note.
func (a *App) AddNote(ctx context.Context, note model.Note) (model.Note, error) {
	return a.save(ctx, note)
}

// Notes lists vault notes, newest first.
func (a *App) Notes(ctx context.Context, f vault.Filter) ([]model.Note, error) {
	notes, err := a.Store.List(ctx, f)
	a.Metrics.ObserveVault("list", err)
	return notes, err
}

// DeleteNote removes a note by ID.
func (a *App) DeleteNote(ctx context.Context, id string) error {
	err := a.Store.Delete(ctx, id)
	a.Metrics.ObserveVault("delete", err)
	return err
}

func (a *App) save(ctx context.Context, note model.Note) (model.Note, error) {
	saved, err := a.Store.Save(ctx, note)
	a.Metrics.ObserveVault("save", err)
	if err != nil {
		return model.Note{}, err
	}
	a.logger.Debug().Str("id", saved.ID).Str("title", saved.Title).Msg("Note saved")
	return saved, nil
}

func (a *App) vaultContext(ctx context.Context, width int) (string, error) {
	notes, err := a.Notes(ctx, vault.Filter{Limit: vault.ContextNotes})
	if err != nil {
		return "", err
	}
	return vault.Context(notes, vault.ContextNotes, width), nil
}

func (a *App) assistant() (Assistant, error) {
	if a.Assistant == nil {
		return nil, fmt.Errorf("%w: OPENAI_API_KEY not set", model.ErrCollaboratorUnavailable)
	}
	return a.Assistant, nil
}

// Picks asks the assistant for the day's top picks across both markets.
// When save is set the reply is stored in the vault.
func (a *App) Picks(ctx context.Context, save bool) (string, error) {
	ai, err := a.assistant()
	if err != nil {
		return "", err
	}
	vctx, err := a.vaultContext(ctx, vault.PicksContextWidth)
	if err != nil {
		return "", err
	}

	today := a.now()
	prompt := openai.PicksPrompt(today, vctx,
		a.Board.Top(model.MarketUS, openai.PicksListings),
		a.Board.Top(model.MarketIndia, openai.PicksListings))
	reply := ai.Reply(ctx, openai.PicksSystem, []openai.Message{openai.User(prompt)})

	if save && reply != openai.FallbackReply {
		if _, err := a.save(ctx, vault.PicksNote(today, reply)); err != nil {
			return reply, err
		}
	}
	return reply, nil
}

// AnalyzeIdea asks the assistant to critique an idea. When save is set the
// idea and the verdict are stored together.
func (a *App) AnalyzeIdea(ctx context.Context, source, idea string, save bool) (string, error) {
	if strings.TrimSpace(idea) == "" {
		return "", fmt.Errorf("%w: idea is empty", model.ErrInvalidParameter)
	}
	ai, err := a.assistant()
	if err != nil {
		return "", err
	}
	if source == "" {
		source = openai.DefaultIdeaSource
	}

	reply := ai.Reply(ctx, openai.IdeaSystem, []openai.Message{openai.User(openai.IdeaPrompt(source, idea))})
	if save && reply != openai.FallbackReply {
		if _, err := a.save(ctx, vault.IdeaNote(source, idea, reply)); err != nil {
			return reply, err
		}
	}
	return reply, nil
}

// Ask continues a tutor conversation. history ends with the user's latest
// question.
func (a *App) Ask(ctx context.Context, history []openai.Message) (string, error) {
	if len(history) == 0 {
		return "", fmt.Errorf("%w: empty conversation", model.ErrInvalidParameter)
	}
	ai, err := a.assistant()
	if err != nil {
		return "", err
	}
	vctx, err := a.vaultContext(ctx, vault.TutorContextWidth)
	if err != nil {
		return "", err
	}
	return ai.Reply(ctx, openai.TutorSystemPrompt(vctx), history), nil
}

// Extract asks the assistant to pull strategies out of a document and
// saves every parsed entry under source.
func (a *App) Extract(ctx context.Context, source, document string) ([]model.Note, error) {
	if strings.TrimSpace(document) == "" {
		return nil, fmt.Errorf("%w: document is empty", model.ErrInvalidParameter)
	}
	ai, err := a.assistant()
	if err != nil {
		return nil, err
	}

	reply := ai.Reply(ctx, openai.ExtractSystem, []openai.Message{
		openai.User(openai.ExtractPrompt + "\n\n" + document),
	})
	if reply == openai.FallbackReply {
		return nil, fmt.Errorf("%w: extraction failed", model.ErrCollaboratorUnavailable)
	}

	parsed := vault.ParseExtract(reply, source)
	saved := make([]model.Note, 0, len(parsed))
	// Reverse so the first extracted entry is newest.
	for i := len(parsed) - 1; i >= 0; i-- {
		n, err := a.save(ctx, parsed[i])
		if err != nil {
			return saved, err
		}
		saved = append([]model.Note{n}, saved...)
	}
	return saved, nil
}
