// Package telegram turns chat commands into screener, backtest, vault and
// assistant calls.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/TradeVault/internal/api/openai"
	"github.com/Alias1177/TradeVault/internal/app"
	"github.com/Alias1177/TradeVault/internal/config"
	"github.com/Alias1177/TradeVault/internal/model"
	"github.com/Alias1177/TradeVault/internal/screener"
	"github.com/Alias1177/TradeVault/internal/trading/backtest"
	"github.com/Alias1177/TradeVault/internal/trading/risk"
	"github.com/Alias1177/TradeVault/internal/vault"
)

// Limits for chat replies and tutor memory
const (
	boardRows      = 10
	saveButtons    = 5
	vaultRows      = 10
	maxHistory     = 20
	sessionTimeout = 2 * time.Hour
)

// Callback data
const (
	callbackSave      = "save:"
	callbackSavePicks = "savepicks"
	callbackSaveIdea  = "saveidea"
)

// Main menu buttons
const (
	buttonUS    = "🇺🇸 US Screener"
	buttonIndia = "🇮🇳 India Screener"
	buttonPicks = "⭐ Daily Picks"
	buttonVault = "📚 Vault"
)

var menuCommands = map[string]string{
	buttonUS:    "/us",
	buttonIndia: "/in",
	buttonPicks: "/picks",
	buttonVault: "/vault",
}

const helpText = `TradeVault – US 🇺🇸 and India 🇮🇳 stock signals (educational/simulation only)

/us [cap] [sort] – US screener (cap: all, large, mid, small, penny; sort: score, chg, rsi)
/in [cap] [sort] – India screener
/bt SYMBOL [rsi|sma] [a b] – backtest, e.g. /bt CRWD rsi 25 75 or /bt TCS sma 5 20
/size SYMBOL [stop] – position size with the 1% risk rule
/save SYMBOL – save a stock snapshot to the vault
/vault [query] – list vault notes
/del ID – delete a note
/picks – AI daily picks
/idea TEXT – AI critique of a trading idea
/ask TEXT – ask the tutor (plain messages work too)
/reset – forget the tutor conversation`

// Button is an inline keyboard button.
type Button struct {
	Text string
	Data string
}

// Reply is a handler answer. Buttons are laid out one row each.
type Reply struct {
	Text     string
	Buttons  []Button
	MainMenu bool
}

// session is the per-chat state.
type session struct {
	history      []openai.Message
	lastPicks    string
	lastIdea     string
	lastSource   string
	lastAnalysis string
	lastActivity time.Time
}

// Handler answers chat messages and button presses.
type Handler struct {
	app      *app.App
	defaults config.BacktestDefaults
	minScore int

	mu       sync.Mutex
	sessions map[int64]*session
	now      func() time.Time
	logger   zerolog.Logger
}

// NewHandler creates a handler over a.
func NewHandler(a *app.App, defaults config.BacktestDefaults, minScore int) *Handler {
	return &Handler{
		app:      a,
		defaults: defaults,
		minScore: minScore,
		sessions: make(map[int64]*session),
		now:      time.Now,
		logger:   log.With().Str("component", "telegram_handler").Logger(),
	}
}

// command splits "/cmd@bot arg1 arg2" into "/cmd" and the rest.
func command(text string) (string, string) {
	text = strings.TrimSpace(text)
	if cmd, ok := menuCommands[text]; ok {
		return cmd, ""
	}
	if !strings.HasPrefix(text, "/") {
		return "", text
	}
	name, rest, _ := strings.Cut(text, " ")
	name, _, _ = strings.Cut(name, "@")
	return strings.ToLower(name), strings.TrimSpace(rest)
}

// NeedsAssistant reports whether answering text calls the assistant.
func NeedsAssistant(text string) bool {
	switch cmd, rest := command(text); cmd {
	case "/picks", "/idea", "/ask":
		return true
	case "":
		return rest != ""
	}
	return false
}

func (h *Handler) session(chatID int64) *session {
	h.mu.Lock()
	defer h.mu.Unlock()
	now := h.now()
	s, ok := h.sessions[chatID]
	if !ok || now.Sub(s.lastActivity) > sessionTimeout {
		s = &session{}
		h.sessions[chatID] = s
	}
	s.lastActivity = now
	return s
}

// HandleText answers a text message.
func (h *Handler) HandleText(ctx context.Context, chatID int64, text string) Reply {
	cmd, rest := command(text)
	args := strings.Fields(rest)

	switch cmd {
	case "/start", "/help":
		return Reply{Text: helpText, MainMenu: true}
	case "/us":
		return h.board(model.MarketUS, args)
	case "/in":
		return h.board(model.MarketIndia, args)
	case "/bt":
		return h.backtest(args)
	case "/size":
		return h.size(args)
	case "/save":
		if len(args) != 1 {
			return Reply{Text: "Usage: /save SYMBOL"}
		}
		return h.saveListing(ctx, args[0])
	case "/vault":
		return h.vault(ctx, rest)
	case "/del":
		if len(args) != 1 {
			return Reply{Text: "Usage: /del ID"}
		}
		if err := h.app.DeleteNote(ctx, args[0]); err != nil {
			return h.failure("delete", err)
		}
		return Reply{Text: "🗑 Deleted."}
	case "/picks":
		return h.picks(ctx, chatID)
	case "/idea":
		return h.idea(ctx, chatID, rest)
	case "/ask", "":
		return h.ask(ctx, chatID, rest)
	case "/reset":
		s := h.session(chatID)
		h.mu.Lock()
		s.history = nil
		h.mu.Unlock()
		return Reply{Text: "Conversation cleared."}
	}
	return Reply{Text: "Unknown command. Send /help for the list."}
}

// HandleCallback answers an inline button press.
func (h *Handler) HandleCallback(ctx context.Context, chatID int64, data string) Reply {
	switch {
	case strings.HasPrefix(data, callbackSave):
		return h.saveListing(ctx, strings.TrimPrefix(data, callbackSave))
	case data == callbackSavePicks:
		s := h.session(chatID)
		h.mu.Lock()
		picks := s.lastPicks
		h.mu.Unlock()
		if picks == "" {
			return Reply{Text: "Nothing to save. Run /picks first."}
		}
		return h.saved(h.app.AddNote(ctx, vault.PicksNote(h.now(), picks)))
	case data == callbackSaveIdea:
		s := h.session(chatID)
		h.mu.Lock()
		idea, source, analysis := s.lastIdea, s.lastSource, s.lastAnalysis
		h.mu.Unlock()
		if idea == "" {
			return Reply{Text: "Nothing to save. Send /idea first."}
		}
		return h.saved(h.app.AddNote(ctx, vault.IdeaNote(source, idea, analysis)))
	}
	return Reply{Text: "This button has expired."}
}

func (h *Handler) failure(action string, err error) Reply {
	switch {
	case errors.Is(err, model.ErrInvalidParameter), errors.Is(err, model.ErrUnknownSymbol), errors.Is(err, model.ErrNoteNotFound):
		return Reply{Text: "⚠️ " + err.Error()}
	case errors.Is(err, model.ErrCollaboratorUnavailable):
		return Reply{Text: "⚠️ " + openai.FallbackReply}
	}
	h.logger.Error().Err(err).Str("action", action).Msg("Request failed")
	return Reply{Text: "Sorry, there was an error. Please try again later."}
}

func (h *Handler) saved(note model.Note, err error) Reply {
	if err != nil {
		return h.failure("save", err)
	}
	return Reply{Text: fmt.Sprintf("✅ Saved to vault: %s", note.Title)}
}

func (h *Handler) board(market model.Market, args []string) Reply {
	q := screener.Query{Cap: screener.CapAll, MinScore: h.minScore, SortBy: screener.SortScore}
	for _, arg := range args {
		if key, err := screener.ParseSortKey(arg); err == nil {
			q.SortBy = key
			continue
		}
		q.Cap = strings.ToLower(arg)
	}

	listings := h.app.Screen(market, q)
	reply := Reply{Text: formatBoard(market, listings, h.app.Board.Live())}
	for i, l := range listings {
		if i == saveButtons {
			break
		}
		reply.Buttons = append(reply.Buttons, Button{Text: "💾 Save " + l.Symbol, Data: callbackSave + l.Symbol})
	}
	return reply
}

func (h *Handler) backtest(args []string) Reply {
	if len(args) == 0 {
		return Reply{Text: "Usage: /bt SYMBOL [rsi|sma] [a b]"}
	}
	kind := ""
	if len(args) > 1 {
		kind = args[1]
	}
	var values []string
	if len(args) > 2 {
		values = args[2:]
	}

	params, err := app.ParseStrategy(kind, values, h.defaults)
	if err != nil {
		return h.failure("backtest", err)
	}
	listing, result, err := h.app.Backtest(args[0], params)
	if err != nil {
		return h.failure("backtest", err)
	}
	return Reply{
		Text:    fmt.Sprintf("%s (%s)\n%s", listing.Symbol, listing.Name, backtest.FormatResults(params, result)),
		Buttons: []Button{{Text: "💾 Save " + listing.Symbol, Data: callbackSave + listing.Symbol}},
	}
}

func (h *Handler) size(args []string) Reply {
	if len(args) == 0 || len(args) > 2 {
		return Reply{Text: "Usage: /size SYMBOL [stop]"}
	}
	stop := 0.0
	if len(args) == 2 {
		v, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return Reply{Text: fmt.Sprintf("⚠️ %q is not a price", args[1])}
		}
		stop = v
	}
	listing, plan, err := h.app.PositionPlan(args[0], stop, 0, 0)
	if err != nil {
		return h.failure("size", err)
	}
	return Reply{Text: risk.FormatPlan(listing.Symbol, listing.Currency, plan)}
}

func (h *Handler) saveListing(ctx context.Context, symbol string) Reply {
	return h.saved(h.app.SaveListing(ctx, symbol))
}

func (h *Handler) vault(ctx context.Context, query string) Reply {
	notes, err := h.app.Notes(ctx, vault.Filter{Query: query, Limit: vaultRows})
	if err != nil {
		return h.failure("vault", err)
	}
	return Reply{Text: formatNotes(notes)}
}

func (h *Handler) picks(ctx context.Context, chatID int64) Reply {
	reply, err := h.app.Picks(ctx, false)
	if err != nil {
		return h.failure("picks", err)
	}
	if reply == openai.FallbackReply {
		return Reply{Text: reply}
	}

	s := h.session(chatID)
	h.mu.Lock()
	s.lastPicks = reply
	h.mu.Unlock()
	return Reply{Text: reply, Buttons: []Button{{Text: "💾 Save picks", Data: callbackSavePicks}}}
}

func (h *Handler) idea(ctx context.Context, chatID int64, text string) Reply {
	if strings.TrimSpace(text) == "" {
		return Reply{Text: "Usage: /idea TEXT"}
	}
	analysis, err := h.app.AnalyzeIdea(ctx, openai.DefaultIdeaSource, text, false)
	if err != nil {
		return h.failure("idea", err)
	}
	if analysis == openai.FallbackReply {
		return Reply{Text: analysis}
	}

	s := h.session(chatID)
	h.mu.Lock()
	s.lastIdea, s.lastSource, s.lastAnalysis = text, openai.DefaultIdeaSource, analysis
	h.mu.Unlock()
	return Reply{Text: analysis, Buttons: []Button{{Text: "💾 Save idea", Data: callbackSaveIdea}}}
}

func (h *Handler) ask(ctx context.Context, chatID int64, question string) Reply {
	if strings.TrimSpace(question) == "" {
		return Reply{Text: "Usage: /ask TEXT"}
	}

	s := h.session(chatID)
	h.mu.Lock()
	history := append(append([]openai.Message(nil), s.history...), openai.User(question))
	h.mu.Unlock()

	answer, err := h.app.Ask(ctx, history)
	if err != nil {
		return h.failure("ask", err)
	}

	h.mu.Lock()
	if answer != openai.FallbackReply {
		history = append(history, openai.Message{Role: openai.RoleAssistant, Content: answer})
		if len(history) > maxHistory {
			history = history[len(history)-maxHistory:]
		}
		s.history = history
	}
	h.mu.Unlock()
	return Reply{Text: answer}
}
