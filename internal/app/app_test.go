package app

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Alias1177/TradeVault/internal/api/openai"
	"github.com/Alias1177/TradeVault/internal/model"
	"github.com/Alias1177/TradeVault/internal/screener"
	"github.com/Alias1177/TradeVault/internal/trading/backtest"
	"github.com/Alias1177/TradeVault/internal/universe"
	"github.com/Alias1177/TradeVault/internal/vault"
)

type fakeAssistant struct {
	reply    string
	system   string
	messages []openai.Message
}

func (f *fakeAssistant) Reply(_ context.Context, system string, messages []openai.Message) string {
	f.system = system
	f.messages = messages
	return f.reply
}

func newTestApp(t *testing.T, ai Assistant) *App {
	t.Helper()
	u := universe.Default()
	store := vault.NewMemoryStore()
	if _, err := vault.Seed(context.Background(), store); err != nil {
		t.Fatalf("seed: %v", err)
	}
	a := &App{
		Universe: u,
		Board:    screener.NewBoard(u, nil, screener.Options{}),
		Store:    store,
		engine:   backtest.NewEngine(),
		now:      func() time.Time { return time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC) },
		logger:   zerolog.Nop(),
	}
	if ai != nil {
		a.Assistant = ai
	}
	return a
}

func TestBacktest(t *testing.T) {
	a := newTestApp(t, nil)

	listing, result, err := a.Backtest("tcs", model.SMACrossover(10, 30))
	if err != nil {
		t.Fatalf("Backtest: %v", err)
	}
	if listing.Symbol != "TCS" || listing.Market != model.MarketIndia {
		t.Errorf("listing = %s/%s, want TCS/in", listing.Symbol, listing.Market)
	}
	if len(result.EquityCurve) != universe.Steps {
		t.Errorf("equity points = %d, want %d", len(result.EquityCurve), universe.Steps)
	}
	if result.TradeCount != len(result.Trades) {
		t.Errorf("trade count %d != len(trades) %d", result.TradeCount, len(result.Trades))
	}

	if _, _, err := a.Backtest("NOPE", model.RSIReversal(30, 70)); !errors.Is(err, model.ErrUnknownSymbol) {
		t.Errorf("unknown symbol err = %v", err)
	}
	if _, _, err := a.Backtest("CRWD", model.RSIReversal(0, 70)); !errors.Is(err, model.ErrInvalidParameter) {
		t.Errorf("invalid params err = %v", err)
	}
}

func TestSaveListing(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t, nil)

	note, err := a.SaveListing(ctx, "crwd")
	if err != nil {
		t.Fatalf("SaveListing: %v", err)
	}
	if !strings.HasPrefix(note.Title, "CRWD – ") || note.Source != vault.SourceScreener {
		t.Errorf("note = %+v", note)
	}

	notes, err := a.Notes(ctx, vault.Filter{Limit: 1})
	if err != nil {
		t.Fatalf("Notes: %v", err)
	}
	if len(notes) != 1 || notes[0].ID != note.ID {
		t.Errorf("newest note = %+v, want %s", notes, note.ID)
	}

	if _, err := a.SaveListing(ctx, "ZZZZ"); !errors.Is(err, model.ErrUnknownSymbol) {
		t.Errorf("unknown symbol err = %v", err)
	}
}

func TestAssistantRequired(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t, nil)

	if _, err := a.Picks(ctx, false); !errors.Is(err, model.ErrCollaboratorUnavailable) {
		t.Errorf("Picks err = %v", err)
	}
	if _, err := a.Ask(ctx, []openai.Message{openai.User("hi")}); !errors.Is(err, model.ErrCollaboratorUnavailable) {
		t.Errorf("Ask err = %v", err)
	}
	if _, err := a.Extract(ctx, "book.pdf", "some text"); !errors.Is(err, model.ErrCollaboratorUnavailable) {
		t.Errorf("Extract err = %v", err)
	}
}

func TestPicks(t *testing.T) {
	ctx := context.Background()

	t.Run("saved", func(t *testing.T) {
		ai := &fakeAssistant{reply: "1. CRWD 🇺🇸"}
		a := newTestApp(t, ai)

		reply, err := a.Picks(ctx, true)
		if err != nil {
			t.Fatalf("Picks: %v", err)
		}
		if reply != ai.reply {
			t.Errorf("reply = %q", reply)
		}
		if ai.system != openai.PicksSystem {
			t.Errorf("system = %q", ai.system)
		}
		prompt := ai.messages[0].Content
		for _, want := range []string{"Date: Monday, March 4, 2024", "RSI Oversold Bounce(Strategy):", "[US] ", "[IN] "} {
			if !strings.Contains(prompt, want) {
				t.Errorf("prompt missing %q", want)
			}
		}

		notes, _ := a.Notes(ctx, vault.Filter{Limit: 1})
		if len(notes) != 1 || notes[0].Title != "Daily Picks · Mar 4, 2024" || notes[0].Content != ai.reply {
			t.Errorf("picks note = %+v", notes)
		}
	})

	t.Run("fallback not saved", func(t *testing.T) {
		a := newTestApp(t, &fakeAssistant{reply: openai.FallbackReply})
		reply, err := a.Picks(ctx, true)
		if err != nil {
			t.Fatalf("Picks: %v", err)
		}
		if reply != openai.FallbackReply {
			t.Errorf("reply = %q", reply)
		}
		notes, _ := a.Notes(ctx, vault.Filter{Query: "Daily Picks"})
		if len(notes) != 0 {
			t.Errorf("fallback reply was saved: %+v", notes)
		}
	})
}

func TestAnalyzeIdea(t *testing.T) {
	ctx := context.Background()
	ai := &fakeAssistant{reply: "Verdict: valid"}
	a := newTestApp(t, ai)

	if _, err := a.AnalyzeIdea(ctx, "", "   ", true); !errors.Is(err, model.ErrInvalidParameter) {
		t.Errorf("empty idea err = %v", err)
	}

	if _, err := a.AnalyzeIdea(ctx, "", "Buy gap ups above VWAP", true); err != nil {
		t.Fatalf("AnalyzeIdea: %v", err)
	}
	if ai.system != openai.IdeaSystem {
		t.Errorf("system = %q", ai.system)
	}
	if !strings.Contains(ai.messages[0].Content, "from "+openai.DefaultIdeaSource) {
		t.Errorf("prompt = %q", ai.messages[0].Content)
	}

	notes, _ := a.Notes(ctx, vault.Filter{Limit: 1})
	if len(notes) != 1 || notes[0].Source != openai.DefaultIdeaSource ||
		!strings.HasSuffix(notes[0].Content, "AI ANALYSIS:\nVerdict: valid") {
		t.Errorf("idea note = %+v", notes)
	}
}

func TestAsk(t *testing.T) {
	ai := &fakeAssistant{reply: "An RSI measures momentum."}
	a := newTestApp(t, ai)

	history := []openai.Message{
		openai.User("What is RSI?"),
		{Role: openai.RoleAssistant, Content: "A momentum oscillator."},
		openai.User("And oversold?"),
	}
	reply, err := a.Ask(context.Background(), history)
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if reply != ai.reply {
		t.Errorf("reply = %q", reply)
	}
	if len(ai.messages) != len(history) {
		t.Errorf("sent %d messages, want %d", len(ai.messages), len(history))
	}
	if !strings.Contains(ai.system, "User's saved strategies:\nRSI Oversold Bounce(Strategy):") {
		t.Errorf("system prompt = %q", ai.system)
	}

	if _, err := a.Ask(context.Background(), nil); !errors.Is(err, model.ErrInvalidParameter) {
		t.Errorf("empty history err = %v", err)
	}
}

func TestExtract(t *testing.T) {
	ctx := context.Background()

	t.Run("parsed lines", func(t *testing.T) {
		ai := &fakeAssistant{reply: "Here you go:\n" +
			"Gap Fill | Strategy | Fade opening gaps that exceed 2% on low volume\n" +
			"VWAP | Indicator | Volume weighted average price used as intraday anchor\n"}
		a := newTestApp(t, ai)

		saved, err := a.Extract(ctx, "book.pdf", "chapter one")
		if err != nil {
			t.Fatalf("Extract: %v", err)
		}
		if len(saved) != 2 || saved[0].Title != "Gap Fill" || saved[1].Category != model.CategoryIndicator {
			t.Fatalf("saved = %+v", saved)
		}
		if !strings.HasPrefix(ai.messages[0].Content, openai.ExtractPrompt) ||
			!strings.HasSuffix(ai.messages[0].Content, "chapter one") {
			t.Errorf("prompt = %q", ai.messages[0].Content)
		}

		notes, _ := a.Notes(ctx, vault.Filter{Limit: 2})
		if notes[0].Title != "Gap Fill" || notes[1].Title != "VWAP" {
			t.Errorf("vault order = %q, %q", notes[0].Title, notes[1].Title)
		}
	})

	t.Run("fallback reply", func(t *testing.T) {
		a := newTestApp(t, &fakeAssistant{reply: openai.FallbackReply})
		if _, err := a.Extract(ctx, "book.pdf", "text"); !errors.Is(err, model.ErrCollaboratorUnavailable) {
			t.Errorf("err = %v", err)
		}
	})

	t.Run("empty document", func(t *testing.T) {
		a := newTestApp(t, &fakeAssistant{reply: "x"})
		if _, err := a.Extract(ctx, "book.pdf", " "); !errors.Is(err, model.ErrInvalidParameter) {
			t.Errorf("err = %v", err)
		}
	})
}

func TestRefreshWithoutProvider(t *testing.T) {
	a := newTestApp(t, nil)
	if _, err := a.Refresh(context.Background(), model.MarketUS); !errors.Is(err, model.ErrCollaboratorUnavailable) {
		t.Errorf("err = %v", err)
	}
}

func TestPositionPlan(t *testing.T) {
	a := newTestApp(t, nil)

	listing, plan, err := a.PositionPlan("celh", 0, 0, 0)
	if err != nil {
		t.Fatalf("PositionPlan: %v", err)
	}
	if plan.Entry != listing.Asset.LastPrice || plan.AccountRisk != 0.01 {
		t.Errorf("plan = %+v", plan)
	}
	if plan.StopLoss >= plan.Entry || plan.Shares < 1 {
		t.Errorf("default stop plan = %+v", plan)
	}

	if _, _, err := a.PositionPlan("CELH", listing.Asset.LastPrice, 0, 0); !errors.Is(err, model.ErrInvalidParameter) {
		t.Errorf("stop at entry err = %v", err)
	}
	if _, _, err := a.PositionPlan("NOPE", 0, 0, 0); !errors.Is(err, model.ErrUnknownSymbol) {
		t.Errorf("unknown symbol err = %v", err)
	}
}
