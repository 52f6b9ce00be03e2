package vault

import (
	"strings"
	"testing"
	"time"

	"github.com/Alias1177/TradeVault/internal/model"
)

func TestAssetNote(t *testing.T) {
	l := model.Listing{
		Instrument: model.Instrument{Symbol: "CRWD", Name: "CrowdStrike"},
		Market:     model.MarketUS,
		Currency:   "$",
		Asset: model.ScoredAsset{
			LastPrice:        171.3,
			DayChangePercent: -2.5,
			Score:            45,
			Snapshot: model.IndicatorSnapshot{
				RSI:       model.Present(29.4),
				Bollinger: &model.Bands{Upper: 190.12, Mid: 180, Lower: 171.35},
			},
			Signals: []model.Signal{{Label: "RSI Oversold"}, {Label: "At Band Lower"}},
		},
	}

	n := AssetNote(l)
	if n.Title != "CRWD – CrowdStrike" || n.Category != model.CategoryIdea || n.Source != SourceScreener {
		t.Errorf("note header = %+v", n)
	}
	want := "Price: $171.3 | Score: 45 | RSI: 29.4\n" +
		"Chg: -2.5% | Signals: RSI Oversold, At Band Lower\n" +
		"BB Upper: $190.12 | Mid: $180 | Lower: $171.35"
	if n.Content != want {
		t.Errorf("content:\n%s\nwant:\n%s", n.Content, want)
	}

	l.Asset.Snapshot = model.IndicatorSnapshot{}
	n = AssetNote(l)
	if !strings.Contains(n.Content, "RSI: n/a") || !strings.HasSuffix(n.Content, "BB Upper: n/a | Mid: n/a | Lower: n/a") {
		t.Errorf("absent indicators rendered as %q", n.Content)
	}
}

func TestParseExtract(t *testing.T) {
	text := `Here is what I found:
MACD Cross | Indicator | Buy when MACD crosses above its signal line
Cup and Handle | Pattern | Breakout above the handle with volume
Short one | Rule | too short
 | Concept | A concept line that is long enough
Raw line without description | Strategy
Ignored line without pipes`

	notes := ParseExtract(text, "book.pdf")
	want := []model.Note{
		{Title: "MACD Cross", Category: model.CategoryIndicator, Content: "Buy when MACD crosses above its signal line", Source: "book.pdf"},
		{Title: "Cup and Handle", Category: model.CategoryPattern, Content: "Breakout above the handle with volume", Source: "book.pdf"},
		{Title: model.CategoryPDFExtract, Category: model.CategoryPDFExtract, Content: "A concept line that is long enough", Source: "book.pdf"},
		{Title: "Raw line without description", Category: model.CategoryStrategy, Content: "Raw line without description | Strategy", Source: "book.pdf"},
	}
	if len(notes) != len(want) {
		t.Fatalf("got %d notes: %+v", len(notes), notes)
	}
	for i := range want {
		if notes[i] != want[i] {
			t.Errorf("note %d = %+v\nwant %+v", i, notes[i], want[i])
		}
	}
}

func TestParseExtractFallback(t *testing.T) {
	text := strings.Repeat("é", 600)
	notes := ParseExtract(text, "scan.pdf")
	if len(notes) != 1 {
		t.Fatalf("got %d notes", len(notes))
	}
	n := notes[0]
	if n.Title != "From scan.pdf" || n.Category != model.CategoryPDFExtract {
		t.Errorf("fallback note = %+v", n)
	}
	if got := len([]rune(n.Content)); got != 500 {
		t.Errorf("fallback length = %d runes, want 500", got)
	}
}

func TestContext(t *testing.T) {
	notes := DefaultNotes()
	ctx := Context(notes, 2, 20)
	want := "RSI Oversold Bounce(Strategy):Buy when RSI < 30 AN\n" +
		"SMA Golden Cross(Strategy):Buy when 20-SMA cros"
	if ctx != want {
		t.Errorf("got  %q\nwant %q", ctx, want)
	}
	if got := strings.Count(Context(notes, ContextNotes, TutorContextWidth), "\n"); got != 4 {
		t.Errorf("expected all 5 notes, got %d lines", got+1)
	}
	if Context(nil, 8, 100) != "" {
		t.Error("empty vault should render empty context")
	}
}

func TestIdeaAndPicksNotes(t *testing.T) {
	idea := IdeaNote("Reddit", "  "+strings.Repeat("x", 70), "Verdict: weak")
	if len(idea.Title) != 60 || idea.Source != "Reddit" {
		t.Errorf("idea note = %+v", idea)
	}
	if !strings.HasPrefix(idea.Content, "SOURCE: Reddit\n\nORIGINAL:\nxxx") || !strings.HasSuffix(idea.Content, "AI ANALYSIS:\nVerdict: weak") {
		t.Errorf("idea content = %q", idea.Content)
	}

	picks := PicksNote(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), "1. CRWD")
	if picks.Title != "Daily Picks · Mar 15, 2024" || picks.Source != SourcePicks || picks.Content != "1. CRWD" {
		t.Errorf("picks note = %+v", picks)
	}
}
