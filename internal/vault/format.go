package vault

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Alias1177/TradeVault/internal/model"
)

// Note sources
const (
	SourceBuiltIn  = "Built-in"
	SourceScreener = "Screener"
	SourcePicks    = "AI Picks"
)

// Assistant context sizes
const (
	ContextNotes      = 8
	PicksContextWidth = 150
	TutorContextWidth = 100
)

const (
	extractFallbackRunes = 500
	minExtractContent    = 10
	ideaTitleRunes       = 60
)

// DefaultNotes returns the built-in strategy notes without IDs.
func DefaultNotes() []model.Note {
	const date = "2024-01-01"
	return []model.Note{
		{Title: "RSI Oversold Bounce", Category: model.CategoryStrategy, Source: SourceBuiltIn, Date: date,
			Content: "Buy when RSI < 30 AND price at/below Bollinger lower band. Exit when RSI crosses 50 or price hits BB mid. Works best on small/mid cap with strong fundamentals. Stop loss: 4% below entry."},
		{Title: "SMA Golden Cross", Category: model.CategoryStrategy, Source: SourceBuiltIn, Date: date,
			Content: "Buy when 20-SMA crosses above 50-SMA. Strong signal with volume confirmation. Best on trending markets. Avoid penny stocks. Stop: below the 20-SMA."},
		{Title: "Bollinger Band Squeeze", Category: model.CategoryIndicator, Source: SourceBuiltIn, Date: date,
			Content: "When bands narrow (low volatility), a big move is coming soon. Wait for the breakout direction before entering. Volume confirmation is essential."},
		{Title: "1% Risk Rule", Category: model.CategoryRule, Source: SourceBuiltIn, Date: date,
			Content: "Never risk more than 1-2% of capital on one trade. Position Size = (Account × 0.01) ÷ (Entry − Stop Loss)."},
		{Title: "India: Nifty Midcap Momentum", Category: model.CategoryStrategy, Source: SourceBuiltIn, Date: date,
			Content: "Nifty Midcap 150 stocks with RSI 50-65, price above 20-SMA, 5-day return > 3%. Enter on morning dip. Target 8-10% in 2-3 weeks. Stop at 20-SMA."},
	}
}

func price(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// AssetNote snapshots a screener listing as an idea note.
func AssetNote(l model.Listing) model.Note {
	a := l.Asset
	cur := l.Currency

	upper, mid, lower := "n/a", "n/a", "n/a"
	if bb := a.Snapshot.Bollinger; bb != nil {
		upper, mid, lower = cur+price(bb.Upper), cur+price(bb.Mid), cur+price(bb.Lower)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Price: %s%s | Score: %d | RSI: %s\n", cur, price(a.LastPrice), a.Score, a.Snapshot.RSI)
	fmt.Fprintf(&b, "Chg: %s%% | Signals: %s\n", price(a.DayChangePercent), strings.Join(a.Labels(), ", "))
	fmt.Fprintf(&b, "BB Upper: %s | Mid: %s | Lower: %s", upper, mid, lower)

	return model.Note{
		Title:    l.Symbol + " – " + l.Name,
		Category: model.CategoryIdea,
		Content:  b.String(),
		Source:   SourceScreener,
	}
}

// IdeaNote records an analyzed idea together with the assistant's verdict.
func IdeaNote(source, idea, analysis string) model.Note {
	idea = strings.TrimSpace(idea)
	return model.Note{
		Title:    truncate(idea, ideaTitleRunes),
		Category: model.CategoryIdea,
		Content:  fmt.Sprintf("SOURCE: %s\n\nORIGINAL:\n%s\n\nAI ANALYSIS:\n%s", source, idea, analysis),
		Source:   source,
	}
}

// PicksNote records a daily picks reply.
func PicksNote(date time.Time, picks string) model.Note {
	return model.Note{
		Title:    "Daily Picks · " + date.Format("Jan 2, 2006"),
		Category: model.CategoryIdea,
		Content:  picks,
		Source:   SourcePicks,
	}
}

var extractCategories = map[string]bool{
	model.CategoryStrategy:  true,
	model.CategoryIndicator: true,
	model.CategoryRule:      true,
	model.CategoryPattern:   true,
}

// ParseExtract turns "TITLE | CATEGORY | DESCRIPTION" lines into notes.
// Lines whose description is 10 characters or shorter are dropped. If no
// line survives, the first 500 characters become a single note.
func ParseExtract(text, source string) []model.Note {
	var notes []model.Note
	for _, line := range strings.Split(text, "\n") {
		if !strings.Contains(line, "|") {
			continue
		}
		parts := strings.Split(line, "|")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}

		title := parts[0]
		if title == "" {
			title = model.CategoryPDFExtract
		}
		category := model.CategoryPDFExtract
		if len(parts) > 1 && extractCategories[parts[1]] {
			category = parts[1]
		}
		content := line
		if len(parts) > 2 && parts[2] != "" {
			content = parts[2]
		}
		if len([]rune(content)) <= minExtractContent {
			continue
		}

		notes = append(notes, model.Note{
			Title:    title,
			Category: category,
			Content:  content,
			Source:   source,
		})
	}

	if len(notes) == 0 {
		notes = []model.Note{{
			Title:    "From " + source,
			Category: model.CategoryPDFExtract,
			Content:  truncate(text, extractFallbackRunes),
			Source:   source,
		}}
	}
	return notes
}

// Context renders the first n notes as "Title(Category):content" lines with
// content cut to width characters.
func Context(notes []model.Note, n, width int) string {
	if len(notes) > n {
		notes = notes[:n]
	}
	lines := make([]string, 0, len(notes))
	for _, note := range notes {
		lines = append(lines, fmt.Sprintf("%s(%s):%s", note.Title, note.Category, truncate(note.Content, width)))
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
