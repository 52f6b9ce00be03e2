package openai

import (
	"fmt"
	"strings"
	"time"

	"github.com/Alias1177/TradeVault/internal/model"
)

// System prompts
const (
	PicksSystem = "You are a dual-market analyst covering US and Indian stocks. " +
		"Match signals to the user's strategies. Always note that this is educational/simulation only."
	IdeaSystem = "You are a professional trading analyst. Evaluate strategies critically. Be concise and honest."
	ExtractSystem = "You are a trading strategy extraction expert. Extract actionable knowledge."

	// ExtractPrompt asks for one "TITLE | CATEGORY | DESCRIPTION" line per item.
	ExtractPrompt = "Extract all trading strategies, indicators, entry/exit rules, and key concepts. " +
		"Format each as: TITLE | CATEGORY (Strategy/Indicator/Rule/Pattern) | DESCRIPTION"
)

// DefaultIdeaSource is used when an idea has no stated origin.
const DefaultIdeaSource = "Social Media"

// PicksListings is how many listings per market go into the picks prompt.
const PicksListings = 6

// FormatAssetLine renders one listing as a single prompt line.
func FormatAssetLine(l model.Listing) string {
	tag := "[US]"
	if l.Market == model.MarketIndia {
		tag = "[IN]"
	}
	return fmt.Sprintf("%s %s(%s):%s%v RSI:%s %v%%/day Score:%d Signals:%s",
		tag, l.Symbol, l.Name, l.Currency, l.Asset.LastPrice,
		l.Asset.Snapshot.RSI, l.Asset.DayChangePercent, l.Asset.Score,
		strings.Join(l.Asset.Labels(), ","))
}

func assetLines(listings []model.Listing) string {
	lines := make([]string, 0, len(listings))
	for _, l := range listings {
		lines = append(lines, FormatAssetLine(l))
	}
	return strings.Join(lines, "\n")
}

// PicksPrompt asks for the top three picks across both markets. Listings
// are expected to be ranked already; only the first six of each are used.
func PicksPrompt(date time.Time, vaultContext string, usTop, inTop []model.Listing) string {
	if len(usTop) > PicksListings {
		usTop = usTop[:PicksListings]
	}
	if len(inTop) > PicksListings {
		inTop = inTop[:PicksListings]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Date: %s\n\n", date.Format("Monday, January 2, 2006"))
	fmt.Fprintf(&b, "MY STRATEGY VAULT:\n%s\n\n", vaultContext)
	fmt.Fprintf(&b, "US STOCK SIGNALS:\n%s\n\n", assetLines(usTop))
	fmt.Fprintf(&b, "INDIAN STOCK SIGNALS:\n%s\n\n", assetLines(inTop))
	b.WriteString("Give me TOP 3 picks (mix of US and India based on signals). For each:\n" +
		"1. Symbol + market flag 🇺🇸/🇮🇳\n" +
		"2. Why it matches my vault strategies\n" +
		"3. Entry zone\n" +
		"4. Stop loss\n" +
		"5. Target\n" +
		"6. Confidence (1-10)\n" +
		"7. Key risk")
	return b.String()
}

// TutorSystemPrompt frames the tutor conversation around the user's notes.
func TutorSystemPrompt(vaultContext string) string {
	return "You are an expert stock trading tutor covering both US markets (NYSE/NASDAQ) and " +
		"Indian markets (NSE/BSE). The user is a beginner.\n" +
		"User's saved strategies:\n" + vaultContext + "\n" +
		"Guidelines: explain simply with analogies, mention both markets where relevant, " +
		"3-4 paragraphs, suggest saving insights to vault, no specific buy/sell recommendations."
}

// IdeaPrompt asks for a structured critique of a trading idea.
func IdeaPrompt(source, idea string) string {
	if source == "" {
		source = DefaultIdeaSource
	}
	return fmt.Sprintf("Analyze this trading idea from %s:\n\n%q\n\n"+
		"Provide: 1)Title 2)Category 3)Cleaned strategy 4)Entry/exit rules 5)Risk level 6)Verdict, valid or not?",
		source, strings.TrimSpace(idea))
}

// FormatBacktestSummary renders a backtest for the assistant or a chat reply.
func FormatBacktestSummary(symbol string, params model.StrategyParams, r *model.BacktestResult) string {
	if r == nil {
		return symbol + ": no backtest result"
	}
	sign := ""
	if r.TotalReturnPercent >= 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s · %s\nReturn: %s%.2f%% | Win rate: %.1f%% | Max DD: -%.2f%% | Trades: %d | Final: %.2f",
		symbol, params, sign, r.TotalReturnPercent, r.WinRatePercent, r.MaxDrawdownPercent, r.TradeCount, r.FinalEquity)
}
