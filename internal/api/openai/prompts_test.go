package openai

import (
	"strings"
	"testing"
	"time"

	"github.com/Alias1177/TradeVault/internal/model"
)

func listing(market model.Market, symbol string, score int) model.Listing {
	return model.Listing{
		Instrument: model.Instrument{Symbol: symbol, Name: symbol + " Corp"},
		Market:     market,
		Currency:   market.Currency(),
		Asset: model.ScoredAsset{
			LastPrice:        12.5,
			DayChangePercent: -1.25,
			Score:            score,
			Snapshot:         model.IndicatorSnapshot{RSI: model.Present(31.2)},
			Signals: []model.Signal{
				{Label: "RSI Oversold", Kind: model.Bullish},
				{Label: "At Band Lower", Kind: model.Bullish},
			},
		},
	}
}

func TestFormatAssetLine(t *testing.T) {
	got := FormatAssetLine(listing(model.MarketIndia, "TCS", 45))
	want := "[IN] TCS(TCS Corp):₹12.5 RSI:31.2 -1.25%/day Score:45 Signals:RSI Oversold,At Band Lower"
	if got != want {
		t.Errorf("got  %q\nwant %q", got, want)
	}

	l := listing(model.MarketUS, "CRWD", 0)
	l.Asset.Snapshot.RSI = model.Absent()
	l.Asset.Signals = nil
	if got := FormatAssetLine(l); !strings.Contains(got, "RSI:n/a") || !strings.HasPrefix(got, "[US] CRWD") {
		t.Errorf("got %q", got)
	}
}

func TestPicksPromptLimitsListings(t *testing.T) {
	var us, in []model.Listing
	for i := 0; i < 8; i++ {
		us = append(us, listing(model.MarketUS, "U"+string(rune('A'+i)), 10))
		in = append(in, listing(model.MarketIndia, "I"+string(rune('A'+i)), 10))
	}
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	p := PicksPrompt(date, "RSI Oversold Bounce(Strategy):Buy when RSI < 30", us, in)

	if c := strings.Count(p, "[US] "); c != PicksListings {
		t.Errorf("US lines = %d, want %d", c, PicksListings)
	}
	if c := strings.Count(p, "[IN] "); c != PicksListings {
		t.Errorf("IN lines = %d, want %d", c, PicksListings)
	}
	for _, want := range []string{
		"Date: Friday, March 15, 2024",
		"MY STRATEGY VAULT:\nRSI Oversold Bounce(Strategy)",
		"US STOCK SIGNALS:",
		"INDIAN STOCK SIGNALS:",
		"Give me TOP 3 picks",
		"7. Key risk",
	} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestIdeaAndTutorPrompts(t *testing.T) {
	p := IdeaPrompt("Twitter/X", "  buy the dip on NVDA  ")
	if !strings.HasPrefix(p, "Analyze this trading idea from Twitter/X:\n\n\"buy the dip on NVDA\"") {
		t.Errorf("idea prompt = %q", p)
	}
	if !strings.Contains(IdeaPrompt("", "x"), "from Social Media") {
		t.Error("empty source should use the default source")
	}

	s := TutorSystemPrompt("1% Risk Rule(Rule):Never risk more")
	if !strings.Contains(s, "User's saved strategies:\n1% Risk Rule(Rule)") {
		t.Errorf("tutor prompt = %q", s)
	}
}

func TestFormatBacktestSummary(t *testing.T) {
	r := &model.BacktestResult{TotalReturnPercent: 28.34, WinRatePercent: 100, MaxDrawdownPercent: 6.54, TradeCount: 1, FinalEquity: 12834}
	got := FormatBacktestSummary("CRWD", model.RSIReversal(30, 70), r)
	want := "CRWD · RSI Reversal (oversold 30, overbought 70)\nReturn: +28.34% | Win rate: 100.0% | Max DD: -6.54% | Trades: 1 | Final: 12834.00"
	if got != want {
		t.Errorf("got  %q\nwant %q", got, want)
	}
	if got := FormatBacktestSummary("X", model.SMACrossover(3, 5), nil); got != "X: no backtest result" {
		t.Errorf("nil summary = %q", got)
	}
}
