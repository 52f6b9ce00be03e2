// Package analyze turns indicator readings into a composite signal score.
package analyze

import (
	"github.com/Alias1177/TradeVault/internal/calculate"
	"github.com/Alias1177/TradeVault/internal/model"
)

// Windows used by the screener snapshot
const (
	ShortSMAWindow = 20
	LongSMAWindow  = 50
	momentumLag    = 5
)

// Snapshot computes the indicator readings at the end of the series.
// The long SMA falls back to the series length when it is shorter than 50.
func Snapshot(closes []float64) model.IndicatorSnapshot {
	longWindow := LongSMAWindow
	if len(closes) < longWindow {
		longWindow = len(closes)
	}
	return model.IndicatorSnapshot{
		RSI:       calculate.RelativeStrengthIndex(closes, calculate.DefaultRSIPeriod),
		Bollinger: calculate.BollingerBands(closes, calculate.DefaultBandPeriod, calculate.DefaultBandWidth),
		SMAShort:  calculate.LastSMA(closes, ShortSMAWindow),
		SMALong:   calculate.LastSMA(closes, longWindow),
	}
}

// Score evaluates the series and the last two prices. It has no hidden
// state: identical inputs give identical results.
func Score(closes []float64, last, previous float64) model.ScoredAsset {
	snap := Snapshot(closes)

	fiveStep := 0.0
	if len(closes) > momentumLag {
		base := closes[len(closes)-1-momentumLag]
		fiveStep = percentChange(last, base)
	}

	asset := ScoreSnapshot(snap, last, fiveStep)
	asset.PreviousPrice = previous
	asset.DayChangePercent = percentChange(last, previous)
	return asset
}

// ScoreSnapshot applies the rule chains to precomputed indicator readings.
func ScoreSnapshot(snap model.IndicatorSnapshot, last, fiveStepChange float64) model.ScoredAsset {
	var t tally
	t.rsiSignals(snap.RSI)
	t.bandSignals(last, snap.Bollinger)
	t.trendSignals(snap.SMAShort, snap.SMALong)
	t.momentumSignals(fiveStepChange)

	return model.ScoredAsset{
		LastPrice:             last,
		FiveStepChangePercent: fiveStepChange,
		Snapshot:              snap,
		Score:                 t.score,
		Signals:               t.signals,
	}
}

// ScoreSeries scores a series using its own last two closes.
func ScoreSeries(closes model.PriceSeries) model.ScoredAsset {
	last := closes.Last()
	previous := last
	if len(closes) > 1 {
		previous = closes[len(closes)-2]
	}
	return Score(closes, last, previous)
}

// ScoreLive scores a quote with provider-computed indicators. There is no
// long SMA, so the trend rule never fires; day change replaces momentum.
func ScoreLive(q model.LiveQuote) model.ScoredAsset {
	snap := model.IndicatorSnapshot{
		RSI:       q.RSI,
		Bollinger: q.Bollinger,
		SMAShort:  q.SMA20,
		SMALong:   model.Absent(),
	}

	var t tally
	t.rsiSignals(snap.RSI)
	t.bandSignals(q.LastPrice, snap.Bollinger)
	t.dayChangeSignals(q.DayChangePercent)

	return model.ScoredAsset{
		LastPrice:             q.LastPrice,
		PreviousPrice:         q.PreviousPrice,
		DayChangePercent:      q.DayChangePercent,
		FiveStepChangePercent: q.DayChangePercent,
		Snapshot:              snap,
		Score:                 t.score,
		Signals:               t.signals,
		Live:                  true,
	}
}

func percentChange(now, base float64) float64 {
	if base == 0 {
		return 0
	}
	return calculate.Round((now-base)/base*100, 2)
}
