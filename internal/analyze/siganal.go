package analyze

import "github.com/Alias1177/TradeVault/internal/model"

// Signal labels
const (
	LabelRSIOversold      = "RSI Oversold"
	LabelRSIHealthy       = "RSI Healthy"
	LabelRSIOverbought    = "RSI Overbought"
	LabelBandLower        = "At Band Lower"
	LabelBandUpper        = "At Band Upper"
	LabelAboveBandMid     = "Above Band Mid"
	LabelTrendBullish     = "Trend Bullish"
	LabelTrendBearish     = "Trend Bearish"
	LabelPositiveMomentum = "Positive Momentum"
	LabelSellingPressure  = "Selling Pressure"
	LabelPositiveDay      = "Positive Day"
	LabelSellingToday     = "Selling Today"
)

// Rule thresholds
const (
	rsiOversold       = 35.0
	rsiOverbought     = 65.0
	rsiHealthy        = 45.0
	momentumThreshold = 5.0
	dayMoveThreshold  = 1.0
)

// tally accumulates signals and the running score.
type tally struct {
	score   int
	signals []model.Signal
}

func (t *tally) add(label string, kind model.SignalKind, delta int) {
	t.signals = append(t.signals, model.Signal{Label: label, Kind: kind})
	t.score += delta
}

// rsiSignals: at most one of oversold, overbought, healthy fires.
func (t *tally) rsiSignals(rsi model.Optional) {
	v, ok := rsi.Get()
	if !ok {
		return
	}
	if v < rsiOversold {
		t.add(LabelRSIOversold, model.Bullish, 25)
	} else if v > rsiOverbought {
		t.add(LabelRSIOverbought, model.Bearish, -10)
	} else if v > rsiHealthy {
		t.add(LabelRSIHealthy, model.Neutral, 10)
	}
}

// bandSignals: at most one band position fires.
func (t *tally) bandSignals(last float64, bb *model.Bands) {
	if bb == nil {
		return
	}
	if last <= bb.Lower {
		t.add(LabelBandLower, model.Bullish, 20)
	} else if last >= bb.Upper {
		t.add(LabelBandUpper, model.Bearish, -8)
	} else if last > bb.Mid {
		t.add(LabelAboveBandMid, model.Bullish, 8)
	}
}

// trendSignals needs both averages; absence of either means no signal.
func (t *tally) trendSignals(short, long model.Optional) {
	s, okS := short.Get()
	l, okL := long.Get()
	if !okS || !okL {
		return
	}
	if s > l {
		t.add(LabelTrendBullish, model.Bullish, 20)
	} else {
		t.add(LabelTrendBearish, model.Bearish, -10)
	}
}

func (t *tally) momentumSignals(fiveStepChange float64) {
	if fiveStepChange > momentumThreshold {
		t.add(LabelPositiveMomentum, model.Bullish, 15)
	}
	if fiveStepChange < -momentumThreshold {
		t.add(LabelSellingPressure, model.Bearish, -10)
	}
}

func (t *tally) dayChangeSignals(change float64) {
	if change > dayMoveThreshold {
		t.add(LabelPositiveDay, model.Bullish, 10)
	}
	if change < -dayMoveThreshold {
		t.add(LabelSellingToday, model.Bearish, -10)
	}
}
