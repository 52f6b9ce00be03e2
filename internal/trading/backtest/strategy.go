package backtest

import (
	"github.com/Alias1177/TradeVault/internal/calculate"
	"github.com/Alias1177/TradeVault/internal/model"
)

// action is the per-step signal fed to the executor.
type action int

const (
	hold action = iota
	buy
	sell
)

// generateSignals returns one action per step. The action at step i only
// reads closes[0..i].
func generateSignals(closes []float64, params model.StrategyParams) []action {
	switch params.Kind {
	case model.StrategyRSIReversal:
		return rsiReversalSignals(closes, params.Oversold, params.Overbought)
	case model.StrategySMACrossover:
		return smaCrossoverSignals(closes, params.FastWindow, params.SlowWindow)
	}
	return make([]action, len(closes))
}

// rsiReversalSignals recomputes RSI over each prefix and fires on entry into
// the oversold or overbought zone.
func rsiReversalSignals(closes []float64, oversold, overbought float64) []action {
	signals := make([]action, len(closes))
	prev := model.Absent()
	for i := range closes {
		cur := calculate.RelativeStrengthIndex(closes[:i+1], calculate.DefaultRSIPeriod)
		now, okNow := cur.Get()
		before, okBefore := prev.Get()
		if okNow && okBefore {
			if now < oversold && before >= oversold {
				signals[i] = buy
			} else if now > overbought && before <= overbought {
				signals[i] = sell
			}
		}
		prev = cur
	}
	return signals
}

// smaCrossoverSignals fires when the fast average crosses the slow one.
// Both averages must be present at i and i-1.
func smaCrossoverSignals(closes []float64, fastWindow, slowWindow int) []action {
	fast := calculate.SimpleMovingAverage(closes, fastWindow)
	slow := calculate.SimpleMovingAverage(closes, slowWindow)

	signals := make([]action, len(closes))
	for i := 1; i < len(closes); i++ {
		f, okF := fast[i].Get()
		s, okS := slow[i].Get()
		pf, okPF := fast[i-1].Get()
		ps, okPS := slow[i-1].Get()
		if !okF || !okS || !okPF || !okPS {
			continue
		}
		if f > s && pf <= ps {
			signals[i] = buy
		} else if f < s && pf >= ps {
			signals[i] = sell
		}
	}
	return signals
}
