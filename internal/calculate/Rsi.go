package calculate

import "github.com/Alias1177/TradeVault/internal/model"

// DefaultRSIPeriod is the RSI window used by the screener and the backtester.
const DefaultRSIPeriod = 14

// minAvgLoss keeps RS finite when the window had no losing steps.
const minAvgLoss = 0.001

// RelativeStrengthIndex computes Wilder's RSI over the whole series.
// Requires at least period+1 closes, otherwise the reading is absent.
func RelativeStrengthIndex(closes []float64, period int) model.Optional {
	if period < 1 || len(closes) < period+1 {
		return model.Absent()
	}

	// Seed with the simple mean of the first `period` deltas
	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	// Wilder smoothing for the remaining deltas
	n := float64(period)
	for i := period + 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*(n-1) + gain) / n
		avgLoss = (avgLoss*(n-1) + loss) / n
	}

	if avgLoss == 0 {
		avgLoss = minAvgLoss
	}
	rs := avgGain / avgLoss
	return model.Present(Round(100.0-100.0/(1.0+rs), 1))
}
