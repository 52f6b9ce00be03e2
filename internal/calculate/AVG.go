package calculate

import (
	"math"

	"github.com/Alias1177/TradeVault/internal/model"
)

// calculateAverage calculates simple average
func calculateAverage(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	var sum float64
	for _, value := range values {
		sum += value
	}

	return sum / float64(len(values))
}

// SimpleMovingAverage returns one reading per input position. Position i is
// present only when i >= window-1.
func SimpleMovingAverage(closes []float64, window int) []model.Optional {
	out := make([]model.Optional, len(closes))
	if window < 1 {
		return out
	}
	for i := window - 1; i < len(closes); i++ {
		out[i] = model.Present(calculateAverage(closes[i-window+1 : i+1]))
	}
	return out
}

// LastSMA returns the moving average at the final position.
func LastSMA(closes []float64, window int) model.Optional {
	if window < 1 || len(closes) < window {
		return model.Absent()
	}
	return model.Present(calculateAverage(closes[len(closes)-window:]))
}

// Round rounds x to the given number of decimals, half away from zero.
func Round(x float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(x*p) / p
}
