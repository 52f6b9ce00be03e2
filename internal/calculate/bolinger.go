package calculate

import (
	"math"

	"github.com/Alias1177/TradeVault/internal/model"
)

// Default Bollinger parameters
const (
	DefaultBandPeriod = 20
	DefaultBandWidth  = 2.0
)

// BollingerBands calculates the bands over the trailing `period` closes using
// the population standard deviation. Returns nil if there is not enough data.
func BollingerBands(closes []float64, period int, k float64) *model.Bands {
	if period < 1 || len(closes) < period {
		return nil
	}

	window := closes[len(closes)-period:]
	middle := calculateAverage(window)

	var variance float64
	for _, c := range window {
		variance += (c - middle) * (c - middle)
	}
	sd := math.Sqrt(variance / float64(period))

	return &model.Bands{
		Upper: Round(middle+k*sd, 2),
		Mid:   Round(middle, 2),
		Lower: Round(middle-k*sd, 2),
	}
}
