package model

import (
	"fmt"
	"strings"
)

// Market identifies one of the screened markets.
type Market string

const (
	MarketUS    Market = "us"
	MarketIndia Market = "in"
)

// Instrument describes a screened stock and its synthetic price model.
type Instrument struct {
	Symbol     string  `yaml:"symbol" json:"symbol"`
	Name       string  `yaml:"name" json:"name"`
	Sector     string  `yaml:"sector" json:"sector"`
	Cap        string  `yaml:"cap" json:"cap"` // large, mid, small, penny
	Start      float64 `yaml:"start" json:"start"`
	Drift      float64 `yaml:"drift" json:"drift"`
	Volatility float64 `yaml:"volatility" json:"volatility"`
	Exchange   string  `yaml:"exchange,omitempty" json:"exchange,omitempty"`
}

// Listing is an instrument with its current score and spark line.
type Listing struct {
	Instrument
	Market   Market      `json:"market"`
	Currency string      `json:"currency"`
	Closes   PriceSeries `json:"-"`
	Asset    ScoredAsset `json:"asset"`
	Spark    []float64   `json:"spark"`
}

// Currency returns the display currency symbol for the market.
func (m Market) Currency() string {
	if m == MarketIndia {
		return "₹"
	}
	return "$"
}

// ParseMarket accepts "us" or "in" (case-insensitive, "india" also works).
func ParseMarket(s string) (Market, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "us":
		return MarketUS, nil
	case "in", "india":
		return MarketIndia, nil
	}
	return "", fmt.Errorf("%w: unknown market %q", ErrInvalidParameter, s)
}

// Clone returns a deep copy so callers cannot mutate shared slices.
func (l Listing) Clone() Listing {
	out := l
	out.Closes = append(PriceSeries(nil), l.Closes...)
	out.Spark = append([]float64(nil), l.Spark...)
	out.Asset.Signals = append([]Signal(nil), l.Asset.Signals...)
	return out
}
