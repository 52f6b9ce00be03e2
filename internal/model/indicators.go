package model

// Bands holds a Bollinger band reading.
type Bands struct {
	Upper float64 `json:"upper"`
	Mid   float64 `json:"mid"`
	Lower float64 `json:"lower"`
}

// IndicatorSnapshot is the set of indicator readings at the latest step.
// Bollinger is nil when the series is shorter than the band window.
type IndicatorSnapshot struct {
	RSI       Optional
	Bollinger *Bands
	SMAShort  Optional // SMA(20)
	SMALong   Optional // SMA(min(50, len))
}
