package model

// SignalKind classifies a signal's direction.
type SignalKind string

const (
	Bullish SignalKind = "bullish"
	Bearish SignalKind = "bearish"
	Neutral SignalKind = "neutral"
)

// Signal is one labeled rule hit produced by the scoring engine.
type Signal struct {
	Label string     `json:"label"`
	Kind  SignalKind `json:"kind"`
}

// ScoredAsset is the scoring engine output for one instrument.
type ScoredAsset struct {
	LastPrice             float64           `json:"last_price"`
	PreviousPrice         float64           `json:"previous_price"`
	DayChangePercent      float64           `json:"day_change_pct"`
	FiveStepChangePercent float64           `json:"five_step_change_pct"`
	Snapshot              IndicatorSnapshot `json:"-"`
	Score                 int               `json:"score"`
	Signals               []Signal          `json:"signals"`
	Live                  bool              `json:"live"`
}

// Labels returns the signal labels in evaluation order.
func (a ScoredAsset) Labels() []string {
	labels := make([]string, 0, len(a.Signals))
	for _, s := range a.Signals {
		labels = append(labels, s.Label)
	}
	return labels
}

// HasSignal reports whether a signal with the given label fired.
func (a ScoredAsset) HasSignal(label string) bool {
	for _, s := range a.Signals {
		if s.Label == label {
			return true
		}
	}
	return false
}
