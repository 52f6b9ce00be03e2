package model

import "fmt"

// StrategyKind tags the StrategyParams variant.
type StrategyKind string

const (
	StrategyRSIReversal  StrategyKind = "rsi"
	StrategySMACrossover StrategyKind = "sma"
)

// StrategyParams selects a backtest strategy and its parameters.
// Only the fields of the selected Kind are read.
type StrategyParams struct {
	Kind StrategyKind `json:"kind"`

	// RSI reversal
	Oversold   float64 `json:"oversold,omitempty"`
	Overbought float64 `json:"overbought,omitempty"`

	// SMA crossover
	FastWindow int `json:"fast_window,omitempty"`
	SlowWindow int `json:"slow_window,omitempty"`
}

// RSIReversal builds RSI reversal parameters.
func RSIReversal(oversold, overbought float64) StrategyParams {
	return StrategyParams{Kind: StrategyRSIReversal, Oversold: oversold, Overbought: overbought}
}

// SMACrossover builds SMA crossover parameters.
func SMACrossover(fast, slow int) StrategyParams {
	return StrategyParams{Kind: StrategySMACrossover, FastWindow: fast, SlowWindow: slow}
}

// Validate checks the parameters of the selected variant.
// fast < slow is recommended but not enforced.
func (p StrategyParams) Validate() error {
	switch p.Kind {
	case StrategyRSIReversal:
		if !(p.Oversold > 0 && p.Oversold < 100) {
			return fmt.Errorf("%w: oversold threshold %v outside (0,100)", ErrInvalidParameter, p.Oversold)
		}
		if !(p.Overbought > 0 && p.Overbought < 100) {
			return fmt.Errorf("%w: overbought threshold %v outside (0,100)", ErrInvalidParameter, p.Overbought)
		}
	case StrategySMACrossover:
		if p.FastWindow < 1 {
			return fmt.Errorf("%w: fast window %d must be >= 1", ErrInvalidParameter, p.FastWindow)
		}
		if p.SlowWindow < 1 {
			return fmt.Errorf("%w: slow window %d must be >= 1", ErrInvalidParameter, p.SlowWindow)
		}
	default:
		return fmt.Errorf("%w: unknown strategy %q", ErrInvalidParameter, p.Kind)
	}
	return nil
}

func (p StrategyParams) String() string {
	switch p.Kind {
	case StrategyRSIReversal:
		return fmt.Sprintf("RSI Reversal (oversold %.0f, overbought %.0f)", p.Oversold, p.Overbought)
	case StrategySMACrossover:
		return fmt.Sprintf("SMA Crossover (fast %d, slow %d)", p.FastWindow, p.SlowWindow)
	}
	return string(p.Kind)
}

// Trade is a closed round trip.
type Trade struct {
	ProfitAndLoss float64 `json:"pnl"`
	IsWin         bool    `json:"win"`
}

// EquityPoint is the marked-to-market account value at one step.
type EquityPoint struct {
	Step  int     `json:"i"`
	Value float64 `json:"v"`
}

// BacktestResult stores the outcome of one backtest run
type BacktestResult struct {
	EquityCurve        []EquityPoint `json:"equity"`
	Trades             []Trade       `json:"trades"`
	TotalReturnPercent float64       `json:"total_return_pct"`
	TradeCount         int           `json:"trade_count"`
	WinRatePercent     float64       `json:"win_rate_pct"`
	MaxDrawdownPercent float64       `json:"max_drawdown_pct"`
	FinalEquity        float64       `json:"final_equity"`
}
