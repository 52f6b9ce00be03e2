package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Alias1177/TradeVault/internal/config"
	"github.com/Alias1177/TradeVault/internal/model"
)

// ParseStrategy builds strategy parameters from a kind ("rsi" or "sma",
// empty means rsi) and up to two positional values: oversold and
// overbought for rsi, fast and slow window for sma. Missing values come
// from defaults.
func ParseStrategy(kind string, args []string, defaults config.BacktestDefaults) (model.StrategyParams, error) {
	if len(args) > 2 {
		return model.StrategyParams{}, fmt.Errorf("%w: at most two strategy values, got %d", model.ErrInvalidParameter, len(args))
	}

	var p model.StrategyParams
	switch model.StrategyKind(strings.ToLower(strings.TrimSpace(kind))) {
	case "", model.StrategyRSIReversal:
		p = defaults.RSI()
		targets := []*float64{&p.Oversold, &p.Overbought}
		for i, a := range args {
			v, err := strconv.ParseFloat(a, 64)
			if err != nil {
				return p, fmt.Errorf("%w: %q is not a number", model.ErrInvalidParameter, a)
			}
			*targets[i] = v
		}
	case model.StrategySMACrossover:
		p = defaults.SMA()
		targets := []*int{&p.FastWindow, &p.SlowWindow}
		for i, a := range args {
			v, err := strconv.Atoi(a)
			if err != nil {
				return p, fmt.Errorf("%w: %q is not a whole number", model.ErrInvalidParameter, a)
			}
			*targets[i] = v
		}
	default:
		return p, fmt.Errorf("%w: unknown strategy %q (want rsi or sma)", model.ErrInvalidParameter, kind)
	}

	return p, p.Validate()
}
