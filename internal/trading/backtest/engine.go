// Package backtest replays a single-position strategy over a price series.
package backtest

import (
	"fmt"
	"math"
	"strings"

	"github.com/Alias1177/TradeVault/internal/calculate"
	"github.com/Alias1177/TradeVault/internal/model"
)

// DefaultInitialCash is the starting account value.
const DefaultInitialCash = 10000.0

// Engine handles backtesting operations
type Engine struct {
	initialValue float64
}

// NewEngine creates a new backtesting engine
func NewEngine() *Engine {
	return &Engine{initialValue: DefaultInitialCash}
}

// SetInitialValue sets the initial capital for backtesting
func (e *Engine) SetInitialValue(value float64) {
	e.initialValue = value
}

// Run backtests params over series with the default starting cash.
func Run(series model.PriceSeries, params model.StrategyParams) (*model.BacktestResult, error) {
	return NewEngine().Run(series, params)
}

// Run executes the strategy step by step. The account is either flat or
// long one position; buys while long and sells while flat are ignored.
func (e *Engine) Run(series model.PriceSeries, params model.StrategyParams) (*model.BacktestResult, error) {
	if err := series.Validate(); err != nil {
		return nil, err
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if !(e.initialValue > 0) {
		return nil, fmt.Errorf("%w: initial cash %v must be positive", model.ErrInvalidParameter, e.initialValue)
	}

	signals := generateSignals(series, params)

	cash := e.initialValue
	shares := 0.0
	long := false
	entry := 0.0

	result := &model.BacktestResult{
		EquityCurve: make([]model.EquityPoint, 0, len(series)),
		Trades:      []model.Trade{},
	}

	for i, price := range series {
		switch {
		case signals[i] == buy && !long:
			shares = math.Floor(cash / price)
			cash -= shares * price
			entry = price
			long = true
		case signals[i] == sell && long:
			pnl := shares * (price - entry)
			result.Trades = append(result.Trades, model.Trade{
				ProfitAndLoss: calculate.Round(pnl, 2),
				IsWin:         pnl > 0,
			})
			cash += shares * price
			shares = 0
			long = false
		}
		result.EquityCurve = append(result.EquityCurve, model.EquityPoint{
			Step:  i,
			Value: calculate.Round(cash+shares*price, 2),
		})
	}

	// Open positions are closed at the last price without recording a trade.
	if long {
		cash += shares * series.Last()
	}

	result.TradeCount = len(result.Trades)
	result.TotalReturnPercent = calculate.Round((cash-e.initialValue)/(e.initialValue/100), 2)
	result.WinRatePercent = calculate.Round(winRate(result.Trades), 1)
	result.MaxDrawdownPercent = calculate.Round(maxDrawdown(result.EquityCurve), 2)
	result.FinalEquity = calculate.Round(cash, 2)

	return result, nil
}

// FormatResults creates a human-readable summary of backtest results
func FormatResults(params model.StrategyParams, results *model.BacktestResult) string {
	if results == nil {
		return "No backtest results available"
	}

	var b strings.Builder
	b.WriteString("===== BACKTEST RESULTS =====\n")
	fmt.Fprintf(&b, "Strategy: %s\n", params)
	sign := ""
	if results.TotalReturnPercent >= 0 {
		sign = "+"
	}
	fmt.Fprintf(&b, "Total return: %s%.2f%%\n", sign, results.TotalReturnPercent)
	fmt.Fprintf(&b, "Trades: %d\n", results.TradeCount)
	fmt.Fprintf(&b, "Win rate: %.1f%%\n", results.WinRatePercent)
	fmt.Fprintf(&b, "Maximum drawdown: -%.2f%%\n", results.MaxDrawdownPercent)
	fmt.Fprintf(&b, "Final equity: %.2f\n", results.FinalEquity)

	if results.TradeCount > 0 {
		wins, losses := streaks(results.Trades)
		fmt.Fprintf(&b, "Max consecutive wins: %d\n", wins)
		fmt.Fprintf(&b, "Max consecutive losses: %d\n", losses)
		if pf := profitFactor(results.Trades); pf > 0 {
			fmt.Fprintf(&b, "Profit factor: %.2f\n", pf)
		}
	}

	return b.String()
}
