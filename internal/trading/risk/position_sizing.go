package risk

import (
	"fmt"
	"math"

	"github.com/Alias1177/TradeVault/internal/calculate"
	"github.com/Alias1177/TradeVault/internal/model"
)

// Sizing defaults
const (
	DefaultRiskFraction = 0.01
	DefaultStopPercent  = 4.0
	RewardMultiple      = 2.0
)

// PositionPlan holds position sizing calculation results
type PositionPlan struct {
	Entry           float64 `json:"entry"`
	StopLoss        float64 `json:"stop_loss"`
	TakeProfit      float64 `json:"take_profit"`
	Shares          int     `json:"shares"`
	PositionValue   float64 `json:"position_value"`
	RiskAmount      float64 `json:"risk_amount"`
	RiskRewardRatio float64 `json:"risk_reward_ratio"`
	AccountRisk     float64 `json:"account_risk"`
}

// DetermineStopLoss places a long stop at the lower Bollinger band when it
// sits below the entry, otherwise DefaultStopPercent below the entry.
func DetermineStopLoss(entry float64, bands *model.Bands) float64 {
	if bands != nil && bands.Lower > 0 && bands.Lower < entry {
		return calculate.Round(bands.Lower, 2)
	}
	return calculate.Round(entry*(1-DefaultStopPercent/100), 2)
}

// CalculatePositionSize sizes a trade so that hitting the stop loses
// riskPerTrade of the account: shares = (account × risk) ÷ |entry − stop|,
// never more than the account can buy. A stop above the entry sizes a short.
func CalculatePositionSize(entry, stopLoss, accountSize, riskPerTrade float64) (*PositionPlan, error) {
	if !(entry > 0) {
		return nil, fmt.Errorf("%w: entry price must be positive, got %v", model.ErrInvalidParameter, entry)
	}
	if !(accountSize > 0) {
		return nil, fmt.Errorf("%w: account size must be positive, got %v", model.ErrInvalidParameter, accountSize)
	}
	if !(riskPerTrade > 0 && riskPerTrade <= 1) {
		return nil, fmt.Errorf("%w: risk per trade %v outside (0,1]", model.ErrInvalidParameter, riskPerTrade)
	}

	// Calculate stop size in points
	stopSize := math.Abs(entry - stopLoss)
	if stopSize == 0 {
		return nil, fmt.Errorf("%w: stop loss equals entry", model.ErrInvalidParameter)
	}

	// Calculate risk amount in money
	riskAmount := accountSize * riskPerTrade
	shares := math.Floor(riskAmount / stopSize)
	if affordable := math.Floor(accountSize / entry); shares > affordable {
		shares = affordable
	}

	// Determine take-profit level at the reward multiple
	takeProfit := entry + (entry-stopLoss)*RewardMultiple
	if stopLoss > entry {
		takeProfit = entry - (stopLoss-entry)*RewardMultiple
	}

	return &PositionPlan{
		Entry:           entry,
		StopLoss:        stopLoss,
		TakeProfit:      calculate.Round(takeProfit, 2),
		Shares:          int(shares),
		PositionValue:   calculate.Round(shares*entry, 2),
		RiskAmount:      calculate.Round(shares*stopSize, 2),
		RiskRewardRatio: calculate.Round(math.Abs(takeProfit-entry)/stopSize, 2),
		AccountRisk:     riskPerTrade,
	}, nil
}

// FormatPlan renders a plan with the market's currency symbol.
func FormatPlan(symbol, currency string, p *PositionPlan) string {
	return fmt.Sprintf("%s position plan (%.1f%% account risk)\n"+
		"Entry: %s%.2f | Stop: %s%.2f | Target: %s%.2f\n"+
		"Shares: %d | Position: %s%.2f | At risk: %s%.2f | R:R 1:%.1f",
		symbol, p.AccountRisk*100,
		currency, p.Entry, currency, p.StopLoss, currency, p.TakeProfit,
		p.Shares, currency, p.PositionValue, currency, p.RiskAmount, p.RiskRewardRatio)
}
