package backtest

import "github.com/Alias1177/TradeVault/internal/model"

// maxDrawdown returns the largest peak-to-trough decline in percent,
// tracking a running peak from the first point.
func maxDrawdown(curve []model.EquityPoint) float64 {
	if len(curve) == 0 {
		return 0
	}
	peak := curve[0].Value
	worst := 0.0
	for _, point := range curve {
		if point.Value > peak {
			peak = point.Value
		}
		if peak <= 0 {
			continue
		}
		if dd := (peak - point.Value) / peak * 100; dd > worst {
			worst = dd
		}
	}
	return worst
}

// winRate is wins/trades in percent, 0 with no trades.
func winRate(trades []model.Trade) float64 {
	if len(trades) == 0 {
		return 0
	}
	wins := 0
	for _, trade := range trades {
		if trade.IsWin {
			wins++
		}
	}
	return float64(wins) / float64(len(trades)) * 100
}

// streaks returns the longest runs of consecutive wins and losses.
func streaks(trades []model.Trade) (maxWins, maxLosses int) {
	wins, losses := 0, 0
	for _, trade := range trades {
		if trade.IsWin {
			wins++
			losses = 0
		} else {
			losses++
			wins = 0
		}
		if wins > maxWins {
			maxWins = wins
		}
		if losses > maxLosses {
			maxLosses = losses
		}
	}
	return maxWins, maxLosses
}

// profitFactor is gross profit over gross loss; 0 when there are no losses.
func profitFactor(trades []model.Trade) float64 {
	var gain, loss float64
	for _, trade := range trades {
		if trade.ProfitAndLoss > 0 {
			gain += trade.ProfitAndLoss
		} else {
			loss -= trade.ProfitAndLoss
		}
	}
	if loss == 0 {
		return 0
	}
	return gain / loss
}
