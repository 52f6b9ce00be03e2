package app

import (
	"errors"
	"testing"

	"github.com/Alias1177/TradeVault/internal/config"
	"github.com/Alias1177/TradeVault/internal/model"
)

func TestParseStrategy(t *testing.T) {
	defaults := config.BacktestDefaults{Oversold: 30, Overbought: 70, FastWindow: 10, SlowWindow: 30}

	tests := []struct {
		name    string
		kind    string
		args    []string
		want    model.StrategyParams
		wantErr bool
	}{
		{name: "empty kind is rsi", want: model.RSIReversal(30, 70)},
		{name: "rsi overrides", kind: "RSI", args: []string{"25", "75.5"}, want: model.RSIReversal(25, 75.5)},
		{name: "rsi one override", kind: "rsi", args: []string{"20"}, want: model.RSIReversal(20, 70)},
		{name: "sma defaults", kind: "sma", want: model.SMACrossover(10, 30)},
		{name: "sma overrides", kind: "sma", args: []string{"5", "20"}, want: model.SMACrossover(5, 20)},
		{name: "unknown kind", kind: "macd", wantErr: true},
		{name: "not a number", kind: "rsi", args: []string{"low"}, wantErr: true},
		{name: "fractional window", kind: "sma", args: []string{"2.5"}, wantErr: true},
		{name: "out of range", kind: "rsi", args: []string{"0"}, wantErr: true},
		{name: "too many values", kind: "sma", args: []string{"1", "2", "3"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStrategy(tt.kind, tt.args, defaults)
			if tt.wantErr {
				if !errors.Is(err, model.ErrInvalidParameter) {
					t.Fatalf("err = %v, want ErrInvalidParameter", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}
