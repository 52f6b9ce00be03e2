// Package main - tradevault CLI
//
// Usage:
//
//	go run ./cmd/tradevault screen --market in --sort rsi
//	go run ./cmd/tradevault backtest CRWD --strategy sma --fast 5 --slow 20
package main

import (
	"os"

	"github.com/Alias1177/TradeVault/cmd/tradevault/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
