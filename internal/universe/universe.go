// Package universe holds the demo instrument tables and their simulated
// price history.
package universe

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/Alias1177/TradeVault/internal/analyze"
	"github.com/Alias1177/TradeVault/internal/model"
	"github.com/Alias1177/TradeVault/internal/simulate"
)

const (
	// Steps is the length of every simulated series.
	Steps = 60
	// SparkLength is the number of closes kept for the spark line.
	SparkLength = 15

	usSeedStep    = 77
	indiaSeedStep = 113
)

// File is the YAML layout accepted by LoadFile.
type File struct {
	US    []model.Instrument `yaml:"us"`
	India []model.Instrument `yaml:"in"`
}

// Universe is an immutable set of scored listings per market.
type Universe struct {
	listings map[model.Market][]model.Listing
}

var defaultUniverse = sync.OnceValue(func() *Universe {
	u, err := Build(usInstruments, indiaInstruments)
	if err != nil {
		panic(fmt.Sprintf("universe: built-in table is invalid: %v", err))
	}
	return u
})

// Default returns the built-in universe. It is built on first use.
func Default() *Universe {
	return defaultUniverse()
}

// LoadFile builds a universe from a YAML file.
func LoadFile(path string) (*Universe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read universe file: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse universe file: %w", err)
	}
	if len(f.US) == 0 && len(f.India) == 0 {
		return nil, fmt.Errorf("%w: universe file %s lists no instruments", model.ErrInvalidParameter, path)
	}
	return Build(f.US, f.India)
}

// Build generates and scores a series for every instrument. The i-th
// instrument of a market uses seed (i+1)*77 for US and (i+1)*113 for India.
func Build(us, india []model.Instrument) (*Universe, error) {
	u := &Universe{listings: make(map[model.Market][]model.Listing, 2)}
	var err error
	if u.listings[model.MarketUS], err = buildMarket(model.MarketUS, us, usSeedStep); err != nil {
		return nil, err
	}
	if u.listings[model.MarketIndia], err = buildMarket(model.MarketIndia, india, indiaSeedStep); err != nil {
		return nil, err
	}
	return u, nil
}

func buildMarket(market model.Market, instruments []model.Instrument, seedStep int64) ([]model.Listing, error) {
	out := make([]model.Listing, 0, len(instruments))
	for i, inst := range instruments {
		if inst.Symbol == "" {
			return nil, fmt.Errorf("%w: %s instrument %d has no symbol", model.ErrInvalidParameter, market, i)
		}
		closes, err := simulate.Generate(Steps, inst.Start, inst.Drift, inst.Volatility, int64(i+1)*seedStep)
		if err != nil {
			return nil, fmt.Errorf("instrument %s: %w", inst.Symbol, err)
		}
		out = append(out, model.Listing{
			Instrument: inst,
			Market:     market,
			Currency:   market.Currency(),
			Closes:     closes,
			Asset:      analyze.ScoreSeries(closes),
			Spark:      closes.Tail(SparkLength),
		})
	}
	return out, nil
}

// Listings returns copies of the market's listings in table order.
func (u *Universe) Listings(market model.Market) []model.Listing {
	src := u.listings[market]
	out := make([]model.Listing, len(src))
	for i, l := range src {
		out[i] = l.Clone()
	}
	return out
}

// Find looks a symbol up case-insensitively.
func (u *Universe) Find(market model.Market, symbol string) (model.Listing, error) {
	for _, l := range u.listings[market] {
		if strings.EqualFold(l.Symbol, symbol) {
			return l.Clone(), nil
		}
	}
	return model.Listing{}, fmt.Errorf("%w: %s in %s", model.ErrUnknownSymbol, symbol, market)
}

// Locate searches every market, US first.
func (u *Universe) Locate(symbol string) (model.Listing, error) {
	for _, m := range []model.Market{model.MarketUS, model.MarketIndia} {
		if l, err := u.Find(m, symbol); err == nil {
			return l, nil
		}
	}
	return model.Listing{}, fmt.Errorf("%w: %s", model.ErrUnknownSymbol, symbol)
}
