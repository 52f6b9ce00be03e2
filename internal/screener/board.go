// Package screener keeps the scored listings per market and refreshes them
// from the live data provider.
package screener

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/Alias1177/TradeVault/internal/analyze"
	"github.com/Alias1177/TradeVault/internal/metrics"
	"github.com/Alias1177/TradeVault/internal/model"
	"github.com/Alias1177/TradeVault/internal/universe"
)

// Defaults for Options
const (
	DefaultLiveLimit   = 8
	DefaultConcurrency = 4
)

// Fetcher returns a live quote with server-side indicators.
type Fetcher interface {
	FetchSnapshot(ctx context.Context, symbol, exchange string) (*model.LiveQuote, error)
}

// Options configures a Board.
type Options struct {
	// LiveLimit is how many listings per market are refreshed, in table order.
	LiveLimit   int
	Concurrency int
	Metrics     *metrics.Metrics
}

// Board holds the current listings for every market.
type Board struct {
	mu       sync.RWMutex
	listings map[model.Market][]model.Listing

	fetcher     Fetcher
	liveLimit   int
	concurrency int
	metrics     *metrics.Metrics
	logger      zerolog.Logger
}

// RefreshReport summarizes one Refresh call.
type RefreshReport struct {
	Market    model.Market
	Attempted int
	Updated   int
	Failed    int
}

// NewBoard seeds a board from the universe. fetcher may be nil, in which
// case the board serves simulated data only.
func NewBoard(u *universe.Universe, fetcher Fetcher, opts Options) *Board {
	if opts.LiveLimit <= 0 {
		opts.LiveLimit = DefaultLiveLimit
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}

	b := &Board{
		listings:    make(map[model.Market][]model.Listing, 2),
		fetcher:     fetcher,
		liveLimit:   opts.LiveLimit,
		concurrency: opts.Concurrency,
		metrics:     opts.Metrics,
		logger:      log.With().Str("component", "screener").Logger(),
	}
	for _, m := range []model.Market{model.MarketUS, model.MarketIndia} {
		b.listings[m] = u.Listings(m)
		for _, l := range b.listings[m] {
			b.metrics.SetScore(string(m), l.Symbol, l.Asset.Score)
		}
	}
	return b
}

// Live reports whether a live data provider is configured.
func (b *Board) Live() bool {
	return b.fetcher != nil
}

// Refresh fetches live snapshots for the first LiveLimit listings of the
// market. A failed fetch keeps that listing's previous value.
func (b *Board) Refresh(ctx context.Context, market model.Market) (RefreshReport, error) {
	report := RefreshReport{Market: market}
	if b.fetcher == nil {
		return report, fmt.Errorf("%w: no live data provider configured", model.ErrCollaboratorUnavailable)
	}
	start := time.Now()
	defer func() { b.metrics.ObserveRefresh(string(market), time.Since(start)) }()

	b.mu.RLock()
	targets := make([]model.Instrument, 0, b.liveLimit)
	for i, l := range b.listings[market] {
		if i == b.liveLimit {
			break
		}
		targets = append(targets, l.Instrument)
	}
	b.mu.RUnlock()

	report.Attempted = len(targets)
	quotes := make([]*model.LiveQuote, len(targets))

	var g errgroup.Group
	g.SetLimit(b.concurrency)
	for i, inst := range targets {
		i, inst := i, inst
		g.Go(func() error {
			q, err := b.fetcher.FetchSnapshot(ctx, inst.Symbol, inst.Exchange)
			b.metrics.ObserveFetch(string(market), err)
			if err != nil {
				b.logger.Warn().Err(err).Str("symbol", inst.Symbol).Msg("Live fetch failed, keeping previous value")
				return nil
			}
			quotes[i] = q
			return nil
		})
	}
	_ = g.Wait()

	b.mu.Lock()
	defer b.mu.Unlock()
	listings := b.listings[market]
	for i, q := range quotes {
		if q == nil {
			report.Failed++
			continue
		}
		idx := indexOf(listings, targets[i].Symbol)
		if idx < 0 {
			continue
		}
		listings[idx] = withLive(listings[idx], *q)
		b.metrics.SetScore(string(market), listings[idx].Symbol, listings[idx].Asset.Score)
		report.Updated++
	}

	b.logger.Info().
		Str("market", string(market)).
		Int("updated", report.Updated).
		Int("failed", report.Failed).
		Dur("took", time.Since(start)).
		Msg("Board refreshed")

	if ctxErr := ctx.Err(); ctxErr != nil && report.Updated == 0 {
		return report, ctxErr
	}
	return report, nil
}

// withLive swaps in the live score and appends the live price to the spark.
func withLive(l model.Listing, q model.LiveQuote) model.Listing {
	l.Asset = analyze.ScoreLive(q)
	spark := append(append([]float64(nil), l.Spark...), q.LastPrice)
	if len(spark) > universe.SparkLength {
		spark = spark[len(spark)-universe.SparkLength:]
	}
	l.Spark = spark
	return l
}

func indexOf(listings []model.Listing, symbol string) int {
	for i, l := range listings {
		if l.Symbol == symbol {
			return i
		}
	}
	return -1
}

// Listings returns copies of all listings of the market in table order.
func (b *Board) Listings(market model.Market) []model.Listing {
	b.mu.RLock()
	defer b.mu.RUnlock()
	src := b.listings[market]
	out := make([]model.Listing, len(src))
	for i, l := range src {
		out[i] = l.Clone()
	}
	return out
}

// Find returns a copy of one listing, matched case-insensitively.
func (b *Board) Find(market model.Market, symbol string) (model.Listing, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, l := range b.listings[market] {
		if strings.EqualFold(l.Symbol, symbol) {
			return l.Clone(), nil
		}
	}
	return model.Listing{}, fmt.Errorf("%w: %s in %s", model.ErrUnknownSymbol, symbol, market)
}

// Filter applies q to the market's listings.
func (b *Board) Filter(market model.Market, q Query) []model.Listing {
	return q.Apply(b.Listings(market))
}

// Top returns the n best-scoring listings regardless of cap or min score.
func (b *Board) Top(market model.Market, n int) []model.Listing {
	ranked := Query{Cap: CapAll, MinScore: minPossibleScore, SortBy: SortScore}.Apply(b.Listings(market))
	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
