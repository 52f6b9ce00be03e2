// Package scheduler runs the periodic live refresh of the screener boards.
package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/TradeVault/internal/model"
	"github.com/Alias1177/TradeVault/internal/screener"
)

// Refresher refreshes one market's board.
type Refresher interface {
	Refresh(ctx context.Context, market model.Market) (screener.RefreshReport, error)
}

// Scheduler manages the refresh cron job.
type Scheduler struct {
	cron      *cron.Cron
	refresher Refresher
	markets   []model.Market
	onRefresh func(screener.RefreshReport)
	ctx       context.Context
	logger    zerolog.Logger
}

// Parser accepts standard five-field specs, an optional leading seconds
// field and descriptors such as "@every 15m".
var Parser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// NewScheduler creates a scheduler for the given markets. onRefresh, if
// set, is called after every successful refresh.
func NewScheduler(ctx context.Context, r Refresher, markets []model.Market, onRefresh func(screener.RefreshReport)) *Scheduler {
	return &Scheduler{
		cron: cron.New(
			cron.WithParser(Parser),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		refresher: r,
		markets:   markets,
		onRefresh: onRefresh,
		ctx:       ctx,
		logger:    log.With().Str("component", "scheduler").Logger(),
	}
}

// Register adds the refresh job on spec.
func (s *Scheduler) Register(spec string) error {
	return s.Schedule("refresh", spec, func(context.Context) { s.RunNow() })
}

// Schedule adds a named job on spec. The job gets the scheduler's context
// and is skipped while its previous run is still going.
func (s *Scheduler) Schedule(name, spec string, job func(ctx context.Context)) error {
	run := func() {
		if s.ctx.Err() != nil {
			return
		}
		s.logger.Debug().Str("job", name).Msg("Running scheduled job")
		job(s.ctx)
	}
	if _, err := s.cron.AddFunc(spec, run); err != nil {
		return fmt.Errorf("register %s task %q: %w", name, spec, err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info().Int("jobs", len(s.cron.Entries())).Msg("Scheduler started")
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info().Msg("Scheduler stopped")
}

// RunNow refreshes every market once.
func (s *Scheduler) RunNow() {
	for _, m := range s.markets {
		if s.ctx.Err() != nil {
			return
		}
		report, err := s.refresher.Refresh(s.ctx, m)
		if err != nil {
			s.logger.Error().Err(err).Str("market", string(m)).Msg("Scheduled refresh failed")
			continue
		}
		if s.onRefresh != nil {
			s.onRefresh(report)
		}
	}
}
