// Package metrics exposes Prometheus counters for the screener, backtester,
// assistant and vault.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Outcome label values
const (
	OutcomeOK       = "ok"
	OutcomeFailed   = "failed"
	OutcomeFallback = "fallback"
)

// Metrics holds all Prometheus metrics for TradeVault. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	LiveFetches       *prometheus.CounterVec // labels: market, outcome
	RefreshDuration   *prometheus.HistogramVec
	ListingScore      *prometheus.GaugeVec // labels: market, symbol
	BacktestsTotal    *prometheus.CounterVec // labels: strategy
	AssistantRequests *prometheus.CounterVec // labels: outcome
	VaultOperations   *prometheus.CounterVec // labels: op, outcome

	registry *prometheus.Registry
}

// NewMetrics creates the collectors on a dedicated registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		LiveFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tradevault_live_fetches_total",
			Help: "Live snapshot fetches by market and outcome",
		}, []string{"market", "outcome"}),
		RefreshDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tradevault_refresh_duration_seconds",
			Help:    "Board refresh latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"market"}),
		ListingScore: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "tradevault_listing_score",
			Help: "Current composite signal score per listing",
		}, []string{"market", "symbol"}),
		BacktestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tradevault_backtests_total",
			Help: "Backtests run by strategy",
		}, []string{"strategy"}),
		AssistantRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tradevault_assistant_requests_total",
			Help: "Assistant completions by outcome",
		}, []string{"outcome"}),
		VaultOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tradevault_vault_operations_total",
			Help: "Vault store operations by kind and outcome",
		}, []string{"op", "outcome"}),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.LiveFetches,
		m.RefreshDuration,
		m.ListingScore,
		m.BacktestsTotal,
		m.AssistantRequests,
		m.VaultOperations,
	)

	return m
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveFetch counts one live fetch.
func (m *Metrics) ObserveFetch(market string, err error) {
	if m == nil {
		return
	}
	m.LiveFetches.WithLabelValues(market, outcome(err)).Inc()
}

// ObserveRefresh records how long a board refresh took.
func (m *Metrics) ObserveRefresh(market string, d time.Duration) {
	if m == nil {
		return
	}
	m.RefreshDuration.WithLabelValues(market).Observe(d.Seconds())
}

// SetScore publishes a listing's current score.
func (m *Metrics) SetScore(market, symbol string, score int) {
	if m == nil {
		return
	}
	m.ListingScore.WithLabelValues(market, symbol).Set(float64(score))
}

// ObserveBacktest counts one backtest run.
func (m *Metrics) ObserveBacktest(strategy string) {
	if m == nil {
		return
	}
	m.BacktestsTotal.WithLabelValues(strategy).Inc()
}

// ObserveAssistant counts one assistant request with the given outcome.
func (m *Metrics) ObserveAssistant(result string) {
	if m == nil {
		return
	}
	m.AssistantRequests.WithLabelValues(result).Inc()
}

// ObserveVault counts one vault operation.
func (m *Metrics) ObserveVault(op string, err error) {
	if m == nil {
		return
	}
	m.VaultOperations.WithLabelValues(op, outcome(err)).Inc()
}

func outcome(err error) string {
	if err != nil {
		return OutcomeFailed
	}
	return OutcomeOK
}

// Server exposes /metrics and /healthz.
type Server struct {
	srv    *http.Server
	logger zerolog.Logger
}

// NewServer builds the metrics HTTP server for addr.
func NewServer(addr string, m *Metrics) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: log.With().Str("component", "metrics").Logger(),
	}
}

// Handler returns the server's mux.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Start begins serving in the background.
func (s *Server) Start() {
	go func() {
		s.logger.Info().Str("addr", s.srv.Addr).Msg("Metrics server listening")
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error().Err(err).Msg("Metrics server error")
		}
	}()
}

// Stop gracefully shuts down the metrics server.
func (s *Server) Stop(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
