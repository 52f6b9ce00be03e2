package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveFetch("us", nil)
	m.ObserveRefresh("us", time.Second)
	m.SetScore("us", "CRWD", 10)
	m.ObserveBacktest("rsi")
	m.ObserveAssistant(OutcomeOK)
	m.ObserveVault("save", nil)
}

func TestCounters(t *testing.T) {
	m := NewMetrics()
	m.ObserveFetch("us", nil)
	m.ObserveFetch("us", errors.New("boom"))
	m.ObserveFetch("us", errors.New("boom"))
	m.SetScore("in", "TCS", 45)

	if got := testutil.ToFloat64(m.LiveFetches.WithLabelValues("us", OutcomeFailed)); got != 2 {
		t.Errorf("failed fetches = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.LiveFetches.WithLabelValues("us", OutcomeOK)); got != 1 {
		t.Errorf("ok fetches = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.ListingScore.WithLabelValues("in", "TCS")); got != 45 {
		t.Errorf("score = %v, want 45", got)
	}
}

func TestServerHandler(t *testing.T) {
	m := NewMetrics()
	m.ObserveBacktest("sma")
	srv := NewServer(":0", m)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `tradevault_backtests_total{strategy="sma"} 1`) {
		t.Errorf("metrics output missing backtest counter:\n%s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Errorf("healthz = %d %q", rec.Code, rec.Body.String())
	}
}
