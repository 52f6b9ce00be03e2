package twelvedata

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/Alias1177/TradeVault/internal/model"
)

type fakeAPI struct {
	mu       sync.Mutex
	symbols  []string
	handlers map[string]string
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.symbols = append(f.symbols, r.URL.Query().Get("symbol"))
	f.mu.Unlock()

	body, ok := f.handlers[r.URL.Path]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(body))
}

func newTestClient(url string) *Client {
	return NewClient(ClientOptions{
		APIKey:          "test",
		BaseURL:         url,
		RequestTimeout:  2 * time.Second,
		RequestsPerSec:  100,
		MaxRetries:      1,
		MaxRetryTimeout: time.Second,
	})
}

func TestFetchSnapshot(t *testing.T) {
	api := &fakeAPI{handlers: map[string]string{
		"/quote":  `{"symbol":"TCS","close":"3901.456","previous_close":"3850.10","percent_change":"1.33391"}`,
		"/rsi":    `{"values":[{"datetime":"2024-05-02","rsi":"31.4567"},{"datetime":"2024-05-01","rsi":"40"}],"status":"ok"}`,
		"/bbands": `{"values":[{"datetime":"2024-05-02","upper_band":"4000.123","middle_band":"3900","lower_band":"3799.876"}],"status":"ok"}`,
		"/sma":    `{"values":[{"datetime":"2024-05-02","sma":"3888.888"}],"status":"ok"}`,
	}}
	srv := httptest.NewServer(api)
	defer srv.Close()

	q, err := newTestClient(srv.URL).FetchSnapshot(context.Background(), "TCS", "NSE")
	if err != nil {
		t.Fatalf("FetchSnapshot: %v", err)
	}

	if q.LastPrice != 3901.46 || q.PreviousPrice != 3850.1 || q.DayChangePercent != 1.33 {
		t.Errorf("prices = %v/%v/%v", q.LastPrice, q.PreviousPrice, q.DayChangePercent)
	}
	if v, ok := q.RSI.Get(); !ok || v != 31.5 {
		t.Errorf("RSI = %v", q.RSI)
	}
	if q.Bollinger == nil || *q.Bollinger != (model.Bands{Upper: 4000.12, Mid: 3900, Lower: 3799.88}) {
		t.Errorf("bands = %+v", q.Bollinger)
	}
	if v, ok := q.SMA20.Get(); !ok || v != 3888.89 {
		t.Errorf("SMA20 = %v", q.SMA20)
	}

	api.mu.Lock()
	defer api.mu.Unlock()
	if len(api.symbols) != 4 {
		t.Fatalf("requests = %d, want 4", len(api.symbols))
	}
	for _, s := range api.symbols {
		if s != "TCS:NSE" {
			t.Errorf("symbol param = %q, want TCS:NSE", s)
		}
	}
}

func TestFetchSnapshotMissingIndicators(t *testing.T) {
	api := &fakeAPI{handlers: map[string]string{
		"/quote": `{"symbol":"CRWD","close":"180","previous_close":"178"}`,
		"/rsi":   `{"status":"error","code":429,"message":"limit reached"}`,
	}}
	srv := httptest.NewServer(api)
	defer srv.Close()

	q, err := newTestClient(srv.URL).FetchSnapshot(context.Background(), "CRWD", "")
	if err != nil {
		t.Fatalf("FetchSnapshot: %v", err)
	}
	if q.RSI.IsPresent() || q.Bollinger != nil || q.SMA20.IsPresent() {
		t.Errorf("expected absent indicators, got %+v", q)
	}
	// No percent_change field: derived from close and previous close.
	if q.DayChangePercent != 1.12 {
		t.Errorf("day change = %v, want 1.12", q.DayChangePercent)
	}
}

func TestFetchSnapshotQuoteErrors(t *testing.T) {
	tests := []struct {
		name  string
		quote string
	}{
		{"api error", `{"status":"error","code":400,"message":"symbol not found"}`},
		{"missing close", `{"symbol":"X"}`},
		{"malformed", `{not json`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(&fakeAPI{handlers: map[string]string{"/quote": tt.quote}})
			defer srv.Close()

			_, err := newTestClient(srv.URL).FetchSnapshot(context.Background(), "X", "")
			if !errors.Is(err, model.ErrCollaboratorUnavailable) {
				t.Fatalf("err = %v, want ErrCollaboratorUnavailable", err)
			}
		})
	}
}

func TestQualifiedSymbol(t *testing.T) {
	if got := QualifiedSymbol("INFY", "NSE"); got != "INFY:NSE" {
		t.Errorf("got %q", got)
	}
	if got := QualifiedSymbol("CRWD", ""); got != "CRWD" {
		t.Errorf("got %q", got)
	}
}
