package twelvedata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/Alias1177/TradeVault/internal/calculate"
	"github.com/Alias1177/TradeVault/internal/model"
	httpClient "github.com/Alias1177/TradeVault/internal/platform/http"
)

// DefaultBaseURL is the public Twelve Data endpoint.
const DefaultBaseURL = "https://api.twelvedata.com"

// Indicator request parameters
const (
	interval   = "1day"
	outputSize = "5"
	rsiPeriod  = "14"
	bandPeriod = "20"
	smaPeriod  = "20"
)

// Client is the TwelveData API client
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *httpClient.Client
	logger     zerolog.Logger
}

// ClientOptions holds options for creating a new TwelveData client
type ClientOptions struct {
	APIKey          string
	BaseURL         string
	RequestTimeout  time.Duration
	RequestsPerSec  int
	MaxRetries      int
	MaxRetryTimeout time.Duration
}

// NewClient creates a new TwelveData API client
func NewClient(options ClientOptions) *Client {
	httpOpts := httpClient.ClientOptions{
		Timeout:         options.RequestTimeout,
		RequestsPerSec:  options.RequestsPerSec,
		MaxRetries:      options.MaxRetries,
		MaxRetryTimeout: options.MaxRetryTimeout,
	}

	// Apply defaults if not set
	if httpOpts.Timeout == 0 {
		httpOpts.Timeout = 30 * time.Second
	}
	if httpOpts.RequestsPerSec == 0 {
		httpOpts.RequestsPerSec = 5
	}
	baseURL := options.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		apiKey:     options.APIKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient.NewClient(httpOpts),
		logger:     log.With().Str("component", "twelvedata_client").Logger(),
	}
}

// QualifiedSymbol appends the exchange suffix Twelve Data expects for NSE.
func QualifiedSymbol(symbol, exchange string) string {
	if strings.EqualFold(exchange, "NSE") {
		return symbol + ":NSE"
	}
	return symbol
}

// FetchSnapshot requests the quote and the RSI, Bollinger and SMA
// indicators concurrently. Only a failed quote fails the call; a failed
// indicator is left absent.
func (c *Client) FetchSnapshot(ctx context.Context, symbol, exchange string) (*model.LiveQuote, error) {
	sym := QualifiedSymbol(symbol, exchange)

	var (
		quote             model.TwelveQuote
		rsiR, bandR, smaR model.TwelveIndicatorResponse
	)

	var g errgroup.Group
	g.Go(func() error {
		return c.get(ctx, "quote", url.Values{"symbol": {sym}}, &quote)
	})
	g.Go(func() error {
		c.indicator(ctx, "rsi", sym, rsiPeriod, &rsiR)
		return nil
	})
	g.Go(func() error {
		c.indicator(ctx, "bbands", sym, bandPeriod, &bandR)
		return nil
	})
	g.Go(func() error {
		c.indicator(ctx, "sma", sym, smaPeriod, &smaR)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: quote %s: %v", model.ErrCollaboratorUnavailable, sym, err)
	}

	last, ok := parseRounded(quote.Close, 2)
	if !ok {
		return nil, fmt.Errorf("%w: quote %s has no close price", model.ErrCollaboratorUnavailable, sym)
	}
	prev, _ := parseRounded(quote.PreviousClose, 2)
	change, ok := parseRounded(quote.PercentChange, 2)
	if !ok && prev > 0 {
		change = calculate.Round((last-prev)/prev*100, 2)
	}

	live := &model.LiveQuote{
		Symbol:           symbol,
		LastPrice:        last,
		PreviousPrice:    prev,
		DayChangePercent: change,
		RSI:              model.Absent(),
		SMA20:            model.Absent(),
	}

	if len(rsiR.Values) > 0 {
		if v, ok := parseRounded(rsiR.Values[0].RSI, 1); ok {
			live.RSI = model.Present(v)
		}
	}
	if len(bandR.Values) > 0 {
		newest := bandR.Values[0]
		upper, okU := parseRounded(newest.UpperBand, 2)
		mid, okM := parseRounded(newest.MiddleBand, 2)
		lower, okL := parseRounded(newest.LowerBand, 2)
		if okU && okM && okL {
			live.Bollinger = &model.Bands{Upper: upper, Mid: mid, Lower: lower}
		}
	}
	if len(smaR.Values) > 0 {
		if v, ok := parseRounded(smaR.Values[0].SMA, 2); ok {
			live.SMA20 = model.Present(v)
		}
	}

	c.logger.Debug().
		Str("symbol", sym).
		Float64("last", live.LastPrice).
		Bool("rsi", live.RSI.IsPresent()).
		Bool("bbands", live.Bollinger != nil).
		Msg("Fetched snapshot")

	return live, nil
}

func (c *Client) indicator(ctx context.Context, endpoint, symbol, period string, out *model.TwelveIndicatorResponse) {
	params := url.Values{
		"symbol":      {symbol},
		"interval":    {interval},
		"time_period": {period},
		"outputsize":  {outputSize},
	}
	if err := c.get(ctx, endpoint, params, out); err != nil {
		c.logger.Warn().Err(err).Str("symbol", symbol).Str("indicator", endpoint).Msg("Indicator unavailable")
		*out = model.TwelveIndicatorResponse{}
	}
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	params.Set("apikey", c.apiKey)
	endpointURL := fmt.Sprintf("%s/%s?%s", c.baseURL, endpoint, params.Encode())

	// Create a new request with context
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpointURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.DoRequest(ctx, req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	var status struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &status); err != nil {
		return fmt.Errorf("parsing JSON: %w", err)
	}
	if status.Status == "error" {
		return fmt.Errorf("Twelve Data API error: %s", status.Message)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parsing JSON: %w", err)
	}
	return nil
}

func parseRounded(s string, decimals int) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return calculate.Round(v, decimals), true
}
