package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"tailwatch/internal/ratelimit"
	"tailwatch/pkg/model"
)

const alphaVantageBaseURL = "https://www.alphavantage.co/query"

// AlphaVantageProvider implements the Provider interface for Alpha Vantage API
type AlphaVantageProvider struct {
	apiKey    string
	client    *http.Client
	limiter   *ratelimit.Limiter
	rateLimit int
}

// NewAlphaVantageProvider creates a new Alpha Vantage provider
func NewAlphaVantageProvider(apiKey string, rateLimitPerMin int) *AlphaVantageProvider {
	return &AlphaVantageProvider{
		apiKey:    apiKey,
		client:    &http.Client{Timeout: 30 * time.Second},
		limiter:   ratelimit.NewLimiter("alphavantage", rateLimitPerMin),
		rateLimit: rateLimitPerMin,
	}
}

// Name returns the provider name
func (p *AlphaVantageProvider) Name() string {
	return "alphavantage"
}

// IsAvailable checks if the provider has an API key
func (p *AlphaVantageProvider) IsAvailable() bool {
	return p.apiKey != ""
}

// RateLimit returns the rate limit per minute
func (p *AlphaVantageProvider) RateLimit() int {
	return p.rateLimit
}

// alphaVantageResponse represents the API response structure
type alphaVantageResponse struct {
	MetaData   map[string]string            `json:"Meta Data"`
	TimeSeries map[string]map[string]string `json:"Time Series (Daily)"`
	Note       string                       `json:"Note"` // Rate limit message
	Error      string                       `json:"Error Message"`
}

// GetDailyHistory fetches the full daily closing series for a symbol.
// Alpha Vantage has no range parameter; outputsize=full returns the whole
// history and the period only selects compact output for short ranges.
func (p *AlphaVantageProvider) GetDailyHistory(ctx context.Context, symbol string, period string) (model.PriceSeries, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	outputSize := "full"
	if period == "1mo" || period == "3mo" {
		outputSize = "compact" // last 100 points
	}

	reqURL := fmt.Sprintf("%s?function=TIME_SERIES_DAILY&symbol=%s&outputsize=%s&apikey=%s",
		alphaVantageBaseURL, url.QueryEscape(symbol), outputSize, p.apiKey)

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, &ProviderError{Provider: p.Name(), Err: err, Retryable: true}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		p.limiter.SignalRateLimited()
		return nil, &ProviderError{Provider: p.Name(), Err: fmt.Errorf("rate limited"), Retryable: true}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &ProviderError{Provider: p.Name(), Err: fmt.Errorf("status %d", resp.StatusCode), Retryable: false}
	}

	p.limiter.ResetBackoff()

	var data alphaVantageResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if data.Note != "" {
		p.limiter.SignalRateLimited()
		return nil, &ProviderError{Provider: p.Name(), Err: fmt.Errorf("rate limited: %s", data.Note), Retryable: true}
	}

	if data.Error != "" {
		return nil, &ProviderError{Provider: p.Name(), Err: fmt.Errorf("%s", data.Error), Retryable: false}
	}

	if len(data.TimeSeries) == 0 {
		return nil, &ProviderError{Provider: p.Name(), Err: fmt.Errorf("no data available"), Retryable: false}
	}

	series := make(model.PriceSeries, 0, len(data.TimeSeries))
	for dateStr, values := range data.TimeSeries {
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			continue
		}
		closeStr, ok := values["4. close"]
		if !ok {
			continue
		}
		closePx, err := strconv.ParseFloat(closeStr, 64)
		if err != nil {
			continue
		}
		series = append(series, model.PricePoint{Date: date, Close: closePx})
	}

	sort.Slice(series, func(i, j int) bool {
		return series[i].Date.Before(series[j].Date)
	})

	if len(series) == 0 {
		return nil, &ProviderError{Provider: p.Name(), Err: fmt.Errorf("no usable closes for %s", symbol), Retryable: false}
	}

	return series, nil
}
