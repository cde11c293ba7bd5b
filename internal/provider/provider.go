package provider

import (
	"context"

	"tailwatch/pkg/model"
)

// Provider defines the interface for daily price data sources
type Provider interface {
	// Name returns the provider name
	Name() string

	// GetDailyHistory fetches the daily closing-price series for a symbol.
	// period is a provider-style range such as "1y", "5y" or "max".
	GetDailyHistory(ctx context.Context, symbol string, period string) (model.PriceSeries, error)

	// IsAvailable checks if the provider is available (has valid API key)
	IsAvailable() bool

	// RateLimit returns the rate limit per minute
	RateLimit() int
}

// ProviderError represents a provider-specific error
type ProviderError struct {
	Provider  string
	Err       error
	Retryable bool
}

func (e *ProviderError) Error() string {
	return e.Provider + ": " + e.Err.Error()
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// FallbackProvider tries multiple providers in order
type FallbackProvider struct {
	providers []Provider
}

// NewFallbackProvider creates a new fallback provider
func NewFallbackProvider(providers ...Provider) *FallbackProvider {
	// Filter to only available providers
	available := make([]Provider, 0, len(providers))
	for _, p := range providers {
		if p.IsAvailable() {
			available = append(available, p)
		}
	}
	return &FallbackProvider{providers: available}
}

// Name returns the combined provider name
func (f *FallbackProvider) Name() string {
	return "fallback"
}

// GetDailyHistory tries each provider in order until one succeeds
func (f *FallbackProvider) GetDailyHistory(ctx context.Context, symbol string, period string) (model.PriceSeries, error) {
	var lastErr error
	for _, p := range f.providers {
		series, err := p.GetDailyHistory(ctx, symbol, period)
		if err == nil {
			return series, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

// IsAvailable returns true if any provider is available
func (f *FallbackProvider) IsAvailable() bool {
	return len(f.providers) > 0
}

// RateLimit returns the highest rate limit among providers
func (f *FallbackProvider) RateLimit() int {
	maxRate := 0
	for _, p := range f.providers {
		if p.RateLimit() > maxRate {
			maxRate = p.RateLimit()
		}
	}
	return maxRate
}

// Providers returns the list of underlying providers
func (f *FallbackProvider) Providers() []Provider {
	return f.providers
}
