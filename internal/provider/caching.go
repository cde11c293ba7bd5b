package provider

import (
	"context"
	"fmt"
	"log"

	"tailwatch/internal/cache"
	"tailwatch/pkg/model"
)

// CachingProvider wraps a Provider with a write-through price cache keyed by
// (symbol, period). Cached entries never expire; callers wanting fresh data
// must delete the entry first via the underlying store.
type CachingProvider struct {
	inner Provider
	store cache.Store
}

// NewCachingProvider creates a caching wrapper around inner.
func NewCachingProvider(inner Provider, store cache.Store) *CachingProvider {
	return &CachingProvider{inner: inner, store: store}
}

func (p *CachingProvider) Name() string     { return p.inner.Name() }
func (p *CachingProvider) IsAvailable() bool { return p.inner.IsAvailable() }
func (p *CachingProvider) RateLimit() int    { return p.inner.RateLimit() }

// CacheKey returns the store key for a (symbol, period) pair.
func CacheKey(symbol, period string) string {
	return fmt.Sprintf("%s-%s.csv", symbol, period)
}

// GetDailyHistory serves the cached series if present, otherwise fetches
// from the inner provider and writes the result through to the store.
func (p *CachingProvider) GetDailyHistory(ctx context.Context, symbol string, period string) (model.PriceSeries, error) {
	key := CacheKey(symbol, period)

	data, ok, err := p.store.Get(key)
	if err != nil {
		return nil, err
	}
	if ok {
		series, err := cache.DecodeSeries(data)
		if err == nil {
			return series, nil
		}
		// Corrupt entry: fall through to a fresh fetch
		log.Printf("discarding unreadable cache entry %s: %v", key, err)
	}

	series, err := p.inner.GetDailyHistory(ctx, symbol, period)
	if err != nil {
		return nil, err
	}

	encoded, err := cache.EncodeSeries(series)
	if err != nil {
		return nil, fmt.Errorf("encoding series for cache: %w", err)
	}
	if err := p.store.Put(key, encoded); err != nil {
		return nil, err
	}

	return series, nil
}
