package cache

import (
	"context"
	"fxconvert/internal/adapters"
	"strings"
)

// CachedRateClient memoizes successful answers of the wrapped client. Failures are never cached,
// so a broken provider is retried on the next call.
type CachedRateClient struct {
	next  adapters.RateClient
	cache adapters.RateCache
}

func (c *CachedRateClient) Name() string {
	return c.next.Name()
}

func (c *CachedRateClient) GetExchangeRates(ctx context.Context, base string, quotes ...string) (map[string]float64, error) {
	// a full table for base (stored by Refresh) answers any narrower request
	if rates, ok := c.cache.Get(toKey(c.next.Name(), base, nil)); ok && containsAll(rates, quotes) {
		return rates, nil
	}
	key := toKey(c.next.Name(), base, quotes)
	if rates, ok := c.cache.Get(key); ok {
		return rates, nil
	}

	rates, err := c.next.GetExchangeRates(ctx, base, quotes...)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, rates)
	return rates, nil
}

// Refresh bypasses the cache, fetches every quote for base and stores the answer.
func (c *CachedRateClient) Refresh(ctx context.Context, base string) (int, error) {
	rates, err := c.next.GetExchangeRates(ctx, base)
	if err != nil {
		return 0, err
	}
	c.cache.Set(toKey(c.next.Name(), base, nil), rates)
	return len(rates), nil
}

func NewCachedRateClient(next adapters.RateClient, cache adapters.RateCache) *CachedRateClient {
	return &CachedRateClient{next: next, cache: cache}
}

func toKey(provider string, base string, quotes []string) string {
	return provider + ":" + base + ":" + strings.Join(quotes, ",")
}

func containsAll(rates map[string]float64, quotes []string) bool {
	for _, q := range quotes {
		if _, ok := rates[q]; !ok {
			return false
		}
	}
	return true
}
