package cache

import (
	"fmt"
	"maps"
	"time"

	"github.com/dgraph-io/ristretto"
)

// RistrettoRateCache keeps remote provider answers for a fixed TTL.
type RistrettoRateCache struct {
	cache *ristretto.Cache
	ttl   time.Duration
}

func NewRateCache(maxItems int64, ttl time.Duration) (*RistrettoRateCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10 * maxItems,
		MaxCost:     maxItems,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create rate cache failed: %w", err)
	}
	return &RistrettoRateCache{cache: c, ttl: ttl}, nil
}

func (c *RistrettoRateCache) Get(key string) (map[string]float64, bool) {
	if v, ok := c.cache.Get(key); ok {
		rates, ok := v.(map[string]float64)
		return maps.Clone(rates), ok
	}
	return nil, false
}

func (c *RistrettoRateCache) Set(key string, rates map[string]float64) {
	c.cache.SetWithTTL(key, maps.Clone(rates), 1, c.ttl)
}

func (c *RistrettoRateCache) Close() { c.cache.Close() }
