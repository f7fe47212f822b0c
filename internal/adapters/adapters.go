package adapters

import (
	"context"
	"fxconvert/internal/domain"
)

// RateClient is a remote exchange-rate provider. Quotes narrow the request when the
// provider supports it; providers that always answer with every quote may ignore them.
type RateClient interface {
	Name() string
	GetExchangeRates(ctx context.Context, base string, quotes ...string) (map[string]float64, error)
}

// RateRefresher re-fetches and caches all quotes for a base currency.
type RateRefresher interface {
	Refresh(ctx context.Context, base string) (int, error)
}

type RateCache interface {
	Get(key string) (map[string]float64, bool)
	Set(key string, rates map[string]float64)
}

// HistoryRepository keeps the most recent conversions, newest first.
type HistoryRepository interface {
	Record(ctx context.Context, entry domain.HistoryEntry) error
	List(ctx context.Context) ([]domain.HistoryEntry, error)
	Clear(ctx context.Context) error
}
