package rate

import (
	"context"
	"fmt"
	"fxconvert/internal/domain"
	"fxconvert/internal/platform/metrics"
	"time"

	"github.com/sirupsen/logrus"
)

// Resolver produces an exchange rate for a pair. Strategies are tried strictly in order and
// sequentially: a later one is only consulted after the previous one skipped.
type Resolver struct {
	strategies []Strategy
	metrics    *metrics.Metrics
}

// Resolve fails only with domain.ErrRateUnavailable, when no strategy knows the pair.
func (r *Resolver) Resolve(ctx context.Context, base, quote domain.CurrencyCode) (domain.Rate, error) {
	startedAt := time.Now()
	pair := domain.RatePair{Base: base, Quote: quote}

	if pair.IsIdentity() {
		r.metrics.ObserveResolution(string(domain.SourceIdentity), startedAt)
		return domain.Rate{Base: base, Quote: quote, Value: 1, Source: domain.SourceIdentity}, nil
	}

	for _, strategy := range r.strategies {
		outcome := strategy.Resolve(ctx, pair)
		if !outcome.Resolved() {
			logrus.WithField("strategy", strategy.Name()).Debugf("'%s' skipped: %v", pair, outcome.Reason)
			continue
		}
		r.metrics.ObserveResolution(string(outcome.Source), startedAt)
		return domain.Rate{Base: base, Quote: quote, Value: outcome.Value, Source: outcome.Source}, nil
	}

	r.metrics.ObserveUnavailable(startedAt)
	return domain.Rate{}, fmt.Errorf("%w for '%s'", domain.ErrRateUnavailable, pair)
}

func NewResolver(m *metrics.Metrics, strategies ...Strategy) *Resolver {
	return &Resolver{strategies: strategies, metrics: m}
}
