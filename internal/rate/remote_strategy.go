package rate

import (
	"context"
	"errors"
	"fmt"
	"fxconvert/internal/adapters"
	"fxconvert/internal/domain"
	"fxconvert/internal/platform/metrics"
	"math"
	"time"

	"github.com/sirupsen/logrus"
)

const defaultRequestTimeout = 5 * time.Second

var (
	ErrQuoteMissing     = errors.New("quote currency missing in provider response")
	ErrInvalidRateValue = errors.New("provider returned invalid rate value")
)

// RemoteStrategy asks a remote provider for the rate. Every failure is soft: it is logged,
// counted and turned into Skip so the next strategy gets a chance.
type RemoteStrategy struct {
	source         domain.RateSource
	client         adapters.RateClient
	requestTimeout time.Duration
	metrics        *metrics.Metrics
}

func (s *RemoteStrategy) Name() string {
	return string(s.source) + ":" + s.client.Name()
}

func (s *RemoteStrategy) Resolve(ctx context.Context, pair domain.RatePair) Outcome {
	value, err := s.fetch(ctx, pair)
	if err != nil {
		logrus.Warnf("Provider '%s' couldn't resolve '%s', falling through: %s", s.client.Name(), pair, err)
		s.metrics.ProviderFailed(s.client.Name())
		return Skip(err)
	}
	logrus.Debugf("Provider '%s' resolved '%s' = %f", s.client.Name(), pair, value)
	return Found(value, s.source)
}

func (s *RemoteStrategy) fetch(ctx context.Context, pair domain.RatePair) (float64, error) {
	// a hanging provider must not block the request, so every call gets its own deadline
	reqCtx, cancel := context.WithTimeout(ctx, s.requestTimeout)
	defer cancel()

	rates, err := s.client.GetExchangeRates(reqCtx, pair.Base.String(), pair.Quote.String())
	if err != nil {
		return 0, err
	}

	v, ok := rates[pair.Quote.String()]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrQuoteMissing, pair.Quote)
	}
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidRateValue, v)
	}
	return v, nil
}

func NewRemoteStrategy(source domain.RateSource, client adapters.RateClient, requestTimeout time.Duration, m *metrics.Metrics) *RemoteStrategy {
	if requestTimeout <= 0 {
		requestTimeout = defaultRequestTimeout
	}
	return &RemoteStrategy{source: source, client: client, requestTimeout: requestTimeout, metrics: m}
}
