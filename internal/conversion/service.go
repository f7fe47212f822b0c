package conversion

import (
	"context"
	"errors"
	"fmt"
	"fxconvert/internal/adapters"
	"fxconvert/internal/domain"
	"fxconvert/internal/platform/metrics"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	statusSuccess         = "success"
	statusInvalidInput    = "invalid_input"
	statusRateUnavailable = "rate_unavailable"
	statusError           = "error"
)

type RateResolver interface {
	Resolve(ctx context.Context, base, quote domain.CurrencyCode) (domain.Rate, error)
}

// Service turns a user request into a conversion and keeps the recent ones.
type Service struct {
	resolver  RateResolver
	history   adapters.HistoryRepository
	maxAmount float64
	metrics   *metrics.Metrics
	now       func() time.Time
}

// Convert validates the amount before any rate lookup. Only successful conversions are recorded.
func (s *Service) Convert(ctx context.Context, amount float64, from, to domain.CurrencyCode) (domain.Conversion, error) {
	if err := ValidateAmount(amount, s.maxAmount); err != nil {
		s.metrics.ConversionDone(statusInvalidInput)
		return domain.Conversion{}, err
	}

	rate, err := s.resolver.Resolve(ctx, from, to)
	if err != nil {
		if errors.Is(err, domain.ErrRateUnavailable) {
			s.metrics.ConversionDone(statusRateUnavailable)
		} else {
			s.metrics.ConversionDone(statusError)
		}
		return domain.Conversion{}, fmt.Errorf("failed to convert %s to %s: %w", from, to, err)
	}

	conv := domain.Conversion{
		SourceAmount:    amount,
		SourceCurrency:  from,
		TargetCurrency:  to,
		ConvertedAmount: amount * rate.Value,
		Rate:            rate.Value,
		RateSource:      rate.Source,
	}

	entry := domain.HistoryEntry{ID: uuid.New(), Conversion: conv, CreatedAt: s.now().UTC()}
	if err = s.history.Record(ctx, entry); err != nil {
		// conversion already succeeded, losing the history line is acceptable
		logrus.WithError(err).WithFields(logrus.Fields{"from": from, "to": to}).Warn("failed to record conversion history")
	}

	s.metrics.ConversionDone(statusSuccess)
	return conv, nil
}

func (s *Service) Rate(ctx context.Context, from, to domain.CurrencyCode) (domain.Rate, error) {
	return s.resolver.Resolve(ctx, from, to)
}

func (s *Service) History(ctx context.Context) ([]domain.HistoryEntry, error) {
	return s.history.List(ctx)
}

func (s *Service) ClearHistory(ctx context.Context) error {
	return s.history.Clear(ctx)
}

func NewService(resolver RateResolver, history adapters.HistoryRepository, maxAmount float64, m *metrics.Metrics) *Service {
	if maxAmount <= 0 {
		maxAmount = DefaultMaxAmount
	}
	return &Service{resolver: resolver, history: history, maxAmount: maxAmount, metrics: m, now: time.Now}
}
