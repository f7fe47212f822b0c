package rate

import (
	"context"
	"errors"
	"fxconvert/internal/domain"

	"github.com/sirupsen/logrus"
)

var ErrPairNotInTable = errors.New("pair not present in offline table")

// OfflineStrategy answers from the static table with jitter applied.
type OfflineStrategy struct {
	table  FallbackTable
	jitter Jitter
}

func (s *OfflineStrategy) Name() string {
	return string(domain.SourceOffline)
}

func (s *OfflineStrategy) Resolve(_ context.Context, pair domain.RatePair) Outcome {
	baseRate, ok := s.table.Lookup(pair.Base, pair.Quote)
	if !ok {
		return Skip(ErrPairNotInTable)
	}
	value := s.jitter.Apply(baseRate)
	logrus.Infof("Using offline rate: 1 %s = %.6f %s", pair.Base, value, pair.Quote)
	return Found(value, domain.SourceOffline)
}

func NewOfflineStrategy(table FallbackTable, jitter Jitter) *OfflineStrategy {
	return &OfflineStrategy{table: table, jitter: jitter}
}
