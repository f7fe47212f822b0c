package rate

import (
	"context"
	"fxconvert/internal/domain"
)

// Strategy is one step of the rate resolution chain.
type Strategy interface {
	Name() string
	Resolve(ctx context.Context, pair domain.RatePair) Outcome
}

// Outcome is either a resolved rate or a signal to try the next strategy.
// Reason explains a skip and is only used for diagnostics.
type Outcome struct {
	Value  float64
	Source domain.RateSource
	Reason error

	resolved bool
}

func Found(value float64, source domain.RateSource) Outcome {
	return Outcome{Value: value, Source: source, resolved: true}
}

func Skip(reason error) Outcome {
	return Outcome{Reason: reason}
}

func (o Outcome) Resolved() bool {
	return o.resolved
}
