package rate

import (
	"context"

	"fxconvert/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- Testify mocks ---

type MockRateClient struct {
	mock.Mock
	name string
}

func (m *MockRateClient) Name() string {
	if m.name == "" {
		return "mock"
	}
	return m.name
}

func (m *MockRateClient) GetExchangeRates(ctx context.Context, base string, quotes ...string) (map[string]float64, error) {
	args := m.Called(ctx, base, quotes)
	rates, _ := args.Get(0).(map[string]float64)
	return rates, args.Error(1)
}

type MockStrategy struct {
	mock.Mock
	name string
}

func (m *MockStrategy) Name() string { return m.name }

func (m *MockStrategy) Resolve(ctx context.Context, pair domain.RatePair) Outcome {
	args := m.Called(ctx, pair)
	outcome, _ := args.Get(0).(Outcome)
	return outcome
}

type MockRateRefresher struct{ mock.Mock }

func (m *MockRateRefresher) Refresh(ctx context.Context, base string) (int, error) {
	args := m.Called(ctx, base)
	return args.Int(0), args.Error(1)
}
