package domain

import (
	"time"

	"github.com/google/uuid"
)

type Conversion struct {
	SourceAmount    float64
	SourceCurrency  CurrencyCode
	TargetCurrency  CurrencyCode
	ConvertedAmount float64
	Rate            float64
	RateSource      RateSource
}

// HistoryEntry is an immutable record of a successful conversion.
type HistoryEntry struct {
	ID         uuid.UUID
	Conversion Conversion
	CreatedAt  time.Time
}
