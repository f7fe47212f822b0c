package domain

import "errors"

var (
	ErrRateUnavailable = errors.New("exchange rate unavailable")
	ErrInvalidAmount   = errors.New("invalid amount")
)
