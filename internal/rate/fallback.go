package rate

import "fxconvert/internal/domain"

// FallbackTable holds approximate base rates used when no remote provider answers.
// Reverse entries are authored independently and are not exact inverses
// (USD/BRL is 6.15 while BRL/USD is 0.163); keep them as they are.
type FallbackTable map[domain.RatePair]float64

func (t FallbackTable) Lookup(base, quote domain.CurrencyCode) (float64, bool) {
	v, ok := t[domain.RatePair{Base: base, Quote: quote}]
	return v, ok
}

// DefaultFallbackTable returns the offline rates (approximate, January 2025).
// The returned map is shared and must be treated as read-only.
func DefaultFallbackTable() FallbackTable {
	return defaultFallbackTable
}

var defaultFallbackTable = FallbackTable{
	{Base: domain.USD, Quote: domain.BRL}: 6.15,
	{Base: domain.USD, Quote: domain.EUR}: 0.94,
	{Base: domain.USD, Quote: domain.GBP}: 0.81,
	{Base: domain.USD, Quote: domain.JPY}: 157.2,
	{Base: domain.USD, Quote: domain.CAD}: 1.44,
	{Base: domain.USD, Quote: domain.AUD}: 1.58,

	{Base: domain.BRL, Quote: domain.USD}: 0.163,
	{Base: domain.BRL, Quote: domain.EUR}: 0.153,
	{Base: domain.BRL, Quote: domain.GBP}: 0.132,
	{Base: domain.BRL, Quote: domain.JPY}: 25.5,
	{Base: domain.BRL, Quote: domain.CAD}: 0.234,
	{Base: domain.BRL, Quote: domain.AUD}: 0.257,

	{Base: domain.EUR, Quote: domain.USD}: 1.064,
	{Base: domain.EUR, Quote: domain.BRL}: 6.54,
	{Base: domain.EUR, Quote: domain.GBP}: 0.86,
	{Base: domain.EUR, Quote: domain.JPY}: 167.3,
	{Base: domain.EUR, Quote: domain.CAD}: 1.53,
	{Base: domain.EUR, Quote: domain.AUD}: 1.68,

	{Base: domain.GBP, Quote: domain.USD}: 1.235,
	{Base: domain.GBP, Quote: domain.BRL}: 7.59,
	{Base: domain.GBP, Quote: domain.EUR}: 1.163,
	{Base: domain.GBP, Quote: domain.JPY}: 194.2,
	{Base: domain.GBP, Quote: domain.CAD}: 1.778,
	{Base: domain.GBP, Quote: domain.AUD}: 1.95,

	{Base: domain.JPY, Quote: domain.USD}: 0.00636,
	{Base: domain.JPY, Quote: domain.BRL}: 0.0392,
	{Base: domain.JPY, Quote: domain.EUR}: 0.00598,
	{Base: domain.JPY, Quote: domain.GBP}: 0.00515,
	{Base: domain.JPY, Quote: domain.CAD}: 0.00916,
	{Base: domain.JPY, Quote: domain.AUD}: 0.01005,

	{Base: domain.CAD, Quote: domain.USD}: 0.694,
	{Base: domain.CAD, Quote: domain.BRL}: 4.27,
	{Base: domain.CAD, Quote: domain.EUR}: 0.653,
	{Base: domain.CAD, Quote: domain.GBP}: 0.562,
	{Base: domain.CAD, Quote: domain.JPY}: 109.2,
	{Base: domain.CAD, Quote: domain.AUD}: 1.097,

	{Base: domain.AUD, Quote: domain.USD}: 0.633,
	{Base: domain.AUD, Quote: domain.BRL}: 3.89,
	{Base: domain.AUD, Quote: domain.EUR}: 0.595,
	{Base: domain.AUD, Quote: domain.GBP}: 0.513,
	{Base: domain.AUD, Quote: domain.JPY}: 99.5,
	{Base: domain.AUD, Quote: domain.CAD}: 0.912,
}
