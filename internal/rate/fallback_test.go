package rate

import (
	"testing"

	"fxconvert/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestDefaultFallbackTable_CoversEveryOrderedPair(t *testing.T) {
	table := DefaultFallbackTable()
	codes := domain.SupportedCurrencies()

	require.Len(t, table, len(codes)*(len(codes)-1))
	for _, base := range codes {
		for _, quote := range codes {
			pair := domain.RatePair{Base: base, Quote: quote}
			_, ok := table[pair]
			if pair.IsIdentity() {
				require.False(t, ok, "identity pair %s must not be in the table", pair)
				continue
			}
			require.True(t, ok, "missing %s", pair)

			_, ok = table[pair.Reversed()]
			require.True(t, ok, "missing reverse of %s", pair)
		}
	}
}

func TestDefaultFallbackTable_ReferenceValues(t *testing.T) {
	table := DefaultFallbackTable()

	cases := []struct {
		base, quote domain.CurrencyCode
		want        float64
	}{
		{domain.USD, domain.BRL, 6.15},
		{domain.BRL, domain.USD, 0.163},
		{domain.EUR, domain.JPY, 167.3},
		{domain.GBP, domain.AUD, 1.95},
		{domain.JPY, domain.USD, 0.00636},
		{domain.CAD, domain.JPY, 109.2},
		{domain.AUD, domain.CAD, 0.912},
	}
	for _, tc := range cases {
		got, ok := table.Lookup(tc.base, tc.quote)
		require.True(t, ok)
		require.Equal(t, tc.want, got, "%s/%s", tc.base, tc.quote)
	}
}

func TestDefaultFallbackTable_AsymmetryPreserved(t *testing.T) {
	table := DefaultFallbackTable()

	usdBrl, _ := table.Lookup(domain.USD, domain.BRL)
	brlUsd, _ := table.Lookup(domain.BRL, domain.USD)
	require.NotEqual(t, usdBrl, 1/brlUsd)
}

func TestFallbackTable_LookupUnknown(t *testing.T) {
	_, ok := DefaultFallbackTable().Lookup("CHF", domain.USD)
	require.False(t, ok)
}
