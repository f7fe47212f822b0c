package domain

import (
	"fmt"
	"slices"
	"strings"
)

type CurrencyCode string

const (
	USD CurrencyCode = "USD"
	BRL CurrencyCode = "BRL"
	EUR CurrencyCode = "EUR"
	GBP CurrencyCode = "GBP"
	JPY CurrencyCode = "JPY"
	CAD CurrencyCode = "CAD"
	AUD CurrencyCode = "AUD"
)

var supportedCurrencies = []CurrencyCode{USD, BRL, EUR, GBP, JPY, CAD, AUD}

// SupportedCurrencies returns the currencies covered by the offline table, in display order.
func SupportedCurrencies() []CurrencyCode {
	return slices.Clone(supportedCurrencies)
}

func (c CurrencyCode) IsSupported() bool {
	return slices.Contains(supportedCurrencies, c)
}

func (c CurrencyCode) String() string {
	return string(c)
}

// ParseCurrencyCode normalizes raw input into a three-letter upper-case code.
// It does not check membership in the supported set.
func ParseCurrencyCode(raw string) (CurrencyCode, error) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if len(code) != 3 {
		return "", fmt.Errorf("currency code %q must have 3 letters", raw)
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return "", fmt.Errorf("currency code %q must contain letters only", raw)
		}
	}
	return CurrencyCode(code), nil
}
