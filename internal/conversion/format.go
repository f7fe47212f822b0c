package conversion

import (
	"fmt"
	"fxconvert/internal/domain"

	"github.com/shopspring/decimal"
)

var currencySymbols = map[domain.CurrencyCode]string{
	domain.USD: "$",
	domain.BRL: "R$",
	domain.EUR: "€",
	domain.GBP: "£",
	domain.JPY: "¥",
	domain.CAD: "C$",
	domain.AUD: "A$",
}

var currencyNames = map[domain.CurrencyCode]string{
	domain.USD: "US Dollar",
	domain.BRL: "Brazilian Real",
	domain.EUR: "Euro",
	domain.GBP: "British Pound",
	domain.JPY: "Japanese Yen",
	domain.CAD: "Canadian Dollar",
	domain.AUD: "Australian Dollar",
}

// Symbol returns an empty string for codes without a known symbol.
func Symbol(code domain.CurrencyCode) string {
	return currencySymbols[code]
}

// Name falls back to the code itself.
func Name(code domain.CurrencyCode) string {
	if name, ok := currencyNames[code]; ok {
		return name
	}
	return code.String()
}

func FractionDigits(code domain.CurrencyCode) int32 {
	if code == domain.JPY {
		return 0
	}
	return 2
}

// FormatAmount renders an amount for display, e.g. "R$620.00" or "¥8365".
func FormatAmount(amount float64, code domain.CurrencyCode) string {
	return Symbol(code) + decimal.NewFromFloat(amount).StringFixed(FractionDigits(code))
}

// DescribeRate renders the rate line shown next to a conversion.
func DescribeRate(rate domain.Rate) string {
	if rate.Pair().IsIdentity() {
		return "same currency selected"
	}
	return fmt.Sprintf("1 %s = %s %s", rate.Base, decimal.NewFromFloat(rate.Value).StringFixed(4), rate.Quote)
}
