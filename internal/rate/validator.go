package rate

import (
	"errors"
	"fxconvert/internal/domain"
	"slices"
)

var (
	ErrBaseRequired     = errors.New("base currency is required")
	ErrQuoteRequired    = errors.New("quote currency is required")
	ErrBaseUnsupported  = errors.New("base currency not supported")
	ErrQuoteUnsupported = errors.New("quote currency not supported")
)

// CurrencyValidator checks request codes against the configured currencies.
// Identical base and quote are allowed: they resolve to the identity rate.
type CurrencyValidator struct {
	supportedCodesSet map[domain.CurrencyCode]struct{} // read only copy
	supportedCodesLst []domain.CurrencyCode            // read only copy, display order
}

func (v *CurrencyValidator) ValidateCodes(base, quote string) error {
	if base == "" {
		return ErrBaseRequired
	}
	if quote == "" {
		return ErrQuoteRequired
	}
	if _, ok := v.supportedCodesSet[domain.CurrencyCode(base)]; !ok {
		return ErrBaseUnsupported
	}
	if _, ok := v.supportedCodesSet[domain.CurrencyCode(quote)]; !ok {
		return ErrQuoteUnsupported
	}
	return nil
}

func (v *CurrencyValidator) SupportedCodes() []domain.CurrencyCode {
	return slices.Clone(v.supportedCodesLst)
}

func NewValidator(supportedCurrencies []domain.CurrencyCode) *CurrencyValidator {
	codesLst := make([]domain.CurrencyCode, 0, len(supportedCurrencies))
	codesSet := make(map[domain.CurrencyCode]struct{}, len(supportedCurrencies))
	for _, code := range supportedCurrencies {
		if _, ok := codesSet[code]; ok {
			continue
		}
		codesSet[code] = struct{}{}
		codesLst = append(codesLst, code)
	}

	return &CurrencyValidator{
		supportedCodesSet: codesSet,
		supportedCodesLst: codesLst,
	}
}
