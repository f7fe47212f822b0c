package conversion

import (
	"fmt"
	"fxconvert/internal/domain"
	"math"
	"strconv"
	"strings"
	"unicode"
)

const DefaultMaxAmount = 999999999

// SanitizeAmount drops everything except digits, dots and commas from free-form input.
// The first comma becomes the decimal point and any extra dots are folded into the fraction:
// "12,50" reads as 12.5 and "1.2.3" as 1.23. There is no thousands separator.
func SanitizeAmount(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' {
			b.WriteRune(r)
		}
	}
	cleaned := strings.Replace(b.String(), ",", ".", 1)

	parts := strings.Split(cleaned, ".")
	if len(parts) > 2 {
		cleaned = parts[0] + "." + strings.Join(parts[1:], "")
	}
	return cleaned
}

// ParseAmount parses user input such as "100", "12,50", "R$ 12,50" or "100 USD".
// Only surrounding whitespace, currency symbols and code letters are dropped; a leading minus
// is kept so negative input reaches ValidateAmount. Exponents, hex and any other character
// inside the number are refused. It does not range-check the result.
func ParseAmount(raw string) (float64, error) {
	trimmed := strings.TrimFunc(raw, isAmountDecoration)

	negative := strings.HasPrefix(trimmed, "-")
	digits := strings.TrimPrefix(trimmed, "-")
	if digits == "" || strings.IndexFunc(digits, isNotAmountRune) >= 0 {
		return 0, fmt.Errorf("%w: %q is not a number", domain.ErrInvalidAmount, raw)
	}

	amount, err := strconv.ParseFloat(SanitizeAmount(digits), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", domain.ErrInvalidAmount, raw)
	}
	if negative {
		amount = -amount
	}
	return amount, nil
}

func isAmountDecoration(r rune) bool {
	return unicode.IsSpace(r) || unicode.IsLetter(r) || unicode.Is(unicode.Sc, r)
}

func isNotAmountRune(r rune) bool {
	return (r < '0' || r > '9') && r != '.' && r != ','
}

func ValidateAmount(amount, maxAmount float64) error {
	switch {
	case math.IsNaN(amount) || math.IsInf(amount, 0):
		return fmt.Errorf("%w: must be a finite number", domain.ErrInvalidAmount)
	case amount <= 0:
		return fmt.Errorf("%w: must be greater than zero", domain.ErrInvalidAmount)
	case amount > maxAmount:
		return fmt.Errorf("%w: must not exceed %.0f", domain.ErrInvalidAmount, maxAmount)
	}
	return nil
}
