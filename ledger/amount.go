package ledger

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts user input into a decimal amount.
// Surrounding whitespace is ignored and a decimal comma is accepted.
// The result must be strictly positive.
func ParseAmount(s string) (decimal.Decimal, error) {
	input := strings.TrimSpace(s)
	if input == "" {
		return decimal.Zero, &InvalidAmountError{Input: s, Reason: "empty input"}
	}
	if strings.Count(input, ",") == 1 && !strings.Contains(input, ".") {
		input = strings.Replace(input, ",", ".", 1)
	}

	d, err := decimal.NewFromString(input)
	if err != nil {
		return decimal.Zero, &InvalidAmountError{Input: s, Reason: "not a number", Err: err}
	}
	if err := ValidateAmount(d); err != nil {
		return decimal.Zero, err
	}

	return d, nil
}

// MustParseAmount is like ParseAmount but panics on error.
// Use only in tests or with literal values.
func MustParseAmount(s string) decimal.Decimal {
	d, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return d
}

// ValidateAmount checks that an amount is strictly positive.
func ValidateAmount(d decimal.Decimal) error {
	if !d.IsPositive() {
		return &InvalidAmountError{Input: d.String(), Reason: "amount must be greater than zero"}
	}
	return nil
}

// FormatAmount renders d with two decimals behind the currency prefix.
// Negative values put the sign before the prefix: -$12.50.
func FormatAmount(prefix string, d decimal.Decimal) string {
	if d.IsNegative() {
		return "-" + prefix + d.Neg().StringFixed(2)
	}
	return prefix + d.StringFixed(2)
}
