// Package money parses and formats monetary amounts.
//
// Amounts travel as decimal-formatted strings at API boundaries and live as
// exact decimals internally; binary floats are never used for currency.
// Rounding to two places happens only when formatting for presentation,
// never during accumulation.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Parse converts a decimal-formatted string into an exact decimal amount.
func Parse(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("amount is empty")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("amount %q is not a decimal number", s)
	}
	return d, nil
}

// ParsePositive parses an amount and requires it to be strictly greater
// than zero.
func ParsePositive(s string) (decimal.Decimal, error) {
	d, err := Parse(s)
	if err != nil {
		return decimal.Zero, err
	}
	if !d.IsPositive() {
		return decimal.Zero, fmt.Errorf("amount must be greater than zero")
	}
	return d, nil
}

// Sum adds amounts without intermediate rounding.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// Format renders an amount with exactly two decimal places for presentation.
func Format(d decimal.Decimal) string {
	return d.StringFixed(2)
}
