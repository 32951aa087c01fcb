// Package core holds the ledger domain types and the pure categorization and
// aggregation queries over them.
//
// This file contains amount parsing and conversion helpers. Amounts are
// decimal values with a two-fraction-digit display convention; cents are used
// only at the SQLite boundary.
package core

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a raw statement amount to a decimal. It accepts both
// dot (12.34) and comma (12,34) decimal separators and an optional leading
// sign. Bank exports never use thousands separators in the supported
// layouts, so any second separator is an error.
//
// Examples:
//
//	ParseAmount("-40.00") -> -40.00, nil
//	ParseAmount("12,34")  -> 12.34, nil
//	ParseAmount("n/a")    -> error
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return d, nil
}

// Cents returns the amount as integer cents, rounding half away from zero on
// sub-cent input. Used by the SQLite store.
func Cents(d decimal.Decimal) int64 {
	return d.Round(2).Shift(2).IntPart()
}

// FromCents is the inverse of Cents.
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// FormatAmount renders an amount with exactly two fraction digits, the
// display convention for the whole dashboard.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
