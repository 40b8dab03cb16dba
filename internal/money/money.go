// Package money provides the fixed-point amount type used for every
// price, quantity, and total in the system.
//
// Amounts are canonicalized to exactly 2 fractional digits with half-up
// rounding at construction, so any two Money values representing the same
// amount compare equal and render identically. Parsing is locale-flexible:
// both "." and "," are accepted as the decimal separator, and the
// "1.234,56" thousands convention is recognized.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Money is an exact fixed-point amount with 2 fractional digits.
//
// The zero value is 0.00 and ready to use.
type Money struct {
	d decimal.Decimal
}

// Zero is the canonical 0.00 amount.
var Zero = Money{}

// Parse converts a locale-flexible numeric string to a Money.
//
// Accepted forms:
//   - "19.90" or "19,90"  -> 19.90 (either separator as decimal point)
//   - "1.234,56"          -> 1234.56 ("." thousands, "," decimal)
//
// Returns ok=false on malformed input; it never panics and never
// returns an error for the caller to branch on.
func Parse(s string) (Money, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, false
	}
	if strings.Contains(s, ",") && strings.Contains(s, ".") {
		// Thousands-separated form: drop the dots, comma is the decimal point.
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	} else {
		s = strings.ReplaceAll(s, ",", ".")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, false
	}
	return fromDecimal(d), true
}

// MustParse is Parse for trusted literals; it panics on malformed input.
// Intended for tests and constants.
func MustParse(s string) Money {
	m, ok := Parse(s)
	if !ok {
		panic("money: malformed literal " + s)
	}
	return m
}

// FromInt converts a whole number to a Money.
func FromInt(n int64) Money {
	return fromDecimal(decimal.NewFromInt(n))
}

// fromDecimal canonicalizes d to the 2-decimal half-up form.
// shopspring's Round resolves ties away from zero, which matches
// half-up for positive amounts and the original ledger's behavior
// for negative stock adjustments.
func fromDecimal(d decimal.Decimal) Money {
	return Money{d: d.Round(2)}
}

// String renders the canonical form: 2 decimals, "." separator,
// no thousands grouping.
func (m Money) String() string {
	return m.d.StringFixed(2)
}

// Add returns m + o.
func (m Money) Add(o Money) Money {
	return fromDecimal(m.d.Add(o.d))
}

// Sub returns m - o.
func (m Money) Sub(o Money) Money {
	return fromDecimal(m.d.Sub(o.d))
}

// Mul returns m × o rounded half-up to 2 decimals.
func (m Money) Mul(o Money) Money {
	return fromDecimal(m.d.Mul(o.d))
}

// Cmp returns -1, 0, or 1 as m is less than, equal to, or greater than o.
func (m Money) Cmp(o Money) int {
	return m.d.Cmp(o.d)
}

// Equal reports whether m and o are the same amount.
func (m Money) Equal(o Money) bool {
	return m.d.Equal(o.d)
}

// IsNegative reports whether m is below zero.
func (m Money) IsNegative() bool {
	return m.d.IsNegative()
}

// IsZero reports whether m is exactly 0.00.
func (m Money) IsZero() bool {
	return m.d.IsZero()
}
