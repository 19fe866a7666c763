package domain

import (
	"github.com/shopspring/decimal"
)

// Money is a fixed-precision currency amount in minor units (paisa).
// All ledger arithmetic happens on this integer type so that summing a
// full line history can never accumulate floating-point drift. Decimal
// values exist only at the API boundary.
type Money int64

// minorUnitExp is the number of decimal places in the display currency.
const minorUnitExp = 2

// MoneyFromDecimal converts a boundary decimal amount (e.g. "500.00")
// into minor units. Sub-minor precision is rejected by the caller via
// dto validation; anything that slips through is truncated bankers-side
// by decimal.Shift which keeps exact integer semantics.
func MoneyFromDecimal(d decimal.Decimal) Money {
	return Money(d.Shift(minorUnitExp).IntPart())
}

// Decimal renders the amount back as a display decimal.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -minorUnitExp)
}

// IsPositive reports whether the amount is strictly greater than zero.
func (m Money) IsPositive() bool {
	return m > 0
}

// Neg returns the negated amount.
func (m Money) Neg() Money {
	return -m
}

func (m Money) String() string {
	return m.Decimal().StringFixed(minorUnitExp)
}
