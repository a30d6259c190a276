package kernel

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Money is a currency amount in integer cents.
//
// Money is a value object: operations return new values and never mutate.
// The zero value is a valid zero amount, so Money needs no constructor
// guard; constructors exist to validate externally supplied amounts.
type Money struct {
	cents int64
}

// NewMoneyFromCents creates a Money from an integer cent amount.
// Negative amounts are rejected; the domain never deals in negative money.
func NewMoneyFromCents(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%d cents is negative", cents))
	}
	return Money{cents: cents}, nil
}

// MustMoneyFromCents is NewMoneyFromCents for compile-time-known amounts.
// Panics on negative input; intended for tests and constants.
func MustMoneyFromCents(cents int64) Money {
	m, err := NewMoneyFromCents(cents)
	if err != nil {
		panic(err)
	}
	return m
}

// Cents returns the amount in integer cents.
func (m Money) Cents() int64 {
	return m.cents
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

// Sub returns the difference of two amounts. Differences below zero are
// clamped by the caller's validation; Sub itself reports the raw result.
func (m Money) Sub(other Money) Money {
	return Money{cents: m.cents - other.cents}
}

// MulQuantity returns the amount multiplied by an item quantity.
func (m Money) MulQuantity(quantity int) Money {
	return Money{cents: m.cents * int64(quantity)}
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.cents == 0
}

// IsPositive reports whether the amount is greater than zero.
func (m Money) IsPositive() bool {
	return m.cents > 0
}

// Equals reports whether two amounts are the same.
func (m Money) Equals(other Money) bool {
	return m.cents == other.cents
}

// GreaterThan reports whether m exceeds other.
func (m Money) GreaterThan(other Money) bool {
	return m.cents > other.cents
}

// String renders the amount as a decimal string, e.g. "12.50".
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.cents/100, m.cents%100)
}
