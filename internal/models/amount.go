package models

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Amount is a currency value in major units (e.g. 12.50).
// It is backed by an arbitrary precision decimal so that repeated additions
// never accumulate binary floating-point error.
type Amount struct {
	value decimal.Decimal
}

// Zero is the zero Amount.
var Zero = Amount{}

// Amounts are bounded by the finite float64 range: at most maxMagnitude
// integer digits and no digit below 10^minExponent.
const (
	maxMagnitude = 309
	minExponent  = -340
)

// NewAmount parses a decimal string such as "12.50" or "-3".
func NewAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("cannot parse amount %q: %w", s, err)
	}
	return bounded(d)
}

// bounded rejects decimals outside the finite float64 range. Arbitrary
// exponents would otherwise force every later sum to rescale to millions of digits.
func bounded(d decimal.Decimal) (Amount, error) {
	if d.IsZero() {
		return Zero, nil
	}
	if d.Exponent() < minExponent || int64(d.NumDigits())+int64(d.Exponent()) > maxMagnitude {
		return Amount{}, fmt.Errorf("amount with %d digits and exponent %d is out of range", d.NumDigits(), d.Exponent())
	}
	if math.IsInf(d.InexactFloat64(), 0) {
		return Amount{}, fmt.Errorf("amount %s is out of range", d.String())
	}
	return Amount{value: d}, nil
}

// MustAmount is like NewAmount but panics on invalid input. Meant for constants and tests.
func MustAmount(s string) Amount {
	a, err := NewAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}

// AmountFromInt returns an Amount holding a whole number of major units.
func AmountFromInt(i int64) Amount {
	return Amount{value: decimal.NewFromInt(i)}
}

// AmountFromFloat converts a float, rejecting NaN and infinities.
func AmountFromFloat(f float64) (Amount, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Amount{}, fmt.Errorf("amount must be finite, got %v", f)
	}
	return Amount{value: decimal.NewFromFloat(f)}, nil
}

// AmountFromDecimal wraps a decimal value.
func AmountFromDecimal(d decimal.Decimal) Amount { return Amount{value: d} }

func (a Amount) Decimal() decimal.Decimal         { return a.value }
func (a Amount) Add(b Amount) Amount              { return Amount{value: a.value.Add(b.value)} }
func (a Amount) Sub(b Amount) Amount              { return Amount{value: a.value.Sub(b.value)} }
func (a Amount) Neg() Amount                      { return Amount{value: a.value.Neg()} }
func (a Amount) Abs() Amount                      { return Amount{value: a.value.Abs()} }
func (a Amount) Sign() int                        { return a.value.Sign() }
func (a Amount) IsZero() bool                     { return a.value.IsZero() }
func (a Amount) IsPositive() bool                 { return a.value.IsPositive() }
func (a Amount) IsNegative() bool                 { return a.value.IsNegative() }
func (a Amount) Cmp(b Amount) int                 { return a.value.Cmp(b.value) }
func (a Amount) Equal(b Amount) bool              { return a.value.Equal(b.value) }
func (a Amount) LessThan(b Amount) bool           { return a.value.LessThan(b.value) }
func (a Amount) GreaterThan(b Amount) bool        { return a.value.GreaterThan(b.value) }
func (a Amount) GreaterThanOrEqual(b Amount) bool { return a.value.GreaterThanOrEqual(b.value) }

// DivInt divides the amount into n equal parts. n must be positive.
func (a Amount) DivInt(n int) Amount {
	return Amount{value: a.value.Div(decimal.NewFromInt(int64(n)))}
}

// Min returns the smaller of a and b.
func (a Amount) Min(b Amount) Amount {
	if b.LessThan(a) {
		return b
	}
	return a
}

// Float64 is meant for display only; calculations stay in Amount.
func (a Amount) Float64() float64 { return a.value.InexactFloat64() }

// String returns the exact decimal representation.
func (a Amount) String() string { return a.value.String() }

// Fixed2 returns the amount rounded to cents, e.g. "12.50".
func (a Amount) Fixed2() string { return a.value.StringFixed(2) }

// MarshalJSON encodes the amount as a bare JSON number, as the exported document
// format has always carried amounts.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.value.String()), nil
}

// UnmarshalJSON accepts a JSON number, a quoted decimal string, or null (zero).
func (a *Amount) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("cannot decode amount %s: %w", data, err)
	}
	v, err := bounded(d)
	if err != nil {
		return fmt.Errorf("cannot decode amount: %w", err)
	}
	*a = v
	return nil
}
