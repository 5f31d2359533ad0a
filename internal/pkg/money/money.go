package money

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Money is an amount in integer cents. Wire values are JSON numbers in
// currency units and are converted exactly once at the API boundary.
type Money int64

var ErrInvalidAmount = errors.New("invalid monetary amount")

func FromCents(cents int64) Money {
	return Money(cents)
}

// maxCents is 2^63 as a float; a rounded cents value at or beyond it does
// not fit in int64 and the conversion would be implementation-defined.
const maxCents = float64(1 << 63)

// FromFloat converts a currency-unit float into cents, rounding half away
// from zero. NaN, infinities and amounts whose cents overflow int64 are
// rejected.
func FromFloat(v float64) (Money, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrInvalidAmount
	}
	cents := v * 100
	if cents > 0 {
		cents += 0.5
	} else {
		cents -= 0.5
	}
	if cents >= maxCents || cents < -maxCents {
		return 0, ErrInvalidAmount
	}
	return Money(int64(cents)), nil
}

// Parse reads a decimal string like "12.34", "12" or "$12.34".
func Parse(s string) (Money, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	if s == "" {
		return 0, ErrInvalidAmount
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	return FromFloat(v)
}

func (m Money) Add(other Money) Money {
	return m + other
}

func (m Money) Sub(other Money) Money {
	return m - other
}

func (m Money) MulQty(qty int) Money {
	return m * Money(qty)
}

func (m Money) IsNegative() bool {
	return m < 0
}

func (m Money) IsZero() bool {
	return m == 0
}

func (m Money) Cents() int64 {
	return int64(m)
}

// Float returns the amount in currency units for wire encoding.
func (m Money) Float() float64 {
	return float64(m) / 100
}

func (m Money) Format() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s$%d.%02d", sign, v/100, v%100)
}

func (m Money) String() string {
	return m.Format()
}

// CoerceQuantity normalizes user-entered quantities: non-positive or
// unparseable input becomes 1, fractional input is floored.
func CoerceQuantity(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 1 {
		return 1
	}
	return int(math.Floor(v))
}
