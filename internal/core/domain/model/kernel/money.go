package kernel

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"arenoexpress/internal/pkg/errs"
)

// Money is a non-negative fixed-point amount held in minor units (cents).
// Fees, totals, insurance, declared values and payment amounts all use it so
// no float rounding reaches persisted values.
type Money struct {
	cents int64
}

// NewMoney builds an amount from minor units.
func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", cents, 0, int64(math.MaxInt64))
	}
	return Money{cents: cents}, nil
}

// ParseMoney reads a decimal string with at most two fractional digits,
// e.g. "50", "50.5" or "50.00".
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, errs.NewValueIsRequiredError("amount")
	}

	whole, frac, hasFrac := strings.Cut(s, ".")
	if hasFrac && (len(frac) == 0 || len(frac) > 2) {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%q has invalid precision", s))
	}
	for len(frac) < 2 {
		frac += "0"
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || strings.HasPrefix(whole, "+") {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%q is not a number", s))
	}
	cents, err := strconv.ParseInt(frac, 10, 64)
	if err != nil || strings.HasPrefix(frac, "-") || strings.HasPrefix(frac, "+") {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%q is not a number", s))
	}
	if units < 0 || strings.HasPrefix(whole, "-") {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", s, 0, "max")
	}
	if units > (math.MaxInt64-cents)/100 {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", s, 0, "max")
	}

	return NewMoney(units*100 + cents)
}

// Cents returns the amount in minor units.
func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) IsZero() bool {
	return m.cents == 0
}

// String renders the amount with two decimals ("50.00").
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.cents/100, m.cents%100)
}

// MarshalText keeps amounts as decimal strings in JSON payloads.
func (m Money) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Money) UnmarshalText(text []byte) error {
	parsed, err := ParseMoney(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
