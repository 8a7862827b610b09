package utils

import (
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// Decimal exponents outside this window overflow a float64 to Inf or
// underflow it to zero.
const (
	maxFloatMagnitude = 309
	minFloatMagnitude = -323
)

// ParseAmount converts user-entered text to a non-negative decimal.
// Empty, non-numeric, NaN/Inf and negative input all become zero, and so does
// anything too large to be a finite float64 (e.g. "1e400").
func ParseAmount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || d.IsNegative() || !IsFinite(d) {
		return decimal.Zero
	}
	if magnitude(d) < minFloatMagnitude {
		return decimal.Zero
	}
	return d
}

// Float64 converts d to a float64. Values beyond the float64 range saturate to
// ±Inf without expanding their exponent.
func Float64(d decimal.Decimal) float64 {
	if d.IsZero() {
		return 0
	}
	switch m := magnitude(d); {
	case m > maxFloatMagnitude:
		return math.Inf(d.Sign())
	case m < minFloatMagnitude:
		return 0
	}
	return d.InexactFloat64()
}

// IsFinite reports whether d fits in a finite float64.
func IsFinite(d decimal.Decimal) bool {
	return !math.IsInf(Float64(d), 0)
}

// magnitude is the power of ten just above |d|.
func magnitude(d decimal.Decimal) int {
	return d.NumDigits() + int(d.Exponent())
}

// ParseRate converts an annual percentage rate, with the same rules as ParseAmount.
// A trailing percent sign is accepted.
func ParseRate(s string) decimal.Decimal {
	return ParseAmount(strings.TrimSuffix(strings.TrimSpace(s), "%"))
}

// ParseTerm converts a term in months, flooring fractions.
// Anything that does not yield a positive whole number becomes 1.
func ParseTerm(s string) int {
	d := ParseAmount(s).Floor()
	if !d.IsPositive() || !d.IsInteger() {
		return 1
	}
	if d.GreaterThan(decimal.NewFromInt(int64(maxInt32))) {
		return maxInt32
	}
	return int(d.IntPart())
}

const maxInt32 = 1<<31 - 1

// ParseDate parses a YYYY-MM-DD date. Invalid input returns the zero time,
// which callers treat as "no start date".
func ParseDate(s string) time.Time {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}
	}
	return t
}

// FormatDate renders t as YYYY-MM-DD, or "" for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// ClampTerm limits a term to [1, max]. A non-positive max disables the upper bound.
func ClampTerm(term, max int) int {
	if term < 1 {
		return 1
	}
	if max > 0 && term > max {
		return max
	}
	return term
}
