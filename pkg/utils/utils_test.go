package utils

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected decimal.Decimal
	}{
		{name: "plain number", input: "8000", expected: decimal.NewFromInt(8000)},
		{name: "fractional", input: "1234.56", expected: decimal.RequireFromString("1234.56")},
		{name: "surrounding spaces", input: "  42 ", expected: decimal.NewFromInt(42)},
		{name: "exponent", input: "1e3", expected: decimal.NewFromInt(1000)},
		{name: "empty", input: "", expected: decimal.Zero},
		{name: "not a number", input: "abc", expected: decimal.Zero},
		{name: "NaN", input: "NaN", expected: decimal.Zero},
		{name: "infinity", input: "Infinity", expected: decimal.Zero},
		{name: "negative", input: "-250", expected: decimal.Zero},
		{name: "largest finite", input: "1e308", expected: decimal.RequireFromString("1e308")},
		{name: "overflows float64", input: "1e400", expected: decimal.Zero},
		{name: "just past float64 max", input: "1.8e308", expected: decimal.Zero},
		{name: "enormous exponent", input: "1e3000000", expected: decimal.Zero},
		{name: "underflows float64", input: "1e-400", expected: decimal.Zero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseAmount(tt.input)
			assert.True(t, result.Equal(tt.expected),
				"Expected %v, but got %v", tt.expected, result)
		})
	}
}

func TestFloat64(t *testing.T) {
	assert.Equal(t, 1234.5, Float64(decimal.RequireFromString("1234.5")))
	assert.Equal(t, 0.0, Float64(decimal.Zero))
	assert.True(t, math.IsInf(Float64(decimal.RequireFromString("1e3000000")), 1))
	assert.True(t, math.IsInf(Float64(decimal.RequireFromString("-1e400")), -1))
	assert.Equal(t, 0.0, Float64(decimal.RequireFromString("1e-3000000")))

	assert.True(t, IsFinite(decimal.RequireFromString("1e308")))
	assert.False(t, IsFinite(decimal.RequireFromString("1e400")))
}

func TestParseRate(t *testing.T) {
	assert.True(t, ParseRate("6.5").Equal(decimal.RequireFromString("6.5")))
	assert.True(t, ParseRate("6.5%").Equal(decimal.RequireFromString("6.5")))
	assert.True(t, ParseRate("-1").IsZero())
	assert.True(t, ParseRate("").IsZero())
	assert.True(t, ParseRate("1e400%").IsZero())
}

func TestParseTerm(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{name: "whole months", input: "12", expected: 12},
		{name: "fraction floors", input: "12.9", expected: 12},
		{name: "zero", input: "0", expected: 1},
		{name: "below one", input: "0.5", expected: 1},
		{name: "negative", input: "-6", expected: 1},
		{name: "empty", input: "", expected: 1},
		{name: "garbage", input: "twelve", expected: 1},
		{name: "huge", input: "1e20", expected: maxInt32},
		{name: "non-finite", input: "1e400", expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseTerm(tt.input))
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
	}{
		{name: "valid date", input: "2024-01-15", expected: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{name: "empty", input: "", expected: time.Time{}},
		{name: "wrong layout", input: "15/01/2024", expected: time.Time{}},
		{name: "impossible date", input: "2024-02-30", expected: time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseDate(tt.input))
		})
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "2024-12-15", FormatDate(time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "", FormatDate(time.Time{}))
}

func TestClampTerm(t *testing.T) {
	assert.Equal(t, 1, ClampTerm(0, 1200))
	assert.Equal(t, 360, ClampTerm(360, 1200))
	assert.Equal(t, 1200, ClampTerm(5000, 1200))
	assert.Equal(t, 5000, ClampTerm(5000, 0))
}
