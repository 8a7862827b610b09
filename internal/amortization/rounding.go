package amortization

import (
	"math"

	"github.com/shopspring/decimal"
)

// Currency rounding is half away from zero at two decimal places.
// decimal.Round already implements that rule exactly. Values that pass through
// float64 (the annuity factor) are nudged away from zero by floatEpsilon first,
// so that representation error like 2.675 -> 2.67499999 still rounds up.
const (
	currencyPlaces = 2
	floatEpsilon   = 1e-9
)

var (
	monthsPerYear   = decimal.NewFromInt(12)
	percentDivisor  = decimal.NewFromInt(100)
	periodicDivisor = monthsPerYear.Mul(percentDivisor)
)

func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(currencyPlaces)
}

func roundFloat2(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f + math.Copysign(floatEpsilon, f)).Round(currencyPlaces)
}
