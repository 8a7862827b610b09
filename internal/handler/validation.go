package handler

import (
	"reflect"
	"strconv"

	"github.com/segyhp/loan-amortizer/internal/domain"
	"github.com/segyhp/loan-amortizer/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Decimal places of the quotes table input columns.
const (
	moneyScale = 2
	rateScale  = 4
)

// newValidator returns a validator that compares decimal.Decimal fields as numbers,
// so tags like gte=0 work on money fields. Values past the float64 range compare
// as ±Inf and fail any finite upper bound.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return utils.Float64(d)
		}
		return nil
	}, decimal.Decimal{})
	v.RegisterStructValidation(validateScheduleScale, domain.ScheduleRequest{})
	return v
}

// validateScheduleScale rejects inputs with more decimal places than a quote
// can store, so a saved quote recomputes to the schedule it was saved with.
func validateScheduleScale(sl validator.StructLevel) {
	req := sl.Current().Interface().(domain.ScheduleRequest)

	fields := []struct {
		value decimal.Decimal
		json  string
		name  string
		scale int32
	}{
		{req.Amount, "amount", "Amount", moneyScale},
		{req.DownPayment, "down_payment", "DownPayment", moneyScale},
		{req.Fees, "fees", "Fees", moneyScale},
		{req.AnnualRatePercent, "annual_rate_percent", "AnnualRatePercent", rateScale},
	}
	for _, f := range fields {
		if !withinScale(f.value, f.scale) {
			sl.ReportError(f.value, f.json, f.name, "scale", strconv.Itoa(int(f.scale)))
		}
	}
}

// withinScale reports whether d has no significant digits past places.
func withinScale(d decimal.Decimal, places int32) bool {
	if d.IsZero() || d.Exponent() >= -places {
		return true
	}
	// entirely below the smallest unit, e.g. 1e-3000000
	if int32(d.NumDigits())+d.Exponent() <= -places {
		return false
	}
	return d.Equal(d.Truncate(places))
}

// canonical drops zeros past the column scale, so "1000.5000" and "0e-9"
// compute and cache like "1000.5" and "0".
func canonical(d decimal.Decimal, places int32) decimal.Decimal {
	if d.IsZero() {
		return decimal.Zero
	}
	if d.Exponent() < -places {
		return d.Round(places)
	}
	return d
}

func toLoanInputs(req domain.ScheduleRequest) domain.LoanInputs {
	return domain.LoanInputs{
		Amount:            canonical(req.Amount, moneyScale),
		DownPayment:       canonical(req.DownPayment, moneyScale),
		Fees:              canonical(req.Fees, moneyScale),
		TermMonths:        req.TermMonths,
		AnnualRatePercent: canonical(req.AnnualRatePercent, rateScale),
		StartDate:         utils.ParseDate(req.StartDate),
	}
}
