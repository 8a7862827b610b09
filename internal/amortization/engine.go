// Package amortization computes fixed-rate loan amortization schedules.
//
// Compute is a pure function: it keeps no state between calls, never reads the
// system clock and never fails. Callers normalize raw input (see pkg/utils) and
// supply the reference date used when no start date is given.
package amortization

import (
	"math"
	"time"

	"github.com/segyhp/loan-amortizer/internal/domain"
	"github.com/segyhp/loan-amortizer/pkg/utils"

	"github.com/shopspring/decimal"
)

// Compute builds the amortization schedule for in. today is used as the first
// due date when in.StartDate is zero.
//
// Due dates advance by calendar months with time.AddDate, so a start on the
// 31st rolls into the following month where the target month is shorter
// (Jan 31 + 1 month = Mar 2 or 3). That matches ordinary date arithmetic and is
// intentional.
func Compute(in domain.LoanInputs, today time.Time) *domain.ScheduleResult {
	n := in.TermMonths
	if n < 1 {
		n = 1
	}
	apr := decimal.Max(decimal.Zero, finite(in.AnnualRatePercent))

	gross := finite(in.Amount).Sub(finite(in.DownPayment)).Add(finite(in.Fees))
	principal := decimal.Max(decimal.Zero, round2(gross))
	if !principal.IsPositive() {
		return emptyResult()
	}

	start := StartDate(in, today)
	payment := LevelPayment(principal, apr, n)

	lines := make([]*domain.ScheduleLine, 0, n)
	balance := principal
	totalInterest := decimal.Zero
	totalPaid := decimal.Zero

	for i := 1; i <= n; i++ {
		interest := periodInterest(balance, apr)
		principalPaid := round2(payment.Sub(interest))

		if i == n {
			// last line absorbs the rounding residue so the balance closes at zero
			principalPaid = round2(balance)
		} else {
			principalPaid = decimal.Min(decimal.Max(principalPaid, decimal.Zero), round2(balance))
		}
		linePayment := round2(principalPaid.Add(interest))

		balance = round2(balance.Sub(principalPaid))
		totalInterest = round2(totalInterest.Add(interest))
		totalPaid = totalPaid.Add(linePayment)

		lines = append(lines, &domain.ScheduleLine{
			Index:         i,
			Payment:       linePayment,
			Interest:      interest,
			PrincipalPaid: principalPaid,
			EndingBalance: balance,
			DueDate:       DueDate(start, i),
		})
	}

	payoff := DueDate(start, n)
	return &domain.ScheduleResult{
		Principal:      principal,
		MonthlyPayment: payment,
		FinalPayment:   lines[n-1].Payment,
		TotalPaid:      round2(totalPaid),
		TotalInterest:  totalInterest,
		PayoffDate:     &payoff,
		Lines:          lines,
	}
}

// LevelPayment returns the rounded annuity payment for principal over n
// monthly periods at the given APR (in percent). A zero rate splits the
// principal into equal installments.
func LevelPayment(principal, aprPercent decimal.Decimal, n int) decimal.Decimal {
	if n < 1 {
		n = 1
	}
	if !aprPercent.IsPositive() {
		return round2(principal.Div(decimal.NewFromInt(int64(n))))
	}

	p := utils.Float64(principal)
	r := utils.Float64(aprPercent) / 12 / 100
	return roundFloat2(p * r / (1 - math.Pow(1+r, -float64(n))))
}

// PeriodicRate converts an APR in percent to the monthly rate.
func PeriodicRate(aprPercent decimal.Decimal) decimal.Decimal {
	return decimal.Max(decimal.Zero, aprPercent).Div(periodicDivisor)
}

// StartDate resolves the first due date of in, falling back to today.
// Only the calendar date is kept.
func StartDate(in domain.LoanInputs, today time.Time) time.Time {
	d := today
	if in.HasStartDate() {
		d = in.StartDate
	}
	return truncateDate(d)
}

// DueDate returns the due date of installment index (1-based).
func DueDate(start time.Time, index int) time.Time {
	return start.AddDate(0, index-1, 0)
}

// finite maps values outside the float64 range to zero, the same as the input
// boundary does.
func finite(d decimal.Decimal) decimal.Decimal {
	if !utils.IsFinite(d) {
		return decimal.Zero
	}
	return d
}

func periodInterest(balance, aprPercent decimal.Decimal) decimal.Decimal {
	if !aprPercent.IsPositive() {
		return decimal.Zero
	}
	// balance*apr/1200 rather than balance*(apr/1200) keeps exact ties exact
	return round2(balance.Mul(aprPercent).Div(periodicDivisor))
}

func truncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func emptyResult() *domain.ScheduleResult {
	return &domain.ScheduleResult{
		Principal:      decimal.Zero,
		MonthlyPayment: decimal.Zero,
		FinalPayment:   decimal.Zero,
		TotalPaid:      decimal.Zero,
		TotalInterest:  decimal.Zero,
		Lines:          []*domain.ScheduleLine{},
	}
}
