package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ScheduleLine is one installment of an amortization schedule.
// Payment always equals Interest + PrincipalPaid.
type ScheduleLine struct {
	Index         int             `json:"index"`
	Payment       decimal.Decimal `json:"payment"`
	Interest      decimal.Decimal `json:"interest"`
	PrincipalPaid decimal.Decimal `json:"principal_paid"`
	EndingBalance decimal.Decimal `json:"ending_balance"`
	DueDate       time.Time       `json:"due_date"`
}

// ScheduleResult is the full output of a schedule computation.
//
// MonthlyPayment is the level (typical) installment. The last line absorbs the
// accumulated rounding residue, so its payment, reported as FinalPayment, may
// differ from MonthlyPayment by a few cents. TotalPaid is the sum of the
// emitted line payments, not MonthlyPayment times the term.
type ScheduleResult struct {
	Principal      decimal.Decimal `json:"principal"`
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	FinalPayment   decimal.Decimal `json:"final_payment"`
	TotalPaid      decimal.Decimal `json:"total_paid"`
	TotalInterest  decimal.Decimal `json:"total_interest"`
	// PayoffDate is nil when there is nothing to finance.
	PayoffDate *time.Time      `json:"payoff_date"`
	Lines      []*ScheduleLine `json:"lines"`
}

// IsEmpty reports whether the result is the zero-principal short-circuit.
func (r *ScheduleResult) IsEmpty() bool {
	return len(r.Lines) == 0
}
