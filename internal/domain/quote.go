package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Quote is a saved schedule computation.
type Quote struct {
	ID                uuid.UUID       `json:"id" db:"id"`
	Label             string          `json:"label" db:"label"`
	Amount            decimal.Decimal `json:"amount" db:"amount"`
	DownPayment       decimal.Decimal `json:"down_payment" db:"down_payment"`
	Fees              decimal.Decimal `json:"fees" db:"fees"`
	TermMonths        int             `json:"term_months" db:"term_months"`
	AnnualRatePercent decimal.Decimal `json:"annual_rate_percent" db:"annual_rate_percent"`
	StartDate         time.Time       `json:"start_date" db:"start_date"`
	Principal         decimal.Decimal `json:"principal" db:"principal"`
	MonthlyPayment    decimal.Decimal `json:"monthly_payment" db:"monthly_payment"`
	FinalPayment      decimal.Decimal `json:"final_payment" db:"final_payment"`
	TotalPaid         decimal.Decimal `json:"total_paid" db:"total_paid"`
	TotalInterest     decimal.Decimal `json:"total_interest" db:"total_interest"`
	PayoffDate        *time.Time      `json:"payoff_date" db:"payoff_date"`
	CreatedAt         time.Time       `json:"created_at" db:"created_at"`

	Lines []*QuoteLine `json:"lines" db:"-"`
}

// QuoteLine is the stored form of a ScheduleLine.
type QuoteLine struct {
	QuoteID       uuid.UUID       `json:"-" db:"quote_id"`
	Index         int             `json:"index" db:"line_index"`
	Payment       decimal.Decimal `json:"payment" db:"payment"`
	Interest      decimal.Decimal `json:"interest" db:"interest"`
	PrincipalPaid decimal.Decimal `json:"principal_paid" db:"principal_paid"`
	EndingBalance decimal.Decimal `json:"ending_balance" db:"ending_balance"`
	DueDate       time.Time       `json:"due_date" db:"due_date"`
}

// Inputs returns the loan parameters the quote was computed from.
func (q *Quote) Inputs() LoanInputs {
	return LoanInputs{
		Amount:            q.Amount,
		DownPayment:       q.DownPayment,
		Fees:              q.Fees,
		TermMonths:        q.TermMonths,
		AnnualRatePercent: q.AnnualRatePercent,
		StartDate:         q.StartDate,
	}
}

// NewQuote builds a quote from resolved inputs and their schedule.
func NewQuote(id uuid.UUID, label string, in LoanInputs, result *ScheduleResult, createdAt time.Time) *Quote {
	q := &Quote{
		ID:                id,
		Label:             label,
		Amount:            in.Amount,
		DownPayment:       in.DownPayment,
		Fees:              in.Fees,
		TermMonths:        in.TermMonths,
		AnnualRatePercent: in.AnnualRatePercent,
		StartDate:         in.StartDate,
		Principal:         result.Principal,
		MonthlyPayment:    result.MonthlyPayment,
		FinalPayment:      result.FinalPayment,
		TotalPaid:         result.TotalPaid,
		TotalInterest:     result.TotalInterest,
		PayoffDate:        result.PayoffDate,
		CreatedAt:         createdAt,
		Lines:             make([]*QuoteLine, 0, len(result.Lines)),
	}
	for _, line := range result.Lines {
		q.Lines = append(q.Lines, &QuoteLine{
			QuoteID:       id,
			Index:         line.Index,
			Payment:       line.Payment,
			Interest:      line.Interest,
			PrincipalPaid: line.PrincipalPaid,
			EndingBalance: line.EndingBalance,
			DueDate:       line.DueDate,
		})
	}
	return q
}
