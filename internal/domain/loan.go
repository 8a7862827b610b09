package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanInputs are the loan parameters a schedule is computed from.
// Numeric fields are expected to be finite and non-negative, and TermMonths at least 1;
// callers normalize raw user input before building this value.
type LoanInputs struct {
	Amount            decimal.Decimal `json:"amount"`
	DownPayment       decimal.Decimal `json:"down_payment"`
	Fees              decimal.Decimal `json:"fees"`
	TermMonths        int             `json:"term_months"`
	AnnualRatePercent decimal.Decimal `json:"annual_rate_percent"`
	// StartDate is the due date of the first installment. The zero value means
	// "today", which the caller supplies explicitly.
	StartDate time.Time `json:"start_date,omitzero"`
}

// HasStartDate reports whether a start date was provided.
func (in LoanInputs) HasStartDate() bool {
	return !in.StartDate.IsZero()
}

// Preset is a named quick-fill loan. Its inputs carry no down payment, fees or
// start date.
type Preset struct {
	Name   string     `json:"name"`
	Inputs LoanInputs `json:"inputs"`
}

// DTOs for requests and responses

// ScheduleRequest is the strict JSON form of LoanInputs accepted by the API.
// Bounds follow the quotes columns: money is NUMERIC(15,2), the rate NUMERIC(9,4).
type ScheduleRequest struct {
	Amount            decimal.Decimal `json:"amount" validate:"gte=0,lt=10000000000000"`
	DownPayment       decimal.Decimal `json:"down_payment" validate:"gte=0,lt=10000000000000"`
	Fees              decimal.Decimal `json:"fees" validate:"gte=0,lt=10000000000000"`
	TermMonths        int             `json:"term_months" validate:"required,gte=1"`
	AnnualRatePercent decimal.Decimal `json:"annual_rate_percent" validate:"gte=0,lt=100000"`
	StartDate         string          `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
}

type CreateQuoteRequest struct {
	Label string `json:"label" validate:"max=120"`
	ScheduleRequest
}

type PresetResponse struct {
	Name       string     `json:"name"`
	Inputs     LoanInputs `json:"inputs"`
	ShareQuery string     `json:"share_query"`
}

type ScheduleResponse struct {
	Inputs     LoanInputs      `json:"inputs"`
	Schedule   *ScheduleResult `json:"schedule"`
	ShareQuery string          `json:"share_query"`
}
