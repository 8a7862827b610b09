package handler

import (
	"net/url"
	"strconv"

	"github.com/segyhp/loan-amortizer/internal/domain"
	"github.com/segyhp/loan-amortizer/pkg/utils"
)

// Query parameter names of the shareable form state.
const (
	paramAmount = "amount"
	paramDown   = "down"
	paramAPR    = "apr"
	paramTerm   = "term"
	paramFees   = "fees"
	paramStart  = "start"
)

// DecodeQuery builds loan inputs from shareable query parameters.
// Absent or empty parameters keep the value from defaults; present ones are
// normalized, so garbage becomes 0 (or 1 for the term) instead of an error.
func DecodeQuery(values url.Values, defaults domain.LoanInputs) domain.LoanInputs {
	in := defaults

	if v := values.Get(paramAmount); v != "" {
		in.Amount = utils.ParseAmount(v)
	}
	if v := values.Get(paramDown); v != "" {
		in.DownPayment = utils.ParseAmount(v)
	}
	if v := values.Get(paramAPR); v != "" {
		in.AnnualRatePercent = utils.ParseRate(v)
	}
	if v := values.Get(paramTerm); v != "" {
		in.TermMonths = utils.ParseTerm(v)
	}
	if v := values.Get(paramFees); v != "" {
		in.Fees = utils.ParseAmount(v)
	}
	if v := values.Get(paramStart); v != "" {
		in.StartDate = utils.ParseDate(v)
	}

	return in
}

// EncodeQuery renders inputs as shareable query parameters. An unset start
// date is omitted so the link keeps meaning "starting today".
func EncodeQuery(in domain.LoanInputs) string {
	values := url.Values{}
	values.Set(paramAmount, in.Amount.String())
	values.Set(paramDown, in.DownPayment.String())
	values.Set(paramAPR, in.AnnualRatePercent.String())
	values.Set(paramTerm, strconv.Itoa(in.TermMonths))
	values.Set(paramFees, in.Fees.String())
	if in.HasStartDate() {
		values.Set(paramStart, utils.FormatDate(in.StartDate))
	}
	return values.Encode()
}
