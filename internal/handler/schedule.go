package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/segyhp/loan-amortizer/internal/domain"
	customError "github.com/segyhp/loan-amortizer/pkg/errors"
	"github.com/segyhp/loan-amortizer/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

// maxBodyBytes bounds request bodies; loan inputs are a handful of fields.
const maxBodyBytes = 1 << 16

// ScheduleService is what the handler needs from the service layer
type ScheduleService interface {
	Defaults() domain.LoanInputs
	Presets() []domain.Preset
	Calculate(ctx context.Context, in domain.LoanInputs) (*domain.ScheduleResult, error)
	CreateQuote(ctx context.Context, label string, in domain.LoanInputs) (*domain.Quote, error)
	GetQuote(ctx context.Context, quoteID string) (*domain.Quote, error)
}

type ScheduleHandler struct {
	service   ScheduleService
	validator *validator.Validate
}

func NewScheduleHandler(service ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{
		service:   service,
		validator: newValidator(),
	}
}

// Defaults returns the form's reset values
func (h *ScheduleHandler) Defaults(w http.ResponseWriter, r *http.Request) {
	defaults := h.service.Defaults()
	response.Success(w, map[string]interface{}{
		"inputs":      defaults,
		"share_query": EncodeQuery(defaults),
	})
}

// Presets lists the quick-fill loans with a ready-made share query each
func (h *ScheduleHandler) Presets(w http.ResponseWriter, r *http.Request) {
	presets := h.service.Presets()
	items := make([]domain.PresetResponse, 0, len(presets))
	for _, p := range presets {
		items = append(items, domain.PresetResponse{
			Name:       p.Name,
			Inputs:     p.Inputs,
			ShareQuery: EncodeQuery(p.Inputs),
		})
	}
	response.Success(w, items)
}

// GetSchedule computes a schedule from shareable query parameters
func (h *ScheduleHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	in := DecodeQuery(r.URL.Query(), h.service.Defaults())
	h.respondSchedule(w, r, in)
}

// PostSchedule computes a schedule from a validated JSON body
func (h *ScheduleHandler) PostSchedule(w http.ResponseWriter, r *http.Request) {
	var req domain.ScheduleRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.respondSchedule(w, r, toLoanInputs(req))
}

// CreateQuote computes and saves a schedule
func (h *ScheduleHandler) CreateQuote(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateQuoteRequest
	if !h.decode(w, r, &req) {
		return
	}

	quote, err := h.service.CreateQuote(r.Context(), req.Label, toLoanInputs(req.ScheduleRequest))
	if err != nil {
		writeError(w, err)
		return
	}

	response.Created(w, quote)
}

// GetQuote returns a saved quote
func (h *ScheduleHandler) GetQuote(w http.ResponseWriter, r *http.Request) {
	quote, err := h.service.GetQuote(r.Context(), mux.Vars(r)["quoteId"])
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, quote)
}

func (h *ScheduleHandler) respondSchedule(w http.ResponseWriter, r *http.Request, in domain.LoanInputs) {
	result, err := h.service.Calculate(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, domain.ScheduleResponse{
		Inputs:     in,
		Schedule:   result,
		ShareQuery: EncodeQuery(in),
	})
}

// decode reads and validates a JSON body into dest, writing a 400 on failure.
func (h *ScheduleHandler) decode(w http.ResponseWriter, r *http.Request, dest interface{}) bool {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dest); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return false
	}

	if err := h.validator.Struct(dest); err != nil {
		be := customError.WrapInvalidLoanInputs(err)
		response.ErrorWithCode(w, http.StatusBadRequest, be.Code, be.Message, err)
		return false
	}

	return true
}

func writeError(w http.ResponseWriter, err error) {
	var be *customError.BusinessError
	if !errors.As(err, &be) {
		response.InternalServerError(w, "Internal server error", err)
		return
	}

	status := http.StatusInternalServerError
	switch be.Code {
	case customError.ErrCodeInvalidLoanInputs, customError.ErrCodeTermTooLong, customError.ErrCodeInvalidQuoteID:
		status = http.StatusBadRequest
	case customError.ErrCodeQuoteNotFound:
		status = http.StatusNotFound
	}

	// don't leak driver errors to clients
	var detail error
	if status != http.StatusInternalServerError {
		detail = be.Err
	}
	response.ErrorWithCode(w, status, be.Code, be.Message, detail)
}
