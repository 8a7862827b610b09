package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrQuoteNotFound     = errors.New("quote not found")
	ErrInvalidLoanInputs = errors.New("invalid loan inputs")
	ErrTermTooLong       = errors.New("term exceeds maximum")
	ErrInvalidQuoteID    = errors.New("invalid quote id")
	ErrCacheMiss         = errors.New("cache miss")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeQuoteNotFound     = "QUOTE_NOT_FOUND"
	ErrCodeInvalidLoanInputs = "INVALID_LOAN_INPUTS"
	ErrCodeTermTooLong       = "TERM_TOO_LONG"
	ErrCodeInvalidQuoteID    = "INVALID_QUOTE_ID"
	ErrCodeDatabaseError     = "DATABASE_ERROR"
	ErrCodeCacheError        = "CACHE_ERROR"
)

// CodeOf returns the business code carried by err, or "" if there is none.
func CodeOf(err error) string {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}

// Wrap common errors with business context
func WrapQuoteNotFound(quoteID string) *BusinessError {
	return NewBusinessError(
		ErrCodeQuoteNotFound,
		fmt.Sprintf("Quote with ID %s not found", quoteID),
		ErrQuoteNotFound,
	)
}

func WrapInvalidQuoteID(quoteID string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidQuoteID,
		fmt.Sprintf("%q is not a valid quote ID", quoteID),
		ErrInvalidQuoteID,
	)
}

func WrapInvalidLoanInputs(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidLoanInputs,
		"loan inputs failed validation",
		errors.Join(ErrInvalidLoanInputs, err),
	)
}

func WrapTermTooLong(term, max int) *BusinessError {
	return NewBusinessError(
		ErrCodeTermTooLong,
		fmt.Sprintf("Term of %d months exceeds the maximum of %d", term, max),
		ErrTermTooLong,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"Cache operation failed",
		err,
	)
}
