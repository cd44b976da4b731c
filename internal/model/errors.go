package model

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorCode is the closed set of error discriminators surfaced to callers.
type ErrorCode string

const (
	ErrCompanyNotFound  ErrorCode = "company_not_found"
	ErrCompanyAmbiguous ErrorCode = "company_ambiguous"
	ErrMetricNotFound   ErrorCode = "metric_not_found"
	ErrRatioNotFound    ErrorCode = "ratio_not_found"
	ErrNoData           ErrorCode = "no_data"
	ErrRateLimited      ErrorCode = "rate_limited"
	ErrAPI              ErrorCode = "api_error"
	ErrValidation       ErrorCode = "validation"
)

// HTTPStatus maps an error code to the status used by the web layer.
func (c ErrorCode) HTTPStatus() int {
	switch c {
	case ErrCompanyNotFound, ErrNoData:
		return http.StatusNotFound
	case ErrCompanyAmbiguous, ErrMetricNotFound, ErrRatioNotFound, ErrValidation:
		return http.StatusBadRequest
	case ErrRateLimited:
		return http.StatusTooManyRequests
	case ErrAPI:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Error is the structured failure result for every engine operation.
type Error struct {
	Code          ErrorCode        `json:"code"`
	Message       string           `json:"message"`
	Suggestions   []string         `json:"suggestions,omitempty"`
	Available     []string         `json:"available,omitempty"`
	ConceptsTried []ConceptAttempt `json:"concepts_tried,omitempty"`
}

func (e *Error) Error() string {
	if len(e.Suggestions) > 0 {
		return fmt.Sprintf("%s: %s (did you mean: %s)", e.Code, e.Message, strings.Join(e.Suggestions, ", "))
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewError builds a taxonomy error with a formatted message.
func NewError(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// AsError extracts a taxonomy *Error from an error chain. Anything else is
// folded into an api_error so no raw error escapes to callers.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Code: ErrAPI, Message: err.Error()}
}
