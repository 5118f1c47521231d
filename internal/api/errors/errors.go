package errors

import (
	"fmt"
	"net/http"

	"scamshield/internal/app/engine"
)

// ErrorKind represents different types of API errors
type ErrorKind string

const (
	KindValidation         ErrorKind = "validation"
	KindNotFound           ErrorKind = "not_found"
	KindConflict           ErrorKind = "conflict"
	KindInternal           ErrorKind = "internal"
	KindServiceUnavailable ErrorKind = "service_unavailable"
	KindBadRequest         ErrorKind = "bad_request"
	KindTimeout            ErrorKind = "timeout"
)

// APIError represents a structured API error response
type APIError struct {
	Kind        ErrorKind         `json:"kind"`
	Message     string            `json:"message"`
	Details     map[string]string `json:"details,omitempty"`
	Suggestions []string          `json:"suggestions,omitempty"`
	RequestID   string            `json:"request_id,omitempty"`
	Code        string            `json:"code,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// HTTPStatus returns the appropriate HTTP status code for the error kind
func (e *APIError) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindBadRequest:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindServiceUnavailable:
		return http.StatusServiceUnavailable
	case KindTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// NewValidationError creates a validation error with field details
func NewValidationError(message string, fields map[string]string) *APIError {
	return &APIError{
		Kind:    KindValidation,
		Message: message,
		Details: fields,
	}
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *APIError {
	return &APIError{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// NewInternalError creates an internal server error
func NewInternalError(message string) *APIError {
	return &APIError{
		Kind:    KindInternal,
		Message: message,
	}
}

// NewBadRequestError creates a bad request error
func NewBadRequestError(message string) *APIError {
	return &APIError{
		Kind:    KindBadRequest,
		Message: message,
	}
}

// NewServiceUnavailableError creates a service unavailable error
func NewServiceUnavailableError(message string) *APIError {
	return &APIError{
		Kind:    KindServiceUnavailable,
		Message: message,
	}
}

// FromEngineError converts a transcription pipeline error to an API error,
// preserving its code and remediation suggestions.
func FromEngineError(err error) *APIError {
	engErr, ok := engine.AsEngineError(err)
	if !ok {
		return NewInternalError(err.Error())
	}

	kind := KindInternal
	switch engErr.Code {
	case engine.CodeInvalidInput:
		kind = KindBadRequest
	case engine.CodeEngineUnavailable, engine.CodeTranscriptionUnavailable:
		kind = KindServiceUnavailable
	case engine.CodeTranscriptionTimeout:
		kind = KindTimeout
	case engine.CodeRequestActive:
		kind = KindConflict
	case engine.CodeEmptyTranscript, engine.CodeTranscriptionFailed:
		kind = KindServiceUnavailable
	}

	return &APIError{
		Kind:        kind,
		Message:     engErr.Message,
		Suggestions: engErr.Suggestions,
		Code:        engErr.Code,
	}
}
