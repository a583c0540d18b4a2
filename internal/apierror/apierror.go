// Package apierror provides the typed error taxonomy shared by services and
// the standardized response envelope handlers write to clients. Internal
// details (stack traces, DB errors) never leave through this package.
package apierror

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies every recoverable domain failure.
type Code string

const (
	CodeNotFound     Code = "not_found"     // entity id doesn't resolve
	CodeConflict     Code = "conflict"      // uniqueness or invariant violation
	CodeInvalidState Code = "invalid_state" // state-machine rule violation
	CodeForbidden    Code = "forbidden_transition"
	CodeInsufficient Code = "insufficient_stock"
	CodeValidation   Code = "validation_error"
)

// Error is a typed, recoverable domain error with a human-readable reason.
type Error struct {
	Code   Code   `json:"code"`
	Detail string `json:"detail"`
}

func (e *Error) Error() string { return e.Detail }

func NotFound(format string, args ...interface{}) *Error {
	return &Error{Code: CodeNotFound, Detail: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...interface{}) *Error {
	return &Error{Code: CodeConflict, Detail: fmt.Sprintf(format, args...)}
}

func InvalidState(format string, args ...interface{}) *Error {
	return &Error{Code: CodeInvalidState, Detail: fmt.Sprintf(format, args...)}
}

func Forbidden(format string, args ...interface{}) *Error {
	return &Error{Code: CodeForbidden, Detail: fmt.Sprintf(format, args...)}
}

func InsufficientStock(format string, args ...interface{}) *Error {
	return &Error{Code: CodeInsufficient, Detail: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...interface{}) *Error {
	return &Error{Code: CodeValidation, Detail: fmt.Sprintf(format, args...)}
}

// Is lets callers match by code: errors.Is(err, &Error{Code: CodeNotFound}).
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// HTTPStatus maps a domain error to its response status. Unknown errors map
// to 500; the handler layer replaces their detail with a generic message.
func HTTPStatus(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}
	switch e.Code {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeForbidden:
		return http.StatusForbidden
	case CodeInvalidState, CodeInsufficient:
		return http.StatusBadRequest
	case CodeValidation:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}
