package apperror

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Code classifies a business error so handlers can map it to an HTTP status
// without string matching.
type Code string

const (
	CodeNotFound           Code = "NOT_FOUND"
	CodeInvalidState       Code = "INVALID_STATE"
	CodeInsufficientAmount Code = "INSUFFICIENT_AMOUNT"
	CodeConflict           Code = "CONFLICT"
	CodeUnauthenticated    Code = "UNAUTHENTICATED"
	CodeUnauthorized       Code = "UNAUTHORIZED"
	CodeValidation         Code = "VALIDATION"
)

type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string { return e.Message }

// E builds a typed business error.
func E(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func NotFound(message string) *Error           { return E(CodeNotFound, message) }
func InvalidState(message string) *Error       { return E(CodeInvalidState, message) }
func InsufficientAmount(message string) *Error { return E(CodeInsufficientAmount, message) }
func Conflict(message string) *Error           { return E(CodeConflict, message) }
func Unauthenticated(message string) *Error    { return E(CodeUnauthenticated, message) }
func Unauthorized(message string) *Error       { return E(CodeUnauthorized, message) }
func Validation(message string) *Error         { return E(CodeValidation, message) }

// HTTPStatus maps the error code to an HTTP status code.
func (e *Error) HTTPStatus() int {
	switch e.Code {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeUnauthenticated:
		return http.StatusUnauthorized
	case CodeUnauthorized:
		return http.StatusForbidden
	case CodeInvalidState, CodeInsufficientAmount, CodeValidation:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Write serializes err as the JSON error response. Unclassified errors are
// reported as a bare 500 so internals never leak to the client.
func Write(w http.ResponseWriter, err error) {
	var appErr *Error
	if !errors.As(err, &appErr) {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.HTTPStatus())
	_ = json.NewEncoder(w).Encode(appErr)
}

// IsCode reports whether err is an *Error with the given code.
func IsCode(err error, code Code) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Code == code
}
