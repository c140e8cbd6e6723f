// Package domainerrors provides coded errors for the subscription core.
//
// Every failure that crosses the service boundary carries a Code. Handlers never
// branch on concrete error types; they ask HasCode or let the HTTP boundary map
// the code to a stable client-facing type and status. Unclassified errors degrade
// to the generic service-error response instead of leaking internals.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies a kind of failure. Codes are stable and machine-readable.
type Code string

const (
	// CodeValidation marks input rejected before any persistence happened.
	CodeValidation Code = "validation_error"
	// CodeUnauthorized marks an expected, client-triggerable authorization
	// failure such as an unknown confirmation token.
	CodeUnauthorized Code = "authorization_error"
	// CodeNotFound marks a missing entity.
	CodeNotFound Code = "not_found"
	// CodeConflict marks a uniqueness conflict the client can act on.
	CodeConflict Code = "conflict"
	// CodeDatabase marks a persistence failure; the transaction was aborted.
	CodeDatabase Code = "database_error"
	// CodeUnexpected marks a failure after the transaction committed, or any
	// fault that fits no other kind.
	CodeUnexpected Code = "unexpected_error"
)

// Error is a coded error with an optional wrapped cause.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// New creates a coded error without a cause.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying cause. The cause stays
// reachable through errors.Is / errors.As for server-side logging.
func Wrap(cause error, code Code, message string) error {
	if cause == nil {
		return nil
	}
	return &Error{Code: code, Message: message, cause: cause}
}

// HasCode reports whether any error in the chain carries the given code.
func HasCode(err error, code Code) bool {
	var coded *Error
	for errors.As(err, &coded) {
		if coded.Code == code {
			return true
		}
		err = coded.cause
	}
	return false
}

// CodeOf returns the outermost code in the chain, or CodeUnexpected when the
// error carries no classification at all.
func CodeOf(err error) Code {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code
	}
	return CodeUnexpected
}

// ResponseType maps a code to the stable type string clients see.
func ResponseType(code Code) string {
	switch code {
	case CodeValidation:
		return "VALIDATION_ERROR"
	case CodeUnauthorized:
		return "AUTHORIZATION_ERROR"
	case CodeNotFound:
		return "NOT_FOUND"
	case CodeConflict:
		return "CONFLICT"
	default:
		return "SERVICE_ERROR"
	}
}

// ToHTTPStatus maps a code to its HTTP status.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
