// Package errs defines the typed failures raised by the service layer and
// mapped to HTTP responses by the handlers.  Every error carries the status
// code it should produce, so handlers never invent business logic: they
// bind input, call a service, and translate whatever comes back.
package errs

import (
	"errors"
	"net/http"
)

// Error is a domain failure with an HTTP status attached.
type Error struct {
	Code    int    // HTTP status code this failure maps to
	Message string // client-facing message
}

func (e *Error) Error() string { return e.Message }

// Validation reports malformed or missing input (400).
func Validation(msg string) *Error { return &Error{Code: http.StatusBadRequest, Message: msg} }

// Unauthorized reports failed authentication (401).
func Unauthorized(msg string) *Error { return &Error{Code: http.StatusUnauthorized, Message: msg} }

// Forbidden reports a blocked account, self-modification or missing admin
// rights (403).
func Forbidden(msg string) *Error { return &Error{Code: http.StatusForbidden, Message: msg} }

// NotFound reports that no matching row exists (404).
func NotFound(msg string) *Error { return &Error{Code: http.StatusNotFound, Message: msg} }

// Conflict reports a uniqueness violation (409).
func Conflict(msg string) *Error { return &Error{Code: http.StatusConflict, Message: msg} }

// Internal reports an unrecoverable storage or infrastructure failure (500).
func Internal(msg string) *Error { return &Error{Code: http.StatusInternalServerError, Message: msg} }

// Status returns the HTTP status for err, defaulting to 500 for anything
// that is not an *Error (raw storage errors must not leak their text, only
// their severity).
func Status(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return http.StatusInternalServerError
}

// Message returns the client-facing message for err.  Untyped errors are
// masked behind a generic message.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal server error"
}
