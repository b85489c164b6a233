// Package errors provides coded errors for caller-facing classification.
// Stores speak in sentinel values; the service layer wraps them here so
// callers can branch on the kind of failure without string matching.
package errors

import (
	"errors"
	"fmt"
)

// Code classifies an error for the caller.
type Code string

const (
	// CodeValidation marks a malformed record or query argument. Not
	// retryable; the input has to change.
	CodeValidation Code = "validation"
	// CodeConflict marks a duplicate event id. Callers may treat this as a
	// benign idempotent-retry signal.
	CodeConflict Code = "conflict"
	// CodeNotFound marks a missing record.
	CodeNotFound Code = "not_found"
	// CodeUnavailable marks a transient infrastructure failure. Retry
	// policy belongs to the caller, never to the store.
	CodeUnavailable Code = "unavailable"
	// CodeSchemaInit marks a failed administrative reset. Fatal; surfaced
	// to the operator.
	CodeSchemaInit Code = "schema_init"
	// CodeInternal marks everything else.
	CodeInternal Code = "internal"
)

// Error carries a code, a human-readable message, and an optional cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds a coded error with no underlying cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error. The cause stays
// reachable through errors.Is / errors.As.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// CodeOf reports the code of err, or CodeInternal when err carries none.
func CodeOf(err error) Code {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code
	}
	return CodeInternal
}

// HasCode reports whether err (or anything it wraps) carries the given code.
func HasCode(err error, code Code) bool {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code == code
	}
	return false
}
