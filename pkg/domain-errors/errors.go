// Package domainerrors carries coded, typed errors across layer boundaries.
// Domain and store code attach a Code describing the failure class; callers
// branch on codes with HasCode instead of matching error strings.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies a domain error for programmatic handling.
type Code string

const (
	// CodeValidation marks malformed primitive input rejected by a value
	// object constructor.
	CodeValidation Code = "validation"

	// CodeInvalidInput marks malformed identifiers or arguments at a trust
	// boundary (empty strings, nil UUIDs, unparseable input).
	CodeInvalidInput Code = "invalid_input"

	// CodeInvariantViolation marks a business-rule violation: the input was
	// well-formed but the operation's precondition does not hold.
	CodeInvariantViolation Code = "invariant_violation"

	// CodeNotFound marks a missing entity surfaced to the domain layer.
	CodeNotFound Code = "not_found"

	// CodeConflict marks a concurrent-modification conflict.
	CodeConflict Code = "conflict"

	// CodeTimeout marks a cancelled or deadline-exceeded operation.
	CodeTimeout Code = "timeout"

	// CodeInternal marks unexpected failures (storage, serialization).
	CodeInternal Code = "internal"
)

// Error is a coded error with an optional wrapped cause.
type Error struct {
	code    Code
	message string
	cause   error
}

// New constructs a coded error with no cause.
func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, message string) *Error {
	return &Error{code: code, message: message, cause: err}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Code returns the error's classification.
func (e *Error) Code() Code {
	return e.code
}

// Unwrap exposes the cause for errors.Is / errors.As chains.
func (e *Error) Unwrap() error {
	return e.cause
}

// HasCode reports whether any error in err's chain carries the given code.
func HasCode(err error, code Code) bool {
	var coded *Error
	for errors.As(err, &coded) {
		if coded.code == code {
			return true
		}
		err = coded.cause
		if err == nil {
			return false
		}
	}
	return false
}

// Is is shorthand for HasCode; reads naturally at call sites asserting on a
// single expected code.
func Is(err error, code Code) bool {
	return HasCode(err, code)
}
