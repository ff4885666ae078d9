// Package domainerrors provides coded errors for service boundaries.
//
// Services translate low-level failures (store sentinels, driver errors,
// transport errors) into coded errors at the point where they cross into
// domain logic. Handlers map codes onto HTTP status without inspecting
// error strings.
//
// Usage:
//
//	return nil, dErrors.New(dErrors.CodeNotFound, "provider not found")
//	return nil, dErrors.Wrap(err, dErrors.CodeInternal, "load provider")
//	if dErrors.HasCode(err, dErrors.CodeNotFound) { ... }
package domainerrors

import (
	"errors"
	"fmt"
)

// Code identifies the class of a domain error. Values are stable strings
// that appear verbatim in API error payloads.
type Code string

const (
	CodeValidation         Code = "validation_error"
	CodeInvalidInput       Code = "invalid_input"
	CodeBadRequest         Code = "bad_request"
	CodeNotFound           Code = "not_found"
	CodeConflict           Code = "conflict"
	CodeTimeout            Code = "timeout"
	CodeUnavailable        Code = "unavailable"
	CodeInvariantViolation Code = "invariant_violation"
	CodeInternal           Code = "internal_error"
)

// Error is a coded error with an optional wrapped cause.
type Error struct {
	code Code
	msg  string
	err  error
}

// New returns a coded error with no underlying cause.
func New(code Code, msg string) *Error {
	return &Error{code: code, msg: msg}
}

// Wrap attaches a code and message to an underlying error. A nil err
// behaves like New so call sites don't need to branch.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{code: code, msg: msg, err: err}
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

func (e *Error) Unwrap() error {
	return e.err
}

// Code returns the error's own code.
func (e *Error) Code() Code {
	return e.code
}

// Message returns the human-readable message without the wrapped cause.
// Handlers use this so internal causes never leak into responses.
func (e *Error) Message() string {
	return e.msg
}

// CodeOf extracts the code from the outermost coded error in err's chain.
// Uncoded errors report CodeInternal.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.code
	}
	return CodeInternal
}

// HasCode reports whether the outermost coded error in err's chain carries
// the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.code == code
	}
	return false
}

// Is is shorthand for HasCode, reading naturally in test assertions.
func Is(err error, code Code) bool {
	return HasCode(err, code)
}
