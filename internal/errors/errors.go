// Package errors provides structured error types for ls-trichart.
//
// Every failure that reaches a user surface (TUI, HTTP, CLI) carries a
// machine-readable Code so callers can map it to a message or status
// without string matching.
//
//	err := errors.New(errors.CodeInputFormat, "birth time must be HH:MM")
//	if errors.Is(err, errors.CodeInputFormat) {
//	    // show validation message
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

const (
	// Input validation errors
	CodeInputFormat  Code = "INPUT_FORMAT"
	CodeUnknownPlace Code = "UNKNOWN_PLACE"
	CodeInvalidCusps Code = "INVALID_CUSPS"

	// Calculation errors
	CodeHouseCalculation Code = "HOUSE_CALCULATION"
	CodeUnclassifiable   Code = "UNCLASSIFIABLE"
	CodeEphemeris        Code = "EPHEMERIS"

	// Setup errors
	CodeInvalidConfig Code = "INVALID_CONFIG"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// The outermost *Error in the chain decides.
func Is(err error, code Code) bool {
	return GetCode(err) == code
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the message without the code prefix or cause.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
