// Package errors provides structured error types for swiftdeps.
//
// Every fatal condition of a run maps to exactly one [Code], so callers can
// tell a bad environment from bad input without parsing messages:
//   - CONFIGURATION_ERROR: required run metadata is missing
//   - DECODE_ERROR: the dependency tree or snapshot is not well-formed
//   - INVALID_URL: a dependency's source URL cannot be parsed
//   - DEPENDENCY_CYCLE: a package transitively depends on itself
//   - NETWORK_ERROR / UNAUTHORIZED: snapshot submission failures
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidURL, "invalid URL for package %s", id)
//	if errors.Is(err, errors.ErrCodeInvalidURL) {
//	    // Handle bad input
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeDecode, origErr, "read dependency tree")
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Run setup errors
	ErrCodeConfiguration Code = "CONFIGURATION_ERROR"

	// Input errors
	ErrCodeDecode       Code = "DECODE_ERROR"
	ErrCodeInvalidURL   Code = "INVALID_URL"
	ErrCodeCycle        Code = "DEPENDENCY_CYCLE"
	ErrCodeInvalidInput Code = "INVALID_INPUT"

	// Submission errors
	ErrCodeNetwork      Code = "NETWORK_ERROR"
	ErrCodeUnauthorized Code = "UNAUTHORIZED"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
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
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
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
