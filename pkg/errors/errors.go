// Package errors provides structured error types for the stackflow engine.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library and the CLI
//   - Machine-readable error codes for programmatic handling
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The engine reports a small, fixed taxonomy:
//   - CYCLE_DETECTED: the connection graph is not acyclic
//   - UNKNOWN_NODE: a lookup or connection references an unregistered node
//   - UNKNOWN_PORT: a connection or update names a port the node lacks
//   - MALFORMED_TRANSFORM_RESULT: a transform omitted a declared output
//   - EMPTY_INPUT: an input resolved to zero values during alignment
//   - TYPE_MISMATCH: a value cannot be converted to the port's declared type
//   - TRANSFORM_FAILED: a transform returned an error
//
// Front-ends add INVALID_* and FILE_NOT_FOUND for their own inputs.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnknownNode, "node %s is not registered", id)
//	if errors.Is(err, errors.ErrCodeUnknownNode) {
//	    // Handle missing node
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeTransformFailed, origErr, "node %s", id)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Graph evaluation errors
	ErrCodeCycleDetected            Code = "CYCLE_DETECTED"
	ErrCodeUnknownNode              Code = "UNKNOWN_NODE"
	ErrCodeUnknownPort              Code = "UNKNOWN_PORT"
	ErrCodeMalformedTransformResult Code = "MALFORMED_TRANSFORM_RESULT"
	ErrCodeEmptyInput               Code = "EMPTY_INPUT"
	ErrCodeTypeMismatch             Code = "TYPE_MISMATCH"
	ErrCodeTransformFailed          Code = "TRANSFORM_FAILED"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidName   Code = "INVALID_NAME"

	// Resource not found errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

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
// The outermost *Error in the chain decides.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// Has reports whether any *Error in err's chain carries code.
// Unlike Is, it keeps unwrapping past outer errors with a different code,
// which is what callers want when a transform failure wraps a nested
// engine error.
func Has(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
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
