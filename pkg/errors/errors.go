// Package errors provides structured error types for statenet.
//
// Every fatal condition raised by the pipeline carries a machine-readable
// [Code] so the CLI (and tests) can tell the failure classes apart:
//
//   - INVALID_FORMAT: a malformed record (bad delimiter, field count, number, state or link line)
//   - INVALID_SEQUENCE: an itinerary whose legs are not a contiguous, connected chain
//   - INVALID_CONFIG: an unsupported Markov order or another invalid parameter
//   - UNKNOWN_REFERENCE: a link that points at a node missing from the node table
//
// Paths dropped by a weight or length threshold are not errors; they are
// counted and reported by the stage that drops them.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidConfig, "order not supported: %d", order)
//	if errors.Is(err, errors.ErrCodeInvalidConfig) {
//	    // Handle configuration error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidFormat, origErr, "line %d", n)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for the pipeline failure classes.
const (
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeInvalidSequence  Code = "INVALID_SEQUENCE"
	ErrCodeInvalidConfig    Code = "INVALID_CONFIG"
	ErrCodeUnknownReference Code = "UNKNOWN_REFERENCE"

	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"
	ErrCodeInternal     Code = "INTERNAL_ERROR"
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

// Format reports a malformed line. lineNr is 1-based; pass 0 when the
// problem is not tied to a line.
func Format(lineNr int, format string, args ...any) *Error {
	msg := fmt.Sprintf(format, args...)
	if lineNr > 0 {
		msg = fmt.Sprintf("line %d: %s", lineNr, msg)
	}
	return &Error{Code: ErrCodeInvalidFormat, Message: msg}
}

// Config reports an invalid parameter.
func Config(format string, args ...any) *Error {
	return New(ErrCodeInvalidConfig, format, args...)
}

// Reference reports a link pointing at an unknown node.
func Reference(format string, args ...any) *Error {
	return New(ErrCodeUnknownReference, format, args...)
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

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// SequenceError describes an itinerary whose legs could not be chained.
// It unwraps to an *Error with code ErrCodeInvalidSequence.
type SequenceError struct {
	ItinID string
	Reason string
	Legs   []string // rendered as "seq:source->target"
}

// Error implements the error interface.
func (e *SequenceError) Error() string {
	return fmt.Sprintf("%s: itinerary %s: %s in legs %v", ErrCodeInvalidSequence, e.ItinID, e.Reason, e.Legs)
}

// Unwrap exposes the coded error so Is(err, ErrCodeInvalidSequence) holds.
func (e *SequenceError) Unwrap() error {
	return New(ErrCodeInvalidSequence, "itinerary %s: %s", e.ItinID, e.Reason)
}
