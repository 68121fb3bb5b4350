// Package errors provides structured error types for spriteforge.
//
// Every pipeline stage reports failures through an [Error] carrying a
// machine-readable [Code], so the batch runner can tell a benign skip from a
// fatal per-sprite failure without string matching.
//
// # Error Codes
//
//   - EMPTY_CONTENT: the crop stage found no opaque pixels (a skip, not a failure)
//   - DEGENERATE_SCALE: a resample target resolved to zero or negative pixels
//   - MALFORMED_INPUT: an upstream image with missing channel data or bad dimensions
//   - INVALID_*: configuration or argument validation failures
//   - FILE_NOT_FOUND / IO_ERROR: filesystem problems
//
// # Usage
//
//	err := errors.New(errors.ErrCodeDegenerateScale, "ratio %.2f on %dx%d", r, w, h)
//	if errors.Is(err, errors.ErrCodeEmptyContent) {
//	    // log and move on
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeIO, origErr, "write %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Pipeline errors
	ErrCodeEmptyContent    Code = "EMPTY_CONTENT"
	ErrCodeDegenerateScale Code = "DEGENERATE_SCALE"
	ErrCodeMalformedInput  Code = "MALFORMED_INPUT"

	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"
	ErrCodeInvalidCategory Code = "INVALID_CATEGORY"
	ErrCodeInvalidName     Code = "INVALID_NAME"
	ErrCodeInvalidPath     Code = "INVALID_PATH"

	// Filesystem errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"
	ErrCodeIO           Code = "IO_ERROR"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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

// Is lets errors.Is match two *Error values by code, so sentinel values such as
// anchor.ErrEmptyContent compare equal to freshly built errors with the same code.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code && t.Message == "" && t.Cause == nil
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

// Sentinel returns a message-less Error usable as an errors.Is target for code.
func Sentinel(code Code) *Error {
	return &Error{Code: code}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
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
