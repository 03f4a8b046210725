// Package errors provides structured error types for cargorecipe.
//
// This package defines error codes and types that enable:
//   - Telling fatal failures apart from per-dependency classification misses
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - MISSING_*: A package identifier lacks a required component
//   - *_NOT_FOUND: Resource not found
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMissingVersion, "%s doesn't have version", name)
//	if errors.IsClassificationMiss(err) {
//	    // Report and skip this dependency
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeResolution, origErr, "cargo metadata failed for %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidManifest Code = "INVALID_MANIFEST"
	ErrCodeInvalidStrategy Code = "INVALID_STRATEGY"

	// Resource not found errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Toolchain errors
	ErrCodeResolution  Code = "RESOLUTION_FAILED"
	ErrCodeToolVersion Code = "TOOL_VERSION"

	// Classification misses (per dependency, never fatal)
	ErrCodeMissingKind      Code = "MISSING_KIND"
	ErrCodeMissingURL       Code = "MISSING_URL"
	ErrCodeMissingName      Code = "MISSING_NAME"
	ErrCodeMissingVersion   Code = "MISSING_VERSION"
	ErrCodeMissingReference Code = "MISSING_REFERENCE"
	ErrCodeUnsupportedKind  Code = "UNSUPPORTED_KIND"
	ErrCodeUnrecognized     Code = "UNRECOGNIZED_ID"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// classificationCodes lists the codes that describe a single unclassifiable
// package identifier.
var classificationCodes = map[Code]bool{
	ErrCodeMissingKind:      true,
	ErrCodeMissingURL:       true,
	ErrCodeMissingName:      true,
	ErrCodeMissingVersion:   true,
	ErrCodeMissingReference: true,
	ErrCodeUnsupportedKind:  true,
	ErrCodeUnrecognized:     true,
}

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

// IsClassificationMiss reports whether err describes a package identifier
// that could not be classified. Such errors are reported per dependency and
// never abort a run.
func IsClassificationMiss(err error) bool {
	return classificationCodes[GetCode(err)]
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
