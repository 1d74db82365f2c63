// Package errors provides typed errors for ban-comments
package errors

import (
	"errors"
	"fmt"
)

// Kind represents the category of error
type Kind int

const (
	// ErrConfig indicates a configuration error
	ErrConfig Kind = iota
	// ErrParse indicates a source file could not be tokenized
	ErrParse
	// ErrIO indicates a filesystem read or write failure
	ErrIO
	// ErrValidation indicates an input validation error
	ErrValidation
	// ErrFix indicates a fix could not be applied
	ErrFix
)

// Exit codes returned by the CLI.
const (
	ExitOK       = 0
	ExitProblems = 1
	ExitFatal    = 2
)

// Error is the base error type for all ban-comments errors
type Error struct {
	Kind    Kind
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", kindString(e.Kind), e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", kindString(e.Kind), e.Message)
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error
func New(kind Kind, message string, cause error) *Error {
	return &Error{
		Kind:    kind,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	e.Context[key] = value
	return e
}

// IsKind checks if an error is of a specific kind
func IsKind(err error, kind Kind) bool {
	var e *Error
	if err == nil {
		return false
	}
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// ExitCode maps an error to the process exit code.
// Every error that reaches the CLI boundary is fatal; lint problems are
// reported through results, not errors.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var problems *ProblemsError
	if errors.As(err, &problems) {
		return ExitProblems
	}
	return ExitFatal
}

// ProblemsError signals that checking succeeded but found problems over the
// allowed threshold.
type ProblemsError struct {
	Errors   int
	Warnings int
	// MaxWarnings is -1 when no warning threshold applies.
	MaxWarnings int
}

func (e *ProblemsError) Error() string {
	if e.Errors == 0 && e.MaxWarnings >= 0 {
		return fmt.Sprintf("too many warnings (%d), maximum allowed is %d", e.Warnings, e.MaxWarnings)
	}
	return fmt.Sprintf("%d error(s), %d warning(s)", e.Errors, e.Warnings)
}

func kindString(k Kind) string {
	switch k {
	case ErrConfig:
		return "CONFIG"
	case ErrParse:
		return "PARSE"
	case ErrIO:
		return "IO"
	case ErrValidation:
		return "VALIDATION"
	case ErrFix:
		return "FIX"
	default:
		return "UNKNOWN"
	}
}

// Convenience functions for common errors

// ConfigError creates a configuration error
func ConfigError(message string, cause error) *Error {
	return New(ErrConfig, message, cause)
}

// ParseError creates a tokenizer error
func ParseError(message string, cause error) *Error {
	return New(ErrParse, message, cause)
}

// IOError creates a filesystem error
func IOError(message string, cause error) *Error {
	return New(ErrIO, message, cause)
}

// ValidationError creates a validation error
func ValidationError(message string, cause error) *Error {
	return New(ErrValidation, message, cause)
}

// FixError creates a fix application error
func FixError(message string, cause error) *Error {
	return New(ErrFix, message, cause)
}
