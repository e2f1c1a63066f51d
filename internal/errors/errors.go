package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes for categorizing errors
const (
	// ErrConfig marks a configured resource that does not exist (interface,
	// volume) or a config file that can't be read.
	ErrConfig = "CONFIG"
	// ErrUnavailable marks a metric the host simply doesn't report
	// (no battery, no load average on this platform).
	ErrUnavailable = "UNAVAILABLE"
	// ErrTransient marks a single failed read that may succeed next tick.
	ErrTransient = "TRANSIENT"
	ErrExec      = "EXEC"
)

// Error represents a structured error with code, message, suggestion, and optional cause.
// Rendered as:
//
//	✗ <What failed>
//
//	  <Why it failed - technical details>
//
//	  <How to fix it - actionable steps>
type Error struct {
	Code       string
	Message    string
	Suggestion string
	Cause      error
}

// New creates a new structured error with the given code, message, and suggestion.
func New(code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
	}
}

// Wrap wraps an existing error with a message, defaulting to ErrTransient code.
func Wrap(err error, message string) *Error {
	return &Error{
		Code:    ErrTransient,
		Message: message,
		Cause:   err,
	}
}

// WrapWithCode wraps an existing error with a specific code, message, and suggestion.
func WrapWithCode(err error, code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
		Cause:      err,
	}
}

// Unavailable creates an ErrUnavailable error for a metric the host doesn't report.
func Unavailable(metric string) *Error {
	return &Error{
		Code:    ErrUnavailable,
		Message: fmt.Sprintf("%s is not reported on this host", metric),
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	// First line: failure symbol + main message
	b.WriteString(fmt.Sprintf("✗ %s\n", e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Cause.Error()))
	}

	if e.Suggestion != "" {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Suggestion))
	}

	return b.String()
}

// Unwrap returns the underlying cause for use with errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsCode checks if an error is a structured Error with the given code.
func IsCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var hdErr *Error
	if errors.As(err, &hdErr) {
		return hdErr.Code == code
	}
	return false
}

// Summary returns a single-line form of err suitable for a narrow panel.
// Structured errors collapse to "message (suggestion)"; anything else is
// the first line of err.Error().
func Summary(err error) string {
	if err == nil {
		return ""
	}
	var hdErr *Error
	if errors.As(err, &hdErr) {
		if hdErr.Suggestion != "" {
			return hdErr.Message + " (" + hdErr.Suggestion + ")"
		}
		return hdErr.Message
	}
	msg := err.Error()
	if idx := strings.IndexByte(msg, '\n'); idx >= 0 {
		msg = msg[:idx]
	}
	return msg
}
