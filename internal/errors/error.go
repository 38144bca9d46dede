package errors

import (
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryRuntime   Category = "runtime"
	CategoryHydration Category = "hydration"
	CategoryConfig    Category = "config"
	CategoryExport    Category = "export"
	CategoryServer    Category = "server"
	CategoryCLI       Category = "cli"
)

// FeatherError is a structured error with a code, an explanation and a fix
// suggestion.
type FeatherError struct {
	// Code is a unique error identifier (e.g., "E040").
	Code string

	// Category is the error type (runtime, hydration, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *FeatherError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *FeatherError) Unwrap() error {
	return e.Wrapped
}

// WithSuggestion adds a fix suggestion to the error.
func (e *FeatherError) WithSuggestion(s string) *FeatherError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *FeatherError) WithDetail(d string) *FeatherError {
	e.Detail = d
	return e
}

// WithDetailf is WithDetail with fmt formatting.
func (e *FeatherError) WithDetailf(format string, args ...any) *FeatherError {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// Wrap wraps another error.
func (e *FeatherError) Wrap(err error) *FeatherError {
	e.Wrapped = err
	return e
}

// New creates a FeatherError from a registered error code.
func New(code string) *FeatherError {
	template, ok := registry[code]
	if !ok {
		return &FeatherError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &FeatherError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		DocURL:   template.DocURL,
	}
}

// Newf creates a new FeatherError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *FeatherError {
	return &FeatherError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a FeatherError.
// Errors that already are *FeatherError are returned unchanged.
func FromError(err error, code string) *FeatherError {
	if err == nil {
		return nil
	}
	if fe, ok := err.(*FeatherError); ok {
		return fe
	}
	return New(code).Wrap(err)
}

// Explain returns the long-form explanation registered for code.
func Explain(code string) string {
	return registry[code].Detail
}
