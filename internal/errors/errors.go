// Package errors provides structured errors for the statekit tooling.
package errors

import "fmt"

// Category represents the type of error.
type Category string

const (
	CategoryConfig   Category = "config"
	CategoryProtocol Category = "protocol"
	CategoryRuntime  Category = "runtime"
	CategoryCLI      Category = "cli"
)

// Error is a categorized error with an optional wrapped cause.
type Error struct {
	// Category is the error type (config, protocol, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("%s: %s: %s", e.Category, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("%s: %s", e.Category, e.Message)
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Wrapped
}

// Newf creates an Error with a formatted message.
func Newf(category Category, format string, args ...any) *Error {
	return &Error{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// Wrap attaches a category and message to an underlying error.
// Returns nil if err is nil.
func Wrap(err error, category Category, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		Category: category,
		Message:  message,
		Wrapped:  err,
	}
}
