package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// StructuralError indicates the machine specification itself is invalid
	StructuralError ErrorCode = "STRUCTURAL_ERROR"
	// ConfigurationError indicates a requested configuration conflicts with the loaded spec
	ConfigurationError ErrorCode = "CONFIGURATION_ERROR"
	// StateError indicates an operation was attempted before its precondition held
	StateError ErrorCode = "STATE_ERROR"
	// MessageError indicates a message contains characters the machine cannot process
	MessageError ErrorCode = "MESSAGE_ERROR"
	// PersistenceError indicates a snapshot could not be written, read or parsed
	PersistenceError ErrorCode = "PERSISTENCE_ERROR"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// EngineError represents an engine failure with a stable code and a
// message stating what is wrong, where, and how to fix it.
type EngineError struct {
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	cause   error       // Underlying error (not exported to JSON)
}

// New creates a new EngineError
func New(code ErrorCode, message string) *EngineError {
	return &EngineError{Code: code, Message: message}
}

// Newf creates a new EngineError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *EngineError {
	return &EngineError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a new EngineError with an underlying cause
func Wrap(code ErrorCode, message string, cause error) *EngineError {
	return &EngineError{Code: code, Message: message, cause: cause}
}

// Error implements the error interface
func (e *EngineError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *EngineError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *EngineError) WithDetails(details interface{}) *EngineError {
	e.Details = details
	return e
}

// CodeOf returns the ErrorCode carried by err, or InternalError when err
// is not an EngineError.
func CodeOf(err error) ErrorCode {
	var ee *EngineError
	if errors.As(err, &ee) {
		return ee.Code
	}
	return InternalError
}

// Is reports whether err carries the given code.
func Is(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}
