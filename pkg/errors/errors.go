package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigWrite ErrorCode = "CONFIG_WRITE"

	// Template errors
	ErrTemplateNotFound ErrorCode = "TEMPLATE_NOT_FOUND"
	ErrTemplateRead     ErrorCode = "TEMPLATE_READ"
	ErrTemplateParse    ErrorCode = "TEMPLATE_PARSE"

	// Array errors
	ErrArraySchema ErrorCode = "ARRAY_SCHEMA"

	// Render errors
	ErrRenderWrite ErrorCode = "RENDER_WRITE"
	ErrOutputDir   ErrorCode = "OUTPUT_DIR"
)

// DotgenError represents a structured error with code and details
type DotgenError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *DotgenError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *DotgenError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *DotgenError) Is(target error) bool {
	var targetErr *DotgenError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new DotgenError with the given code and message
func New(code ErrorCode, message string) *DotgenError {
	return &DotgenError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new DotgenError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *DotgenError {
	return &DotgenError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a DotgenError
func Wrap(err error, code ErrorCode, message string) *DotgenError {
	if err == nil {
		return nil
	}
	return &DotgenError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *DotgenError {
	if err == nil {
		return nil
	}
	return &DotgenError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *DotgenError) WithDetail(key string, value interface{}) *DotgenError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var dgErr *DotgenError
	if errors.As(err, &dgErr) {
		return dgErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a DotgenError
func GetErrorCode(err error) ErrorCode {
	var dgErr *DotgenError
	if errors.As(err, &dgErr) {
		return dgErr.Code
	}
	return ErrUnknown
}
