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
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"
	ErrFileAccess    ErrorCode = "FILE_ACCESS"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Flavor declaration errors
	ErrMalformedConstraint ErrorCode = "MALFORMED_CONSTRAINT"
	ErrMalformedSource     ErrorCode = "MALFORMED_SOURCE"
	ErrSourceCollision     ErrorCode = "SOURCE_COLLISION"
	ErrManifestParse       ErrorCode = "MANIFEST_PARSE"

	// Lock file errors
	ErrLockFormat ErrorCode = "LOCK_FORMAT"

	// Repository errors
	ErrRepoAccess   ErrorCode = "REPO_ACCESS"
	ErrUnresolvable ErrorCode = "UNRESOLVABLE_CONSTRAINT"

	// Deployment errors
	ErrDeployment ErrorCode = "DEPLOYMENT"
)

// FlavorError represents a structured error with code and details
type FlavorError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *FlavorError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *FlavorError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *FlavorError) Is(target error) bool {
	var targetErr *FlavorError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new FlavorError with the given code and message
func New(code ErrorCode, message string) *FlavorError {
	return &FlavorError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new FlavorError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *FlavorError {
	return &FlavorError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a FlavorError
func Wrap(err error, code ErrorCode, message string) *FlavorError {
	if err == nil {
		return nil
	}
	return &FlavorError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *FlavorError {
	if err == nil {
		return nil
	}
	return &FlavorError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *FlavorError) WithDetail(key string, value interface{}) *FlavorError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *FlavorError) WithDetails(details map[string]interface{}) *FlavorError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var flavorErr *FlavorError
	if errors.As(err, &flavorErr) {
		return flavorErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a FlavorError
func GetErrorCode(err error) ErrorCode {
	var flavorErr *FlavorError
	if errors.As(err, &flavorErr) {
		return flavorErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a FlavorError
func GetErrorDetails(err error) map[string]interface{} {
	var flavorErr *FlavorError
	if errors.As(err, &flavorErr) {
		return flavorErr.Details
	}
	return nil
}
