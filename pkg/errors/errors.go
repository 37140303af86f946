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
	ErrUnknown        ErrorCode = "UNKNOWN"
	ErrInternal       ErrorCode = "INTERNAL"
	ErrInvalidInput   ErrorCode = "INVALID_INPUT"
	ErrNotImplemented ErrorCode = "NOT_IMPLEMENTED"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Planning errors, always raised before the first filesystem mutation
	ErrParse    ErrorCode = "PARSE"
	ErrConflict ErrorCode = "CONFLICT"
	ErrCycle    ErrorCode = "CYCLE"
	ErrNoFiles  ErrorCode = "NO_FILES"

	// Interactive errors
	ErrConfirmationDeclined ErrorCode = "CONFIRMATION_DECLINED"
	ErrCollisionDeclined    ErrorCode = "COLLISION_DECLINED"
	ErrEditor               ErrorCode = "EDITOR"

	// FileSystem errors
	ErrIO           ErrorCode = "IO"
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
)

// MviError represents a structured error with code and details
type MviError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *MviError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *MviError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *MviError) Is(target error) bool {
	var targetErr *MviError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new MviError with the given code and message
func New(code ErrorCode, message string) *MviError {
	return &MviError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new MviError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *MviError {
	return &MviError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a MviError
func Wrap(err error, code ErrorCode, message string) *MviError {
	if err == nil {
		return nil
	}
	return &MviError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *MviError {
	if err == nil {
		return nil
	}
	return &MviError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *MviError) WithDetail(key string, value interface{}) *MviError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *MviError) WithDetails(details map[string]interface{}) *MviError {
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
	var mviErr *MviError
	if errors.As(err, &mviErr) {
		return mviErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a MviError
func GetErrorCode(err error) ErrorCode {
	var mviErr *MviError
	if errors.As(err, &mviErr) {
		return mviErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a MviError
func GetErrorDetails(err error) map[string]interface{} {
	var mviErr *MviError
	if errors.As(err, &mviErr) {
		return mviErr.Details
	}
	return nil
}

// IsPlanningError reports whether err was raised while building the plan,
// that is before anything on disk was touched.
func IsPlanningError(err error) bool {
	switch GetErrorCode(err) {
	case ErrParse, ErrConflict, ErrCycle:
		return true
	}
	return false
}
