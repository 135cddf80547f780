package apperrors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")

	// Storage errors: a table file is missing, unreadable, unwritable or malformed
	ErrStorage = errors.New("storage failure")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewAlreadyExistsError creates a new custom error for duplicate keys with a message
func NewAlreadyExistsError(message string) error {
	return &CustomError{
		Err:     ErrResourceAlreadyExists,
		Message: message,
	}
}

// NewValidationError creates a new custom error for rejected input with a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// NewFieldValidationError creates a validation error bound to one input field
func NewFieldValidationError(field, message string) error {
	return NewCustomError(ErrValidationFailed, message).
		WithDetails(map[string]interface{}{"field": field})
}

// NewStorageError wraps an I/O or format failure on a table file.
// The path stays in Message for logs; StatusMsg is what callers show to users.
func NewStorageError(path string, err error) error {
	return NewCustomError(fmt.Errorf("%w: %w", ErrStorage, err), fmt.Sprintf("storage failure on %s: %v", path, err)).
		WithDetails(map[string]interface{}{"path": path}).
		WithStatusMsg("storage failure")
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err       error
	Message   string
	StatusMsg string
	Details   map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithStatusMsg adds a user-friendly status message
func (e *CustomError) WithStatusMsg(msg string) *CustomError {
	e.StatusMsg = msg
	return e
}

// Message returns the most specific human-readable message carried by err.
func Message(err error) string {
	var custom *CustomError
	if errors.As(err, &custom) {
		if custom.StatusMsg != "" {
			return custom.StatusMsg
		}
		return custom.Error()
	}
	return err.Error()
}

// Field returns the input field a validation error is bound to, if any.
func Field(err error) string {
	var custom *CustomError
	if errors.As(err, &custom) {
		if field, ok := custom.Details["field"].(string); ok {
			return field
		}
	}
	return ""
}
