package dto

import "time"

// ErrorCode is the stable machine-readable code carried by every error envelope
type ErrorCode string

// Auth codes keep the numbering clients already match on
const (
	ErrorCodeInvalidCredentials ErrorCode = "AUTH_001"
	ErrorCodeInvalidToken       ErrorCode = "AUTH_005"
	ErrorCodeExpiredToken       ErrorCode = "AUTH_006"
	ErrorCodeUnauthorized       ErrorCode = "AUTH_008"
	ErrorCodeForbidden          ErrorCode = "AUTH_009"
)

// Ledger, input and server codes
const (
	ErrorCodeResourceNotFound      ErrorCode = "RES_001"
	ErrorCodeResourceAlreadyExists ErrorCode = "RES_002"
	ErrorCodeValidationFailed      ErrorCode = "VAL_001"
	ErrorCodeBadRequest            ErrorCode = "VAL_002"
	ErrorCodeInternalServer        ErrorCode = "SRV_001"
	ErrorCodeStorageError          ErrorCode = "SRV_002"
)

// ErrorSeverity tells clients whether retrying with other input can help.
// ERROR is the caller's problem; CRITICAL means the server or its table files.
type ErrorSeverity string

const (
	ErrorSeverityError    ErrorSeverity = "ERROR"
	ErrorSeverityCritical ErrorSeverity = "CRITICAL"
)

// ErrorDetail is the body of a failed response
type ErrorDetail struct {
	Code     ErrorCode     `json:"code" example:"RES_001"`
	Message  string        `json:"message" example:"student \"ada@sjsu.edu\" not found"`
	Field    string        `json:"field,omitempty" example:"marks"`
	Severity ErrorSeverity `json:"severity" example:"ERROR"`
	Details  interface{}   `json:"details,omitempty"`
}

// ErrorResponse wraps an ErrorDetail in the API envelope
type ErrorResponse struct {
	Success   bool         `json:"success" example:"false"`
	Error     *ErrorDetail `json:"error"`
	Timestamp time.Time    `json:"timestamp" example:"2025-04-23T12:01:05.123Z"`
}

// NewErrorDetail creates an ERROR-severity detail
func NewErrorDetail(code ErrorCode, message string) *ErrorDetail {
	return &ErrorDetail{Code: code, Message: message, Severity: ErrorSeverityError}
}

// WithField names the input field at fault; an empty field is ignored
func (e *ErrorDetail) WithField(field string) *ErrorDetail {
	if field != "" {
		e.Field = field
	}
	return e
}

func (e *ErrorDetail) WithSeverity(severity ErrorSeverity) *ErrorDetail {
	e.Severity = severity
	return e
}

func (e *ErrorDetail) WithDetails(details interface{}) *ErrorDetail {
	e.Details = details
	return e
}

// NewErrorResponse creates the envelope for a failed request
func NewErrorResponse(detail *ErrorDetail) *ErrorResponse {
	return &ErrorResponse{Error: detail, Timestamp: time.Now()}
}

// ValidationErrors collects one detail per rejected request field
type ValidationErrors struct {
	Errors []ErrorDetail `json:"errors"`
}

func NewValidationErrors() *ValidationErrors {
	return &ValidationErrors{Errors: []ErrorDetail{}}
}

// AddError records a rejected field
func (v *ValidationErrors) AddError(field, message string) *ValidationErrors {
	v.Errors = append(v.Errors, *NewErrorDetail(ErrorCodeValidationFailed, message).WithField(field))
	return v
}
