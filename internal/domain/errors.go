package domain

import "fmt"

// DomainError represents a domain-specific error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new DomainError
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     nil,
	}
}

// NewDomainErrorWithCause creates a new DomainError with an underlying cause
func NewDomainErrorWithCause(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain error codes
const (
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeUnauthorized     = "UNAUTHORIZED"
	ErrCodeInternalError    = "INTERNAL_ERROR"
	ErrCodeInvalidOperation = "INVALID_OPERATION"
	ErrCodeUnavailable      = "UNAVAILABLE"
)

// Validation errors
var (
	ErrInvalidAuditMode        = NewDomainError(ErrCodeValidation, "invalid audit mode")
	ErrInvalidStatus           = NewDomainError(ErrCodeValidation, "invalid compliance status")
	ErrUnsupportedFileType     = NewDomainError(ErrCodeValidation, "unsupported file type")
	ErrClientMismatch          = NewDomainError(ErrCodeValidation, "documents belong to a different client")
	ErrMultipleClientsDetected = NewDomainError(ErrCodeValidation, "multiple clients detected across documents")
)

// Not found errors
var (
	ErrSessionNotFound = NewDomainError(ErrCodeNotFound, "session not found")
	ErrMeasureNotFound = NewDomainError(ErrCodeNotFound, "measure not found")
	ErrExportNotFound  = NewDomainError(ErrCodeNotFound, "exported file not found")
)

// Operation errors
var (
	ErrNoDocuments = NewDomainError(ErrCodeInvalidOperation, "no usable documents uploaded")
	ErrNoIndex     = NewDomainError(ErrCodeInvalidOperation, "no index built for this session")
	ErrAIDisabled  = NewDomainError(ErrCodeUnavailable, "AI features disabled: no API credential configured")
)

// Index build errors
var (
	ErrIndexBuildFailed = NewDomainError(ErrCodeInternalError, "index build failed, previous index kept")
)
