package errors

import (
	"errors"
	"net/http"
)

// Standard error types
var (
	ErrValidation       = errors.New("validation failed")
	ErrNotFound         = errors.New("resource not found")
	ErrDuplicateKey     = errors.New("duplicate key")
	ErrStorage          = errors.New("storage failure")
	ErrMethodNotAllowed = errors.New("method not allowed")
	ErrUpload           = errors.New("upload failed")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrInternal         = errors.New("internal server error")
)

// AppError is a structured application error carrying the HTTP status the
// boundary should answer with
type AppError struct {
	Err        error
	StatusCode int
	Message    string
}

// Error returns the error message
func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError with the given parameters
func NewAppError(err error, message string, statusCode int) *AppError {
	return &AppError{
		Err:        err,
		Message:    message,
		StatusCode: statusCode,
	}
}

// NewValidationError creates a validation error for missing or empty input
func NewValidationError(message string) *AppError {
	return NewAppError(ErrValidation, message, http.StatusBadRequest)
}

// NewNotFoundError creates a not found error
func NewNotFoundError(message string) *AppError {
	return NewAppError(ErrNotFound, message, http.StatusNotFound)
}

// NewDuplicateKeyError creates a duplicate key error
func NewDuplicateKeyError(message string) *AppError {
	return NewAppError(ErrDuplicateKey, message, http.StatusConflict)
}

// NewStorageError creates a storage error carrying the store's diagnostic text
func NewStorageError(message string) *AppError {
	return NewAppError(ErrStorage, message, http.StatusInternalServerError)
}

// NewMethodNotAllowedError creates a wrong-verb error for the HTTP boundary
func NewMethodNotAllowedError(message string) *AppError {
	return NewAppError(ErrMethodNotAllowed, message, http.StatusMethodNotAllowed)
}

// NewUploadError creates an upload error
func NewUploadError(message string) *AppError {
	return NewAppError(ErrUpload, message, http.StatusBadRequest)
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError(message string) *AppError {
	return NewAppError(ErrUnauthorized, message, http.StatusUnauthorized)
}

// NewInternalError creates an internal server error
func NewInternalError(message string) *AppError {
	return NewAppError(ErrInternal, message, http.StatusInternalServerError)
}

// StatusCode resolves the HTTP status for an error, defaulting to 500 for
// anything that is not an AppError
func StatusCode(err error) int {
	var appErr *AppError

	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}

	return http.StatusInternalServerError
}
