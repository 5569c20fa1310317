package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error independently of its HTTP mapping.
type Kind string

const (
	KindNotFound         Kind = "not_found"
	KindValidation       Kind = "validation"
	KindConsistency      Kind = "consistency"
	KindConflict         Kind = "conflict"
	KindReportGeneration Kind = "report_generation"
	KindUnauthorized     Kind = "unauthorized"
	KindInternal         Kind = "internal"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Kind    Kind         `json:"kind"`
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Common errors
var (
	ErrUnauthorized       = &AppError{Kind: KindUnauthorized, Code: http.StatusUnauthorized, Message: "Unauthorized"}
	ErrForbidden          = &AppError{Kind: KindUnauthorized, Code: http.StatusForbidden, Message: "Forbidden"}
	ErrBadRequest         = &AppError{Kind: KindValidation, Code: http.StatusBadRequest, Message: "Bad request"}
	ErrInternalServer     = &AppError{Kind: KindInternal, Code: http.StatusInternalServerError, Message: "Internal server error"}
	ErrInvalidCredentials = &AppError{Kind: KindUnauthorized, Code: http.StatusUnauthorized, Message: "Invalid email or password"}
)

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Kind:    KindInternal,
		Code:    code,
		Message: message,
	}
}

// NewNotFoundError creates a not found error naming the missing resource
func NewNotFoundError(resource string, id fmt.Stringer) *AppError {
	return &AppError{
		Kind:    KindNotFound,
		Code:    http.StatusNotFound,
		Message: fmt.Sprintf("%s %s not found", resource, id),
	}
}

// NewValidationError creates a validation error from field errors
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Kind:    KindValidation,
		Code:    http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewConsistencyError creates an error for a rejected state mutation,
// e.g. a stock decrement that would drive stock below zero.
func NewConsistencyError(message string) *AppError {
	return &AppError{
		Kind:    KindConsistency,
		Code:    http.StatusUnprocessableEntity,
		Message: message,
	}
}

// NewConflictError creates a conflict error with a custom message
func NewConflictError(message string) *AppError {
	return &AppError{
		Kind:    KindConflict,
		Code:    http.StatusConflict,
		Message: message,
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Kind:    KindValidation,
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

// NewReportError wraps an aggregation query failure
func NewReportError(err error) *AppError {
	return &AppError{
		Kind:    KindReportGeneration,
		Code:    http.StatusInternalServerError,
		Message: "Report generation failed: " + err.Error(),
	}
}

// IsKind reports whether err is an AppError of the given kind
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Kind:    KindInternal,
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
	}
}
