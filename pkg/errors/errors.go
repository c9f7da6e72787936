package errors

import (
	"fmt"
	"net/http"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "validation"
	ErrorTypeNotFound     ErrorType = "not_found"
	ErrorTypeConflict     ErrorType = "conflict"
	ErrorTypeUnauthorized ErrorType = "unauthorized"
	ErrorTypeInternal     ErrorType = "internal"
	ErrorTypeNetwork      ErrorType = "network"
	ErrorTypeUnsupported  ErrorType = "unsupported"
)

// APIError represents a structured API error
type APIError struct {
	Type    ErrorType `json:"type"`
	Code    string    `json:"code"`
	Message string    `json:"message"`
	// Fields carries per-field validation messages, keyed by the JSON
	// field name the caller submitted.
	Fields      map[string]string `json:"fields,omitempty"`
	HTTPStatus  int               `json:"-"`
	InternalErr error             `json:"-"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("%s (%s)", e.Message, e.Code)
}

// Unwrap returns the underlying error
func (e *APIError) Unwrap() error {
	return e.InternalErr
}

// NewAPIError creates a new API error
func NewAPIError(errorType ErrorType, code, message string, httpStatus int) *APIError {
	return &APIError{
		Type:       errorType,
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// ValidationError creates a field-keyed validation error. No request that
// fails validation reaches the persistence endpoint.
func ValidationError(fields map[string]string) *APIError {
	return &APIError{
		Type:       ErrorTypeValidation,
		Code:       "VALIDATION_FAILED",
		Message:    "One or more required fields are missing",
		Fields:     fields,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NotFoundError creates a not found error
func NotFoundError(resource string) *APIError {
	return NewAPIError(ErrorTypeNotFound, "RESOURCE_NOT_FOUND", fmt.Sprintf("%s not found", resource), http.StatusNotFound)
}

// ConflictError creates a conflict error
func ConflictError(message string) *APIError {
	return NewAPIError(ErrorTypeConflict, "RESOURCE_CONFLICT", message, http.StatusConflict)
}

// UnauthorizedError creates an unauthorized error. The message is kept
// generic on purpose; it must not reveal which check failed.
func UnauthorizedError(message string) *APIError {
	return NewAPIError(ErrorTypeUnauthorized, "UNAUTHORIZED", message, http.StatusUnauthorized)
}

// InternalError creates an internal server error
func InternalError(message string) *APIError {
	return NewAPIError(ErrorTypeInternal, "INTERNAL_ERROR", message, http.StatusInternalServerError)
}

// TransportError wraps a failed call to an external endpoint. Distinct from
// UnsupportedError so callers can say "try again" rather than "not available".
func TransportError(operation string, cause error) *APIError {
	return &APIError{
		Type:        ErrorTypeNetwork,
		Code:        "TRANSPORT_ERROR",
		Message:     fmt.Sprintf("External call failed: %s", operation),
		HTTPStatus:  http.StatusBadGateway,
		InternalErr: cause,
	}
}

// UnsupportedError reports an operation that the persistence endpoint does
// not implement yet. It must never be conflated with a transport failure.
func UnsupportedError(operation string) *APIError {
	return NewAPIError(ErrorTypeUnsupported, "NOT_IMPLEMENTED",
		fmt.Sprintf("%s is not available yet", operation),
		http.StatusNotImplemented)
}

// IsAPIError checks if an error is an APIError
func IsAPIError(err error) bool {
	_, ok := err.(*APIError)
	return ok
}

// GetAPIError extracts APIError from an error
func GetAPIError(err error) *APIError {
	if apiErr, ok := err.(*APIError); ok {
		return apiErr
	}
	return nil
}
