package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error by how the dashboard must react to it
type Kind string

const (
	// KindValidation is raised locally before any backend call
	KindValidation Kind = "validation"
	// KindRejected carries a backend rejection with its message verbatim
	KindRejected Kind = "rejected"
	// KindUnauthorized forces session teardown and a redirect to sign-in
	KindUnauthorized Kind = "unauthorized"
	// KindExport is isolated to the receipt pipeline
	KindExport Kind = "export"
	// KindMalformedResponse means the backend answered with a payload that broke its contract
	KindMalformedResponse Kind = "malformed_response"
	KindNotFound          Kind = "not_found"
	KindConflict          Kind = "conflict"
	KindBadRequest        Kind = "bad_request"
	KindInternal          Kind = "internal"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Kind    Kind         `json:"kind"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
	cause   error
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause, if any
func (e *AppError) Unwrap() error {
	return e.cause
}

// Is matches sentinel errors by kind and message so wrapped copies still compare equal
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

// Common errors
var (
	ErrNotFound       = &AppError{Code: http.StatusNotFound, Kind: KindNotFound, Message: "Resource not found"}
	ErrUnauthorized   = &AppError{Code: http.StatusUnauthorized, Kind: KindUnauthorized, Message: "Unauthorized"}
	ErrSessionExpired = &AppError{Code: http.StatusUnauthorized, Kind: KindUnauthorized, Message: "Session expired, please sign in again"}
	ErrBadRequest     = &AppError{Code: http.StatusBadRequest, Kind: KindBadRequest, Message: "Bad request"}
	ErrInternalServer = &AppError{Code: http.StatusInternalServerError, Kind: KindInternal, Message: "Internal server error"}
	ErrExportBusy     = &AppError{Code: http.StatusConflict, Kind: KindExport, Message: "Another receipt operation is already in progress"}
	ErrReceiptMissing = &AppError{Code: http.StatusBadRequest, Kind: KindExport, Message: "No sale data available to print."}
	ErrNotReady       = &AppError{Code: http.StatusConflict, Kind: KindExport, Message: "Receipt is not ready for printing yet."}
)

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kindForStatus(code),
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindValidation,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// Validation creates a local validation error with a user-facing message
func Validation(message string) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindValidation,
		Message: message,
	}
}

// NewRejectedError wraps a backend rejection. The message is shown to the user unchanged.
func NewRejectedError(status int, message string, fieldErrors []FieldError) *AppError {
	if message == "" {
		message = fmt.Sprintf("Request failed with status %d", status)
	}
	if status < 400 {
		status = http.StatusBadRequest
	}
	return &AppError{
		Code:    status,
		Kind:    KindRejected,
		Message: message,
		Errors:  fieldErrors,
	}
}

// NewUnauthorizedError creates an authentication error with the given message
func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    http.StatusUnauthorized,
		Kind:    KindUnauthorized,
		Message: message,
	}
}

// NewMalformedResponseError reports a backend payload that failed its contract
func NewMalformedResponseError(endpoint string, cause error) *AppError {
	return &AppError{
		Code:    http.StatusBadGateway,
		Kind:    KindMalformedResponse,
		Message: fmt.Sprintf("Unexpected response from %s: %v", endpoint, cause),
		cause:   cause,
	}
}

// NewUpstreamError reports a backend that could not be reached or answered unreadably
func NewUpstreamError(cause error) *AppError {
	return &AppError{
		Code:    http.StatusBadGateway,
		Kind:    KindInternal,
		Message: "Backend service unavailable",
		cause:   cause,
	}
}

// NewExportError wraps a receipt print/export failure, keeping the underlying message
func NewExportError(action string, cause error) *AppError {
	return &AppError{
		Code:    http.StatusInternalServerError,
		Kind:    KindExport,
		Message: fmt.Sprintf("%s failed: %v", action, cause),
		cause:   cause,
	}
}

// NewInternalError wraps an unexpected failure
func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Code:    http.StatusInternalServerError,
		Kind:    KindInternal,
		Message: message,
		cause:   cause,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Kind:    KindNotFound,
		Message: resource + " not found",
	}
}

// NewConflictError creates a conflict error with a custom message
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Kind:    KindConflict,
		Message: message,
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Kind:    KindBadRequest,
		Message: message,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// IsKind reports whether err is an AppError of the given kind
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Kind:    KindInternal,
		Message: err.Error(),
		cause:   err,
	}
}

func kindForStatus(code int) Kind {
	switch code {
	case http.StatusUnauthorized:
		return KindUnauthorized
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusConflict:
		return KindConflict
	case http.StatusUnprocessableEntity:
		return KindValidation
	case http.StatusBadRequest:
		return KindBadRequest
	default:
		return KindInternal
	}
}
