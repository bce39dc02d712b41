// Package errors provides structured API errors and the centralized handler
// that renders them as RFC 7807 problem details.
package errors

import (
	"fmt"
	"net/http"

	"github.com/go-chi/render"
)

// APIError represents a structured API error response.
type APIError struct {
	StatusCode int    `json:"status_code"`
	ErrorCode  string `json:"error_code"`
	Message    string `json:"message"`
	Details    any    `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// Render implements the render.Renderer interface for chi/render.
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// New creates a new APIError.
func New(statusCode int, errorCode, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

// NewWithDetails creates a new APIError with additional details.
func NewWithDetails(statusCode int, errorCode, message string, details any) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
		Details:    details,
	}
}

// ValidationError represents a single-field validation failure.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrValidation creates a validation error with field details.
func ErrValidation(field, message string) *APIError {
	return NewWithDetails(http.StatusBadRequest, "VALIDATION_FAILED", "Request validation failed", ValidationError{
		Field:   field,
		Message: message,
	})
}

// Predefined errors for common scenarios.
var (
	ErrInvalidRequest = New(http.StatusBadRequest, "INVALID_REQUEST", "Invalid request format")
	ErrNotFound       = New(http.StatusNotFound, "NOT_FOUND", "Resource not found")
	ErrInternalServer = New(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error")
)

// UnsupportedImportFormat builds the error for unrecognized import files.
func UnsupportedImportFormat(err error) *APIError {
	return NewWithDetails(http.StatusUnsupportedMediaType, "UNSUPPORTED_FORMAT",
		"Unsupported file format. Please upload CSV, JSON or XLSX files.", err.Error())
}

// ImportParseFailed builds the error for malformed import content.
func ImportParseFailed(err error) *APIError {
	return NewWithDetails(http.StatusUnprocessableEntity, "PARSE_ERROR",
		fmt.Sprintf("Failed to import data: %v", err), err.Error())
}

// UnsupportedExportFormat builds the error for unknown export targets.
func UnsupportedExportFormat(format string) *APIError {
	return New(http.StatusBadRequest, "UNSUPPORTED_EXPORT_FORMAT",
		fmt.Sprintf("Unsupported export format: %s", format))
}

// CaptureTargetMissing builds the error for an absent capture region.
func CaptureTargetMissing(err error) *APIError {
	return NewWithDetails(http.StatusBadGateway, "CAPTURE_TARGET_MISSING",
		"Dashboard capture region not found in the current view", err.Error())
}

// ExportFailed wraps an underlying serializer failure.
func ExportFailed(err error) *APIError {
	return NewWithDetails(http.StatusInternalServerError, "EXPORT_FAILED",
		fmt.Sprintf("Export failed: %v", err), err.Error())
}
