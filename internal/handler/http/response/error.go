package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/leave-analyzer/internal/domain/attendance"
	"github.com/cmlabs-hris/leave-analyzer/internal/domain/auth"
	"github.com/cmlabs-hris/leave-analyzer/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrFileRequired):
		BadRequest(w, "No file uploaded", nil)
	case errors.Is(err, attendance.ErrUnsupportedFile):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrFileTooLarge):
		PayloadTooLarge(w, err.Error())
	case errors.Is(err, attendance.ErrUnreadableSheet):
		BadRequest(w, "Attendance spreadsheet could not be read", nil)
	case errors.Is(err, attendance.ErrNoRowsInSheet):
		BadRequest(w, "No data found in uploaded file", nil)
	case errors.Is(err, attendance.ErrNoRecordsForMonth):
		NotFound(w, "No records found for this month")
	case errors.Is(err, attendance.ErrPersistFailed):
		slog.Error("Attendance persistence failed", "error", err)
		InternalServerError(w, "Failed to save attendance records")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
