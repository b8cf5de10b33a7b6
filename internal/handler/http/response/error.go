package response

import (
	"errors"
	"net/http"

	"github.com/worklife-vn/attendance-backend-go/internal/domain/attendance"
	"github.com/worklife-vn/attendance-backend-go/internal/domain/auth"
	"github.com/worklife-vn/attendance-backend-go/internal/domain/overtime"
	"github.com/worklife-vn/attendance-backend-go/internal/domain/profile"
	"github.com/worklife-vn/attendance-backend-go/internal/domain/user"
	"github.com/worklife-vn/attendance-backend-go/internal/pkg/validator"
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
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrNotCheckedIn):
		Conflict(w, "No open session to check out")
	case errors.Is(err, attendance.ErrSessionNotFound):
		NotFound(w, "Attendance session not found")
	case errors.Is(err, profile.ErrProfileNotFound):
		NotFound(w, "Profile not found")

	// Overtime domain errors
	case errors.Is(err, overtime.ErrExceedsCeiling):
		BadRequest(w, "Requested hours exceed the overtime ceiling", nil)
	case errors.Is(err, overtime.ErrNoShiftForDate):
		BadRequest(w, "No shift scheduled on the requested date", nil)
	case errors.Is(err, overtime.ErrAlreadyRequested):
		Conflict(w, "An overtime request already exists for this date")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
