package response

import (
	"errors"
	"net/http"

	"github.com/gestionale-hr/gestionale-backend-go/internal/domain/attendance"
	"github.com/gestionale-hr/gestionale-backend-go/internal/domain/auth"
	"github.com/gestionale-hr/gestionale-backend-go/internal/domain/company"
	"github.com/gestionale-hr/gestionale-backend-go/internal/domain/employee"
	"github.com/gestionale-hr/gestionale-backend-go/internal/domain/master/site"
	"github.com/gestionale-hr/gestionale-backend-go/internal/domain/payslip"
	"github.com/gestionale-hr/gestionale-backend-go/internal/domain/shift"
	"github.com/gestionale-hr/gestionale-backend-go/internal/domain/user"
	"github.com/gestionale-hr/gestionale-backend-go/internal/pkg/validator"
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
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrAdminAccessRequired),
		errors.Is(err, user.ErrManagerAccessRequired):
		Forbidden(w, err.Error())
	case errors.Is(err, company.ErrCompanyNotFound):
		NotFound(w, "Company not found")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered in this company")

	// Site domain errors
	case errors.Is(err, site.ErrSiteNotFound):
		NotFound(w, "Site not found")

	// Shift domain errors
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrMissingClockTimes):
		BadRequest(w, "Attendance record has no stored entry/exit times; both overrides are required", nil)

	// Payslip domain errors
	case errors.Is(err, payslip.ErrPayslipNotFound):
		NotFound(w, "Payslip not found")
	case errors.Is(err, payslip.ErrPayslipAlreadyPaid):
		Conflict(w, "Payslip has already been paid")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
