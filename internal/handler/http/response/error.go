package response

import (
	"errors"
	"net/http"

	"github.com/salescope/salestracker-backend-go/internal/domain/auth"
	"github.com/salescope/salestracker-backend-go/internal/domain/bulkimport"
	"github.com/salescope/salestracker-backend-go/internal/domain/employee"
	"github.com/salescope/salestracker-backend-go/internal/domain/goal"
	"github.com/salescope/salestracker-backend-go/internal/domain/period"
	"github.com/salescope/salestracker-backend-go/internal/domain/sale"
	"github.com/salescope/salestracker-backend-go/internal/domain/settings"
	"github.com/salescope/salestracker-backend-go/internal/domain/user"
	"github.com/salescope/salestracker-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Auth domain errors
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrAccountDisabled):
		Forbidden(w, "Account is disabled")
	case errors.Is(err, auth.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, auth.ErrOAuthDisabled):
		BadRequest(w, "Google login is not enabled", nil)
	case errors.Is(err, auth.ErrOAuthNotLinked):
		Forbidden(w, "No account matches this Google identity")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUsernameExists):
		Conflict(w, "Username already taken")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrInvalidRole):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, user.ErrInvalidPasswordLength):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, user.ErrCannotDeleteSelf):
		Conflict(w, "Cannot delete your own account")
	case errors.Is(err, user.ErrLastAdmin):
		Conflict(w, "Cannot remove or demote the last active admin")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrNameExists):
		Conflict(w, "An employee with this name already exists")
	case errors.Is(err, employee.ErrInvalidCommissionRate):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, employee.ErrInvalidDrawAmount):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, employee.ErrEmployeeAlreadyActive):
		Conflict(w, "Employee is already active")
	case errors.Is(err, employee.ErrEmployeeAlreadyInactive):
		Conflict(w, "Employee is already inactive")

	// Sale domain errors
	case errors.Is(err, sale.ErrSaleNotFound):
		NotFound(w, "Sale record not found")
	case errors.Is(err, sale.ErrUnknownEmployee):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, sale.ErrInvalidDate):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, sale.ErrInvalidAmount):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, sale.ErrInvalidCount):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, sale.ErrInvalidPeriod):
		BadRequest(w, err.Error(), nil)

	// Goal domain errors
	case errors.Is(err, goal.ErrGoalNotFound):
		NotFound(w, "Goal not found")
	case errors.Is(err, goal.ErrInvalidRange):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, goal.ErrNoTarget):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, goal.ErrEmployeeMissing):
		BadRequest(w, "Goal employee not found", nil)

	// Settings domain errors
	case errors.Is(err, settings.ErrSettingsNotFound):
		NotFound(w, "Settings not found")
	case errors.Is(err, settings.ErrInvalidColorScheme):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, settings.ErrInvalidPeriodType):
		BadRequest(w, err.Error(), nil)

	// Bulk import errors
	case errors.Is(err, bulkimport.ErrMissingColumn):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, bulkimport.ErrEmptyBatch):
		BadRequest(w, "Uploaded file is empty", nil)
	case errors.Is(err, bulkimport.ErrTooManyRows):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, bulkimport.ErrMalformedCSV):
		BadRequest(w, err.Error(), nil)

	// Reporting window errors
	case errors.Is(err, period.ErrInvalidPeriodType),
		errors.Is(err, period.ErrInvalidDate),
		errors.Is(err, period.ErrInvalidYear),
		errors.Is(err, period.ErrInvalidMonth),
		errors.Is(err, period.ErrInvalidQuarter),
		errors.Is(err, period.ErrInvalidRange):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
