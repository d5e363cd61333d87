package employee

import (
	"context"

	"github.com/salescope/salestracker-backend-go/internal/domain/period"
)

// EmployeeService defines business logic for employee operations
type EmployeeService interface {
	// GetEmployee retrieves a single employee by ID
	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)

	// CreateEmployee creates a new employee
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	// UpdateEmployee applies a partial update to an existing employee
	UpdateEmployee(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)

	// DeleteEmployee removes an employee. An employee referenced by sale
	// records is deactivated instead of deleted so history stays intact.
	DeleteEmployee(ctx context.Context, id string) (DeleteEmployeeResponse, error)

	// ListEmployees lists employees with filters and pagination
	ListEmployees(ctx context.Context, filter EmployeeFilter) (ListEmployeesResponse, error)

	// Balance folds the employee's sale records inside the requested
	// window into a chronological running-balance ledger. The opening
	// balance is the cumulative commission minus draws before the window.
	Balance(ctx context.Context, id string, q period.Query) (BalanceResponse, error)
}
