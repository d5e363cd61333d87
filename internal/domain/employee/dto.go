package employee

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/salescope/salestracker-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	Name           string          `json:"name"`
	HireDate       string          `json:"hire_date"`
	CommissionRate decimal.Decimal `json:"commission_rate"`
	DrawAmount     decimal.Decimal `json:"draw_amount"`
	IsActive       *bool           `json:"is_active,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	} else if len(r.Name) > 120 {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name must not exceed 120 characters"})
	}

	if validator.IsEmpty(r.HireDate) {
		errs = append(errs, validator.ValidationError{Field: "hire_date", Message: "hire_date is required"})
	} else if _, ok := validator.IsValidDate(r.HireDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "hire_date", Message: "hire_date must be in YYYY-MM-DD format"})
	}

	if !validator.IsFractionInRange(r.CommissionRate) {
		errs = append(errs, validator.ValidationError{Field: "commission_rate", Message: "commission_rate must be between 0 and 1"})
	}

	if r.DrawAmount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "draw_amount", Message: "draw_amount must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID             string           `json:"-"`
	Name           *string          `json:"name,omitempty"`
	HireDate       *string          `json:"hire_date,omitempty"`
	CommissionRate *decimal.Decimal `json:"commission_rate,omitempty"`
	DrawAmount     *decimal.Decimal `json:"draw_amount,omitempty"`
	IsActive       *bool            `json:"is_active,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil {
		if validator.IsEmpty(*r.Name) {
			errs = append(errs, validator.ValidationError{Field: "name", Message: "name must not be empty"})
		} else if len(*r.Name) > 120 {
			errs = append(errs, validator.ValidationError{Field: "name", Message: "name must not exceed 120 characters"})
		}
	}

	if r.HireDate != nil {
		if _, ok := validator.IsValidDate(*r.HireDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "hire_date", Message: "hire_date must be in YYYY-MM-DD format"})
		}
	}

	if r.CommissionRate != nil && !validator.IsFractionInRange(*r.CommissionRate) {
		errs = append(errs, validator.ValidationError{Field: "commission_rate", Message: "commission_rate must be between 0 and 1"})
	}

	if r.DrawAmount != nil && r.DrawAmount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "draw_amount", Message: "draw_amount must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeFilter struct {
	Search   *string `json:"search,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`

	SortBy    string `json:"sort_by"`    // name, hire_date, commission_rate, created_at
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *EmployeeFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{Field: "page", Message: "page must be a positive number"})
	}
	if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{Field: "limit", Message: "limit must be a positive number"})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{Field: "limit", Message: "limit must not exceed 100"})
	}

	if f.SortOrder != "" && f.SortOrder != "asc" && f.SortOrder != "desc" {
		errs = append(errs, validator.ValidationError{Field: "sort_order", Message: "sort_order must be asc or desc"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	HireDate       string          `json:"hire_date"`
	IsActive       bool            `json:"is_active"`
	CommissionRate decimal.Decimal `json:"commission_rate"`
	DrawAmount     decimal.Decimal `json:"draw_amount"`
	CreatedAt      string          `json:"created_at"`
	UpdatedAt      string          `json:"updated_at"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:             e.ID,
		Name:           e.Name,
		HireDate:       e.HireDate.Format("2006-01-02"),
		IsActive:       e.IsActive,
		CommissionRate: e.CommissionRate,
		DrawAmount:     e.DrawAmount,
		CreatedAt:      e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      e.UpdatedAt.Format(time.RFC3339),
	}
}

type ListEmployeesResponse struct {
	Employees  []EmployeeResponse `json:"employees"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalItems int64              `json:"total_items"`
	TotalPages int                `json:"total_pages"`
}

// DeleteEmployeeResponse reports which removal path applied: employees
// referenced by sale records are deactivated instead of deleted.
type DeleteEmployeeResponse struct {
	ID          string `json:"id"`
	Deleted     bool   `json:"deleted"`
	Deactivated bool   `json:"deactivated"`
}

// ========== BALANCE LEDGER DTOs ==========

type BalanceWindow struct {
	Type  string `json:"type"`
	Label string `json:"label"`
	Start string `json:"start"`
	End   string `json:"end"` // exclusive bound
}

type LedgerEntry struct {
	SaleID     string          `json:"sale_id"`
	Date       string          `json:"date"`
	Revenue    decimal.Decimal `json:"revenue"`
	Deals      int64           `json:"deals"`
	Commission decimal.Decimal `json:"commission"`
	Draw       decimal.Decimal `json:"draw"`
	Balance    decimal.Decimal `json:"balance"`
}

type BalanceResponse struct {
	Employee       EmployeeResponse `json:"employee"`
	Window         BalanceWindow    `json:"window"`
	OpeningBalance decimal.Decimal  `json:"opening_balance"`
	Entries        []LedgerEntry    `json:"entries"`
	ClosingBalance decimal.Decimal  `json:"closing_balance"`
}
