package sale

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/salescope/salestracker-backend-go/internal/domain/period"
	"github.com/salescope/salestracker-backend-go/internal/pkg/validator"
)

type CreateSaleRequest struct {
	EmployeeID    string           `json:"employee_id"`
	Date          string           `json:"date"`
	RevenueAmount decimal.Decimal  `json:"revenue_amount"`
	DealCount     int64            `json:"number_of_deals"`
	DrawPayment   *decimal.Decimal `json:"draw_payment,omitempty"`
	PeriodType    string           `json:"period_type,omitempty"`
}

func (r *CreateSaleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date is required"})
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be in YYYY-MM-DD format"})
	}

	if r.RevenueAmount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "revenue_amount", Message: "revenue_amount must not be negative"})
	}

	if r.DealCount < 0 {
		errs = append(errs, validator.ValidationError{Field: "number_of_deals", Message: "number_of_deals must not be negative"})
	}

	if r.DrawPayment != nil && r.DrawPayment.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "draw_payment", Message: "draw_payment must not be negative"})
	}

	if r.PeriodType != "" && !period.Type(r.PeriodType).ValidForEntry() {
		errs = append(errs, validator.ValidationError{Field: "period_type", Message: "period_type must be one of: week, month, quarter, year"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateSaleRequest struct {
	ID            string           `json:"-"`
	EmployeeID    *string          `json:"employee_id,omitempty"`
	Date          *string          `json:"date,omitempty"`
	RevenueAmount *decimal.Decimal `json:"revenue_amount,omitempty"`
	DealCount     *int64           `json:"number_of_deals,omitempty"`
	DrawPayment   *decimal.Decimal `json:"draw_payment,omitempty"`
	PeriodType    *string          `json:"period_type,omitempty"`
}

func (r *UpdateSaleRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID != nil && validator.IsEmpty(*r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id must not be empty"})
	}

	if r.Date != nil {
		if _, ok := validator.IsValidDate(*r.Date); !ok {
			errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be in YYYY-MM-DD format"})
		}
	}

	if r.RevenueAmount != nil && r.RevenueAmount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "revenue_amount", Message: "revenue_amount must not be negative"})
	}

	if r.DealCount != nil && *r.DealCount < 0 {
		errs = append(errs, validator.ValidationError{Field: "number_of_deals", Message: "number_of_deals must not be negative"})
	}

	if r.DrawPayment != nil && r.DrawPayment.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "draw_payment", Message: "draw_payment must not be negative"})
	}

	if r.PeriodType != nil && !period.Type(*r.PeriodType).ValidForEntry() {
		errs = append(errs, validator.ValidationError{Field: "period_type", Message: "period_type must be one of: week, month, quarter, year"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SaleFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD, inclusive

	Page  int `json:"page"`
	Limit int `json:"limit"`

	SortBy    string `json:"sort_by"`    // date, revenue_amount, employee_name, created_at
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *SaleFilter) Validate() error {
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

	if f.StartDate != nil && *f.StartDate != "" {
		if _, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be in YYYY-MM-DD format"})
		}
	}

	if f.EndDate != nil && *f.EndDate != "" {
		if _, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be in YYYY-MM-DD format"})
		}
	}

	if f.SortOrder != "" && f.SortOrder != "asc" && f.SortOrder != "desc" {
		errs = append(errs, validator.ValidationError{Field: "sort_order", Message: "sort_order must be asc or desc"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SaleResponse struct {
	ID               string          `json:"id"`
	EmployeeID       string          `json:"employee_id"`
	EmployeeName     string          `json:"employee_name,omitempty"`
	Date             string          `json:"date"`
	RevenueAmount    decimal.Decimal `json:"revenue_amount"`
	DealCount        int64           `json:"number_of_deals"`
	CommissionEarned decimal.Decimal `json:"commission_earned"`
	DrawPayment      decimal.Decimal `json:"draw_payment"`
	PeriodType       string          `json:"period_type"`
	CreatedAt        string          `json:"created_at"`
	UpdatedAt        string          `json:"updated_at"`
}

type ListSalesResponse struct {
	Sales      []SaleResponse `json:"sales"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalItems int64          `json:"total_items"`
	TotalPages int            `json:"total_pages"`
}

func NewSaleResponse(rec SaleRecord) SaleResponse {
	return SaleResponse{
		ID:               rec.ID,
		EmployeeID:       rec.EmployeeID,
		Date:             rec.Date.Format("2006-01-02"),
		RevenueAmount:    rec.RevenueAmount,
		DealCount:        rec.DealCount,
		CommissionEarned: rec.CommissionEarned,
		DrawPayment:      rec.DrawPayment,
		PeriodType:       string(rec.PeriodType),
		CreatedAt:        rec.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        rec.UpdatedAt.Format(time.RFC3339),
	}
}

func NewSaleWithEmployeeResponse(rec SaleWithEmployee) SaleResponse {
	resp := NewSaleResponse(rec.SaleRecord)
	resp.EmployeeName = rec.EmployeeName
	return resp
}
