package goal

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/salescope/salestracker-backend-go/internal/domain/period"
	"github.com/salescope/salestracker-backend-go/internal/domain/sale"
	"github.com/salescope/salestracker-backend-go/internal/pkg/validator"
)

type CreateGoalRequest struct {
	EmployeeID  string          `json:"employee_id"`
	PeriodType  string          `json:"period_type"`
	PeriodStart string          `json:"period_start"`
	PeriodEnd   string          `json:"period_end"`
	RevenueGoal decimal.Decimal `json:"revenue_goal"`
	DealsGoal   int64           `json:"deals_goal"`
}

func (r *CreateGoalRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}

	if r.PeriodType != "" && !period.Type(r.PeriodType).ValidForEntry() {
		errs = append(errs, validator.ValidationError{Field: "period_type", Message: "period_type must be one of: week, month, quarter, year"})
	}

	start, startOK := validator.IsValidDate(r.PeriodStart)
	if !startOK {
		errs = append(errs, validator.ValidationError{Field: "period_start", Message: "period_start must be in YYYY-MM-DD format"})
	}
	end, endOK := validator.IsValidDate(r.PeriodEnd)
	if !endOK {
		errs = append(errs, validator.ValidationError{Field: "period_end", Message: "period_end must be in YYYY-MM-DD format"})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "period_end", Message: "period_end must not be before period_start"})
	}

	if r.RevenueGoal.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "revenue_goal", Message: "revenue_goal must not be negative"})
	}
	if r.DealsGoal < 0 {
		errs = append(errs, validator.ValidationError{Field: "deals_goal", Message: "deals_goal must not be negative"})
	}
	if r.RevenueGoal.IsZero() && r.DealsGoal == 0 {
		errs = append(errs, validator.ValidationError{Field: "revenue_goal", Message: "goal needs a revenue or deals target"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateGoalRequest struct {
	ID          string           `json:"-"`
	PeriodType  *string          `json:"period_type,omitempty"`
	PeriodStart *string          `json:"period_start,omitempty"`
	PeriodEnd   *string          `json:"period_end,omitempty"`
	RevenueGoal *decimal.Decimal `json:"revenue_goal,omitempty"`
	DealsGoal   *int64           `json:"deals_goal,omitempty"`
}

func (r *UpdateGoalRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.PeriodType != nil && !period.Type(*r.PeriodType).ValidForEntry() {
		errs = append(errs, validator.ValidationError{Field: "period_type", Message: "period_type must be one of: week, month, quarter, year"})
	}
	if r.PeriodStart != nil {
		if _, ok := validator.IsValidDate(*r.PeriodStart); !ok {
			errs = append(errs, validator.ValidationError{Field: "period_start", Message: "period_start must be in YYYY-MM-DD format"})
		}
	}
	if r.PeriodEnd != nil {
		if _, ok := validator.IsValidDate(*r.PeriodEnd); !ok {
			errs = append(errs, validator.ValidationError{Field: "period_end", Message: "period_end must be in YYYY-MM-DD format"})
		}
	}
	if r.RevenueGoal != nil && r.RevenueGoal.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "revenue_goal", Message: "revenue_goal must not be negative"})
	}
	if r.DealsGoal != nil && *r.DealsGoal < 0 {
		errs = append(errs, validator.ValidationError{Field: "deals_goal", Message: "deals_goal must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type GoalFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	ActiveOn   *string `json:"active_on,omitempty"` // YYYY-MM-DD, goals whose range covers this date

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *GoalFilter) Validate() error {
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
	if f.ActiveOn != nil && *f.ActiveOn != "" {
		if _, ok := validator.IsValidDate(*f.ActiveOn); !ok {
			errs = append(errs, validator.ValidationError{Field: "active_on", Message: "active_on must be in YYYY-MM-DD format"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type GoalResponse struct {
	ID           string          `json:"id"`
	EmployeeID   string          `json:"employee_id"`
	EmployeeName string          `json:"employee_name,omitempty"`
	PeriodType   string          `json:"period_type"`
	PeriodStart  string          `json:"period_start"`
	PeriodEnd    string          `json:"period_end"`
	RevenueGoal  decimal.Decimal `json:"revenue_goal"`
	DealsGoal    int64           `json:"deals_goal"`
	CreatedAt    string          `json:"created_at"`
	UpdatedAt    string          `json:"updated_at"`
}

type ListGoalsResponse struct {
	Goals      []GoalResponse `json:"goals"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalItems int64          `json:"total_items"`
	TotalPages int            `json:"total_pages"`
}

func NewGoalResponse(g Goal) GoalResponse {
	return GoalResponse{
		ID:          g.ID,
		EmployeeID:  g.EmployeeID,
		PeriodType:  string(g.PeriodType),
		PeriodStart: g.PeriodStart.Format("2006-01-02"),
		PeriodEnd:   g.PeriodEnd.Format("2006-01-02"),
		RevenueGoal: g.RevenueGoal,
		DealsGoal:   g.DealsGoal,
		CreatedAt:   g.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   g.UpdatedAt.Format(time.RFC3339),
	}
}

func NewGoalWithEmployeeResponse(g GoalWithEmployee) GoalResponse {
	resp := NewGoalResponse(g.Goal)
	resp.EmployeeName = g.EmployeeName
	return resp
}

// ProgressResponse compares a goal's targets against the aggregated
// actuals for its date range. Percentages are rounded to one decimal
// place and are zero when the matching target is zero.
type ProgressResponse struct {
	Goal           GoalResponse    `json:"goal"`
	ActualRevenue  decimal.Decimal `json:"actual_revenue"`
	ActualDeals    int64           `json:"actual_deals"`
	RevenuePercent decimal.Decimal `json:"revenue_percent"`
	DealsPercent   decimal.Decimal `json:"deals_percent"`
}

var oneHundred = decimal.NewFromInt(100)

// NewProgressResponse folds records into attainment against the goal's
// targets. The caller has already restricted the records to the goal's
// date range; a zero target reports zero percent instead of dividing.
func NewProgressResponse(g GoalWithEmployee, records []sale.SaleRecord) ProgressResponse {
	actualRevenue := decimal.Zero
	var actualDeals int64
	for _, rec := range records {
		actualRevenue = actualRevenue.Add(rec.RevenueAmount)
		actualDeals += rec.DealCount
	}

	revenuePercent := decimal.Zero
	if g.RevenueGoal.IsPositive() {
		revenuePercent = actualRevenue.Div(g.RevenueGoal).Mul(oneHundred).Round(1)
	}
	dealsPercent := decimal.Zero
	if g.DealsGoal > 0 {
		dealsPercent = decimal.NewFromInt(actualDeals).Div(decimal.NewFromInt(g.DealsGoal)).Mul(oneHundred).Round(1)
	}

	return ProgressResponse{
		Goal:           NewGoalWithEmployeeResponse(g),
		ActualRevenue:  actualRevenue,
		ActualDeals:    actualDeals,
		RevenuePercent: revenuePercent,
		DealsPercent:   dealsPercent,
	}
}
