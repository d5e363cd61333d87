package goal

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/salescope/salestracker-backend-go/internal/domain/period"
)

// Goal is a revenue/deal target for one employee over an explicit date
// range. PeriodStart and PeriodEnd are both included in the range.
type Goal struct {
	ID          string
	EmployeeID  string
	PeriodType  period.Type
	PeriodStart time.Time
	PeriodEnd   time.Time
	RevenueGoal decimal.Decimal
	DealsGoal   int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type GoalWithEmployee struct {
	Goal
	EmployeeName string
}
