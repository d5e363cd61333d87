package sale

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/salescope/salestracker-backend-go/internal/domain/period"
)

// SaleRecord is one sale entry. CommissionEarned is a snapshot taken
// with the employee's rate at the time of entry; a later rate change
// never rewrites committed records. An explicit edit recomputes it
// with the rate current at edit time.
type SaleRecord struct {
	ID               string
	EmployeeID       string
	Date             time.Time
	RevenueAmount    decimal.Decimal
	DealCount        int64
	CommissionEarned decimal.Decimal
	DrawPayment      decimal.Decimal
	PeriodType       period.Type
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// SaleWithEmployee is a sale row joined with its owner's display name.
type SaleWithEmployee struct {
	SaleRecord
	EmployeeName string
}
