package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID             string
	Name           string
	HireDate       time.Time
	IsActive       bool
	CommissionRate decimal.Decimal
	DrawAmount     decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
