package sale

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type SaleRepository interface {
	GetByID(ctx context.Context, id string) (SaleRecord, error)
	GetWithEmployee(ctx context.Context, id string) (SaleWithEmployee, error)
	Create(ctx context.Context, rec SaleRecord) (SaleRecord, error)

	// BatchCreate inserts every record inside the caller's transaction.
	BatchCreate(ctx context.Context, recs []SaleRecord) error

	Update(ctx context.Context, rec SaleRecord) (SaleRecord, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter SaleFilter) ([]SaleWithEmployee, int64, error)
	ListRecent(ctx context.Context, limit int) ([]SaleWithEmployee, error)

	// ListInRange returns every record with date in [start, end),
	// ordered by date then creation time. Feeds the aggregator, which
	// wants whole windows rather than pages.
	ListInRange(ctx context.Context, start, end time.Time) ([]SaleWithEmployee, error)

	// ListByEmployee returns the employee's records with date in
	// [start, end), ordered by date then creation time.
	ListByEmployee(ctx context.Context, employeeID string, start, end time.Time) ([]SaleRecord, error)

	// PriorTotals sums commission and draw for records dated before the
	// given day. Feeds the opening value of balance ledgers.
	PriorTotals(ctx context.Context, employeeID string, before time.Time) (commission, draw decimal.Decimal, err error)

	CountByEmployee(ctx context.Context, employeeID string) (int64, error)
}
