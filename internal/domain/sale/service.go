package sale

import "context"

// SaleService defines business logic for sale record operations
type SaleService interface {
	// GetSale retrieves a single sale with its employee name
	GetSale(ctx context.Context, id string) (SaleResponse, error)

	// CreateSale validates the entry and snapshots commission with the
	// employee's current rate
	CreateSale(ctx context.Context, req CreateSaleRequest) (SaleResponse, error)

	// UpdateSale applies a partial edit. Commission is recomputed with
	// the owning employee's current rate.
	UpdateSale(ctx context.Context, req UpdateSaleRequest) (SaleResponse, error)

	// DeleteSale removes a sale record
	DeleteSale(ctx context.Context, id string) error

	// ListSales lists sales with filters and pagination
	ListSales(ctx context.Context, filter SaleFilter) (ListSalesResponse, error)

	// RecentSales returns the latest entries for the data entry screen
	RecentSales(ctx context.Context, limit int) ([]SaleResponse, error)
}
