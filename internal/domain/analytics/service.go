package analytics

import (
	"context"

	"github.com/salescope/salestracker-backend-go/internal/domain/period"
)

// AnalyticsService defines the reporting operations built on top of
// the aggregator. A zero-value Query falls back to the workspace's
// configured default period.
type AnalyticsService interface {
	// SalesData aggregates the window per employee and attaches the
	// revenue bar and deal-share pie series
	SalesData(ctx context.Context, q period.Query) (SalesDataResponse, error)

	// Trends returns the window's line series at the granularity the
	// window's length dictates
	Trends(ctx context.Context, q period.Query) (TrendsResponse, error)

	// Dashboard assembles summary, trends, recent sales, goal progress
	// and settings in one call
	Dashboard(ctx context.Context) (DashboardResponse, error)

	// ExportCSV renders the window's records as a CSV download
	ExportCSV(ctx context.Context, q period.Query) (Export, error)
}
