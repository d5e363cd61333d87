// Package bulkimport validates CSV sale batches row by row. A bad row
// is recorded and skipped, never fatal; only a missing required column
// rejects the whole batch.
package bulkimport

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/salescope/salestracker-backend-go/internal/domain/commission"
	"github.com/salescope/salestracker-backend-go/internal/domain/employee"
	"github.com/salescope/salestracker-backend-go/internal/domain/period"
	"github.com/salescope/salestracker-backend-go/internal/domain/sale"
	"github.com/salescope/salestracker-backend-go/internal/pkg/validator"
)

// Column names recognized in the header row, matched case-insensitively
// after trimming. DrawPayment is the only optional column.
const (
	ColumnEmployeeName = "employee_name"
	ColumnDate         = "date"
	ColumnRevenue      = "revenue_amount"
	ColumnDeals        = "number_of_deals"
	ColumnDraw         = "draw_payment"
)

var requiredColumns = []string{ColumnEmployeeName, ColumnDate, ColumnRevenue, ColumnDeals}

type RejectReason string

const (
	ReasonUnknownEmployee RejectReason = "unknown_employee"
	ReasonInvalidDate     RejectReason = "invalid_date"
	ReasonInvalidAmount   RejectReason = "invalid_amount"
	ReasonInvalidCount    RejectReason = "invalid_count"
)

// RejectedRow names one skipped data row. Row is 1-based, counted from
// the first row after the header.
type RejectedRow struct {
	Row    int
	Reason RejectReason
	Detail string
}

// Draft is an accepted row turned into a record ready for insertion.
// ID and timestamps are left for the repository to assign.
type Draft struct {
	Row    int
	Record sale.SaleRecord
}

// BatchResult splits a parsed batch into accepted drafts and rejected
// rows, both in original row order.
type BatchResult struct {
	Accepted []Draft
	Rejected []RejectedRow
}

// EmployeeLookup resolves a trimmed employee name, case-insensitively.
// It should only yield employees eligible for new sale entries.
type EmployeeLookup func(name string) (employee.Employee, bool)

// ParseBatch validates every data row against the header layout.
// Commission for accepted rows is computed with the matched employee's
// current rate. Returns ErrMissingColumn when a required header column
// is absent; row-level problems land in Rejected instead of an error.
func ParseBatch(header []string, rows [][]string, lookup EmployeeLookup) (BatchResult, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return BatchResult{}, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}

	cell := func(row []string, column string) string {
		idx, ok := cols[column]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}
	_, hasDraw := cols[ColumnDraw]

	var result BatchResult
	for i, row := range rows {
		line := i + 1

		name := cell(row, ColumnEmployeeName)
		emp, ok := lookup(name)
		if name == "" || !ok {
			result.Rejected = append(result.Rejected, RejectedRow{
				Row:    line,
				Reason: ReasonUnknownEmployee,
				Detail: fmt.Sprintf("no active employee named %q", name),
			})
			continue
		}

		date, err := time.Parse(period.DateLayout, cell(row, ColumnDate))
		if err != nil {
			result.Rejected = append(result.Rejected, RejectedRow{
				Row:    line,
				Reason: ReasonInvalidDate,
				Detail: "date must be in YYYY-MM-DD format",
			})
			continue
		}

		revenue, ok := validator.IsNonNegativeDecimal(cell(row, ColumnRevenue))
		if !ok {
			result.Rejected = append(result.Rejected, RejectedRow{
				Row:    line,
				Reason: ReasonInvalidAmount,
				Detail: "revenue_amount must be a non-negative number",
			})
			continue
		}

		deals, err := strconv.ParseInt(cell(row, ColumnDeals), 10, 64)
		if err != nil || deals < 0 {
			result.Rejected = append(result.Rejected, RejectedRow{
				Row:    line,
				Reason: ReasonInvalidCount,
				Detail: "number_of_deals must be a non-negative integer",
			})
			continue
		}

		draw := decimal.Zero
		if raw := cell(row, ColumnDraw); hasDraw && raw != "" {
			draw, ok = validator.IsNonNegativeDecimal(raw)
			if !ok {
				result.Rejected = append(result.Rejected, RejectedRow{
					Row:    line,
					Reason: ReasonInvalidAmount,
					Detail: "draw_payment must be a non-negative number",
				})
				continue
			}
		}

		earned, err := commission.Compute(revenue, emp.CommissionRate)
		if err != nil {
			result.Rejected = append(result.Rejected, RejectedRow{
				Row:    line,
				Reason: ReasonInvalidAmount,
				Detail: err.Error(),
			})
			continue
		}

		result.Accepted = append(result.Accepted, Draft{
			Row: line,
			Record: sale.SaleRecord{
				EmployeeID:       emp.ID,
				Date:             date,
				RevenueAmount:    revenue,
				DealCount:        deals,
				CommissionEarned: earned,
				DrawPayment:      draw,
				PeriodType:       period.TypeMonth,
			},
		})
	}

	return result, nil
}
