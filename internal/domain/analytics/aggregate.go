// Package analytics turns sale records into period-bucketed totals and
// chart-ready series. Everything here is a pure computation over an
// in-memory snapshot: repositories fetch, this package folds. Runs are
// deterministic, so the same inputs always produce identical results.
package analytics

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/salescope/salestracker-backend-go/internal/domain/employee"
	"github.com/salescope/salestracker-backend-go/internal/domain/period"
	"github.com/salescope/salestracker-backend-go/internal/domain/sale"
)

// Totals is one aggregation group's sums. NetBalance is commission
// earned minus draws paid inside the window; negative means the group
// drew more than it earned.
type Totals struct {
	Revenue     decimal.Decimal
	Deals       int64
	Commission  decimal.Decimal
	Draw        decimal.Decimal
	NetBalance  decimal.Decimal
	RecordCount int64
}

func zeroTotals() Totals {
	return Totals{
		Revenue:    decimal.Zero,
		Commission: decimal.Zero,
		Draw:       decimal.Zero,
		NetBalance: decimal.Zero,
	}
}

func (t *Totals) add(rec sale.SaleRecord) {
	t.Revenue = t.Revenue.Add(rec.RevenueAmount)
	t.Deals += rec.DealCount
	t.Commission = t.Commission.Add(rec.CommissionEarned)
	t.Draw = t.Draw.Add(rec.DrawPayment)
	t.NetBalance = t.Commission.Sub(t.Draw)
	t.RecordCount++
}

// EmployeeTotals is one employee's group inside an aggregate.
type EmployeeTotals struct {
	EmployeeID   string
	EmployeeName string
	Totals
}

// AggregateResult holds the overall totals for a window plus, when
// grouping was requested, one group per employee that has at least one
// record inside it.
type AggregateResult struct {
	Window     period.Bucket
	Overall    Totals
	ByEmployee []EmployeeTotals
}

// Aggregate buckets records into the half-open window and sums revenue,
// deals, commission and draw. Membership follows the bucket rule
// (Start <= date < End), so a record dated exactly at the window's end
// belongs to the next window, never this one. Employees are only used
// to resolve display names; an id without a match keeps the id as its
// label. Empty input yields a zero-filled result, never an error.
func Aggregate(records []sale.SaleRecord, employees []employee.Employee, window period.Bucket, groupByEmployee bool) AggregateResult {
	result := AggregateResult{
		Window:  window,
		Overall: zeroTotals(),
	}

	names := make(map[string]string, len(employees))
	for _, emp := range employees {
		names[emp.ID] = emp.Name
	}

	groups := make(map[string]*EmployeeTotals)
	for _, rec := range records {
		if !window.Contains(rec.Date) {
			continue
		}

		result.Overall.add(rec)

		if !groupByEmployee {
			continue
		}
		grp, ok := groups[rec.EmployeeID]
		if !ok {
			name := names[rec.EmployeeID]
			if name == "" {
				name = rec.EmployeeID
			}
			grp = &EmployeeTotals{
				EmployeeID:   rec.EmployeeID,
				EmployeeName: name,
				Totals:       zeroTotals(),
			}
			groups[rec.EmployeeID] = grp
		}
		grp.add(rec)
	}

	if !groupByEmployee {
		return result
	}

	result.ByEmployee = make([]EmployeeTotals, 0, len(groups))
	for _, grp := range groups {
		result.ByEmployee = append(result.ByEmployee, *grp)
	}
	// Display-name ascending; ids only break exact-name ties so the
	// ordering stays stable.
	sort.Slice(result.ByEmployee, func(i, j int) bool {
		a := strings.ToLower(result.ByEmployee[i].EmployeeName)
		b := strings.ToLower(result.ByEmployee[j].EmployeeName)
		if a != b {
			return a < b
		}
		return result.ByEmployee[i].EmployeeID < result.ByEmployee[j].EmployeeID
	})

	return result
}
