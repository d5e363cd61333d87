package analytics

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/salescope/salestracker-backend-go/internal/domain/analytics"
	"github.com/salescope/salestracker-backend-go/internal/domain/employee"
	"github.com/salescope/salestracker-backend-go/internal/domain/goal"
	"github.com/salescope/salestracker-backend-go/internal/domain/period"
	"github.com/salescope/salestracker-backend-go/internal/domain/sale"
	"github.com/salescope/salestracker-backend-go/internal/domain/settings"
)

const dashboardRecentLimit = 5

type AnalyticsServiceImpl struct {
	saleRepo     sale.SaleRepository
	employeeRepo employee.EmployeeRepository
	goalRepo     goal.GoalRepository
	settingsRepo settings.SettingsRepository
}

func NewAnalyticsService(
	saleRepo sale.SaleRepository,
	employeeRepo employee.EmployeeRepository,
	goalRepo goal.GoalRepository,
	settingsRepo settings.SettingsRepository,
) analytics.AnalyticsService {
	return &AnalyticsServiceImpl{
		saleRepo:     saleRepo,
		employeeRepo: employeeRepo,
		goalRepo:     goalRepo,
		settingsRepo: settingsRepo,
	}
}

// resolveWindow turns a raw query into a concrete window. The stored
// default period is only consulted when the query names no period, so
// explicit requests skip the settings read.
func (s *AnalyticsServiceImpl) resolveWindow(ctx context.Context, q period.Query) (period.Type, period.Bucket, error) {
	var def period.Type
	if q.Period == "" {
		current, err := s.settingsRepo.Get(ctx)
		if err != nil {
			return "", period.Bucket{}, err
		}
		def = current.DefaultPeriod
	}

	spec, err := period.ParseSpec(q, def, time.Now())
	if err != nil {
		return "", period.Bucket{}, err
	}
	window, err := spec.Resolve()
	if err != nil {
		return "", period.Bucket{}, err
	}
	return spec.Type, window, nil
}

// fetchWindow loads the window's records in one query and splits the
// join into plain records plus the name carriers the aggregator
// resolves display names against.
func (s *AnalyticsServiceImpl) fetchWindow(ctx context.Context, window period.Bucket) ([]sale.SaleRecord, []employee.Employee, error) {
	sales, err := s.saleRepo.ListInRange(ctx, window.Start, window.End)
	if err != nil {
		return nil, nil, err
	}

	records := make([]sale.SaleRecord, 0, len(sales))
	names := make([]employee.Employee, 0, len(sales))
	seen := make(map[string]bool, len(sales))
	for _, rec := range sales {
		records = append(records, rec.SaleRecord)
		if !seen[rec.EmployeeID] {
			seen[rec.EmployeeID] = true
			names = append(names, employee.Employee{ID: rec.EmployeeID, Name: rec.EmployeeName})
		}
	}
	return records, names, nil
}

// SalesData implements analytics.AnalyticsService.
func (s *AnalyticsServiceImpl) SalesData(ctx context.Context, q period.Query) (analytics.SalesDataResponse, error) {
	t, window, err := s.resolveWindow(ctx, q)
	if err != nil {
		return analytics.SalesDataResponse{}, err
	}

	records, names, err := s.fetchWindow(ctx, window)
	if err != nil {
		return analytics.SalesDataResponse{}, err
	}

	res := analytics.Aggregate(records, names, window, true)
	return analytics.NewSalesDataResponse(t, res), nil
}

// Trends implements analytics.AnalyticsService.
func (s *AnalyticsServiceImpl) Trends(ctx context.Context, q period.Query) (analytics.TrendsResponse, error) {
	t, window, err := s.resolveWindow(ctx, q)
	if err != nil {
		return analytics.TrendsResponse{}, err
	}

	records, _, err := s.fetchWindow(ctx, window)
	if err != nil {
		return analytics.TrendsResponse{}, err
	}

	return analytics.NewTrendsResponse(t, window, analytics.BuildLineSeries(records, window)), nil
}

// Dashboard implements analytics.AnalyticsService. The independent
// sections are fetched in parallel goroutines and assembled once all
// of them land.
func (s *AnalyticsServiceImpl) Dashboard(ctx context.Context) (analytics.DashboardResponse, error) {
	current, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return analytics.DashboardResponse{}, err
	}

	now := time.Now()
	spec, err := period.ParseSpec(period.Query{}, current.DefaultPeriod, now)
	if err != nil {
		return analytics.DashboardResponse{}, err
	}
	window, err := spec.Resolve()
	if err != nil {
		return analytics.DashboardResponse{}, err
	}

	var (
		windowAgg    analytics.AggregateResult
		line         analytics.TrendSeries
		activeCount  int64
		recentSales  []sale.SaleResponse
		goalProgress []goal.ProgressResponse
	)

	g, gCtx := errgroup.WithContext(ctx)

	// 1. Window totals plus trend line (1 query)
	g.Go(func() error {
		records, names, err := s.fetchWindow(gCtx, window)
		if err != nil {
			return err
		}
		windowAgg = analytics.Aggregate(records, names, window, true)
		line = analytics.BuildLineSeries(records, window)
		return nil
	})

	// 2. Active head count (1 query)
	g.Go(func() error {
		count, err := s.employeeRepo.CountActive(gCtx)
		if err != nil {
			return err
		}
		activeCount = count
		return nil
	})

	// 3. Latest entries (1 query)
	g.Go(func() error {
		sales, err := s.saleRepo.ListRecent(gCtx, dashboardRecentLimit)
		if err != nil {
			return err
		}
		recentSales = make([]sale.SaleResponse, 0, len(sales))
		for _, rec := range sales {
			recentSales = append(recentSales, sale.NewSaleWithEmployeeResponse(rec))
		}
		return nil
	})

	// 4. Attainment for goals running today (1 query + 1 per goal)
	g.Go(func() error {
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		goals, err := s.goalRepo.ListOverlapping(gCtx, today, today.AddDate(0, 0, 1))
		if err != nil {
			return err
		}
		goalProgress = make([]goal.ProgressResponse, 0, len(goals))
		for _, gl := range goals {
			goalWindow, err := period.Custom(gl.PeriodStart, gl.PeriodEnd).Resolve()
			if err != nil {
				return fmt.Errorf("failed to resolve goal range: %w", err)
			}
			records, err := s.saleRepo.ListByEmployee(gCtx, gl.EmployeeID, goalWindow.Start, goalWindow.End)
			if err != nil {
				return err
			}
			goalProgress = append(goalProgress, goal.NewProgressResponse(gl, records))
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return analytics.DashboardResponse{}, err
	}

	return analytics.DashboardResponse{
		Summary: analytics.DashboardSummaryResponse{
			Window:          analytics.NewWindowResponse(spec.Type, window),
			Totals:          analytics.NewTotalsResponse(windowAgg.Overall),
			ActiveEmployees: activeCount,
			TopEmployee:     topEmployee(windowAgg),
		},
		Trends:       analytics.NewTrendsResponse(spec.Type, window, line),
		RecentSales:  recentSales,
		GoalProgress: goalProgress,
		Settings:     settings.NewSettingsResponse(current),
	}, nil
}

// topEmployee picks the window's highest-revenue group. Ties keep the
// first group in the aggregate's name-ascending order.
func topEmployee(res analytics.AggregateResult) *analytics.EmployeeTotalsResponse {
	best := -1
	for i := range res.ByEmployee {
		if best == -1 || res.ByEmployee[i].Revenue.GreaterThan(res.ByEmployee[best].Revenue) {
			best = i
		}
	}
	if best == -1 {
		return nil
	}
	grp := res.ByEmployee[best]
	return &analytics.EmployeeTotalsResponse{
		EmployeeID:     grp.EmployeeID,
		EmployeeName:   grp.EmployeeName,
		TotalsResponse: analytics.NewTotalsResponse(grp.Totals),
	}
}

// ExportCSV implements analytics.AnalyticsService. One row per
// employee with records in the window, closed by an overall TOTAL row.
func (s *AnalyticsServiceImpl) ExportCSV(ctx context.Context, q period.Query) (analytics.Export, error) {
	_, window, err := s.resolveWindow(ctx, q)
	if err != nil {
		return analytics.Export{}, err
	}

	records, names, err := s.fetchWindow(ctx, window)
	if err != nil {
		return analytics.Export{}, err
	}

	res := analytics.Aggregate(records, names, window, true)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	rows := [][]string{{"employee", "revenue", "deals", "commission", "draw", "net_balance"}}
	for _, grp := range res.ByEmployee {
		rows = append(rows, []string{
			grp.EmployeeName,
			grp.Revenue.StringFixed(2),
			strconv.FormatInt(grp.Deals, 10),
			grp.Commission.StringFixed(2),
			grp.Draw.StringFixed(2),
			grp.NetBalance.StringFixed(2),
		})
	}
	rows = append(rows, []string{
		"TOTAL",
		res.Overall.Revenue.StringFixed(2),
		strconv.FormatInt(res.Overall.Deals, 10),
		res.Overall.Commission.StringFixed(2),
		res.Overall.Draw.StringFixed(2),
		res.Overall.NetBalance.StringFixed(2),
	})

	if err := w.WriteAll(rows); err != nil {
		return analytics.Export{}, fmt.Errorf("failed to render csv: %w", err)
	}

	// Filename carries the last included day, matching how callers
	// entered the range.
	lastDay := window.End.AddDate(0, 0, -1)
	filename := fmt.Sprintf("sales_%s_%s.csv",
		window.Start.Format(period.DateLayout), lastDay.Format(period.DateLayout))

	return analytics.Export{Filename: filename, Content: buf.Bytes()}, nil
}
