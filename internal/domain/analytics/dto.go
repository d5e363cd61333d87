package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/salescope/salestracker-backend-go/internal/domain/goal"
	"github.com/salescope/salestracker-backend-go/internal/domain/period"
	"github.com/salescope/salestracker-backend-go/internal/domain/sale"
	"github.com/salescope/salestracker-backend-go/internal/domain/settings"
)

// WindowResponse describes the resolved reporting window. End is
// exclusive: the window covers dates from Start up to but not
// including End.
type WindowResponse struct {
	Period string `json:"period"`
	Label  string `json:"label"`
	Start  string `json:"start"`
	End    string `json:"end"`
}

func NewWindowResponse(t period.Type, b period.Bucket) WindowResponse {
	return WindowResponse{
		Period: string(t),
		Label:  b.Label,
		Start:  b.Start.Format(period.DateLayout),
		End:    b.End.Format(period.DateLayout),
	}
}

type TotalsResponse struct {
	Revenue     decimal.Decimal `json:"revenue"`
	Deals       int64           `json:"deals"`
	Commission  decimal.Decimal `json:"commission"`
	Draw        decimal.Decimal `json:"draw"`
	NetBalance  decimal.Decimal `json:"net_balance"`
	RecordCount int64           `json:"record_count"`
}

func NewTotalsResponse(t Totals) TotalsResponse {
	return TotalsResponse{
		Revenue:     t.Revenue,
		Deals:       t.Deals,
		Commission:  t.Commission,
		Draw:        t.Draw,
		NetBalance:  t.NetBalance,
		RecordCount: t.RecordCount,
	}
}

type EmployeeTotalsResponse struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	TotalsResponse
}

// SeriesResponse carries a bar or pie series as parallel label/value
// arrays, index-aligned for the chart renderer.
type SeriesResponse struct {
	Kind   string            `json:"kind"`
	Labels []string          `json:"labels"`
	Values []decimal.Decimal `json:"values"`
}

func NewSeriesResponse(s ChartSeries) SeriesResponse {
	resp := SeriesResponse{
		Kind:   string(s.Kind),
		Labels: make([]string, 0, len(s.Points)),
		Values: make([]decimal.Decimal, 0, len(s.Points)),
	}
	for _, p := range s.Points {
		resp.Labels = append(resp.Labels, p.Label)
		resp.Values = append(resp.Values, p.Value)
	}
	return resp
}

// SalesDataResponse is the per-employee breakdown for one window: the
// overall totals, each contributing employee's group, and the revenue
// bar plus deal-share pie built from those groups.
type SalesDataResponse struct {
	Window    WindowResponse           `json:"window"`
	Totals    TotalsResponse           `json:"totals"`
	Employees []EmployeeTotalsResponse `json:"employees"`
	Bar       SeriesResponse           `json:"bar"`
	Pie       SeriesResponse           `json:"pie"`
}

func NewSalesDataResponse(t period.Type, res AggregateResult) SalesDataResponse {
	resp := SalesDataResponse{
		Window:    NewWindowResponse(t, res.Window),
		Totals:    NewTotalsResponse(res.Overall),
		Employees: make([]EmployeeTotalsResponse, 0, len(res.ByEmployee)),
		Bar:       NewSeriesResponse(BuildBarSeries(res)),
		Pie:       NewSeriesResponse(BuildPieSeries(res)),
	}
	for _, grp := range res.ByEmployee {
		resp.Employees = append(resp.Employees, EmployeeTotalsResponse{
			EmployeeID:     grp.EmployeeID,
			EmployeeName:   grp.EmployeeName,
			TotalsResponse: NewTotalsResponse(grp.Totals),
		})
	}
	return resp
}

// TrendsResponse is a line series over the window's sub-periods,
// delivered as parallel arrays. Labels, Revenue and Deals share
// indexes; quiet sub-periods stay in place with zero values.
type TrendsResponse struct {
	Window      WindowResponse    `json:"window"`
	Granularity string            `json:"granularity"`
	Labels      []string          `json:"labels"`
	Revenue     []decimal.Decimal `json:"revenue"`
	Deals       []int64           `json:"deals"`
}

func NewTrendsResponse(t period.Type, window period.Bucket, series TrendSeries) TrendsResponse {
	resp := TrendsResponse{
		Window:      NewWindowResponse(t, window),
		Granularity: string(series.Granularity),
		Labels:      make([]string, 0, len(series.Points)),
		Revenue:     make([]decimal.Decimal, 0, len(series.Points)),
		Deals:       make([]int64, 0, len(series.Points)),
	}
	for _, p := range series.Points {
		resp.Labels = append(resp.Labels, p.Label)
		resp.Revenue = append(resp.Revenue, p.Revenue)
		resp.Deals = append(resp.Deals, p.Deals)
	}
	return resp
}

// DashboardSummaryResponse is the headline card of the dashboard.
// TopEmployee is the window's highest-revenue group, absent when the
// window has no records.
type DashboardSummaryResponse struct {
	Window          WindowResponse          `json:"window"`
	Totals          TotalsResponse          `json:"totals"`
	ActiveEmployees int64                   `json:"active_employees"`
	TopEmployee     *EmployeeTotalsResponse `json:"top_employee,omitempty"`
}

// DashboardResponse bundles everything the landing screen renders in a
// single round trip.
type DashboardResponse struct {
	Summary      DashboardSummaryResponse  `json:"summary"`
	Trends       TrendsResponse            `json:"trends"`
	RecentSales  []sale.SaleResponse       `json:"recent_sales"`
	GoalProgress []goal.ProgressResponse   `json:"goal_progress"`
	Settings     settings.SettingsResponse `json:"settings"`
}

// Export is a rendered CSV download: the suggested filename plus the
// file body.
type Export struct {
	Filename string
	Content  []byte
}
