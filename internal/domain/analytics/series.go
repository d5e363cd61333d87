package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/salescope/salestracker-backend-go/internal/domain/period"
	"github.com/salescope/salestracker-backend-go/internal/domain/sale"
)

// SeriesKind tags a chart series with the renderer it targets.
type SeriesKind string

const (
	SeriesBar  SeriesKind = "bar"
	SeriesPie  SeriesKind = "pie"
	SeriesLine SeriesKind = "line"
)

// SeriesPoint is one labeled value in a bar or pie series.
type SeriesPoint struct {
	Label string
	Value decimal.Decimal
}

// ChartSeries is a flat label/value series for bar and pie charts.
type ChartSeries struct {
	Kind   SeriesKind
	Points []SeriesPoint
}

// TrendPoint is one sub-period sample on a line chart. End is
// exclusive, mirroring the bucket it was summed over.
type TrendPoint struct {
	Label   string
	Start   time.Time
	End     time.Time
	Revenue decimal.Decimal
	Deals   int64
}

// TrendSeries is a time-ordered line series at a single granularity.
type TrendSeries struct {
	Granularity period.Granularity
	Points      []TrendPoint
}

// BuildBarSeries maps an aggregate's per-employee revenue onto a bar
// series, keeping the aggregate's name-ascending order.
func BuildBarSeries(res AggregateResult) ChartSeries {
	series := ChartSeries{
		Kind:   SeriesBar,
		Points: make([]SeriesPoint, 0, len(res.ByEmployee)),
	}
	for _, grp := range res.ByEmployee {
		series.Points = append(series.Points, SeriesPoint{
			Label: grp.EmployeeName,
			Value: grp.Revenue,
		})
	}
	return series
}

// BuildPieSeries maps per-employee deal counts onto a pie series.
// Zero-deal groups are dropped so the chart never renders empty
// slices; an employee with revenue but no closed deals simply does not
// appear.
func BuildPieSeries(res AggregateResult) ChartSeries {
	series := ChartSeries{
		Kind:   SeriesPie,
		Points: make([]SeriesPoint, 0, len(res.ByEmployee)),
	}
	for _, grp := range res.ByEmployee {
		if grp.Deals == 0 {
			continue
		}
		series.Points = append(series.Points, SeriesPoint{
			Label: grp.EmployeeName,
			Value: decimal.NewFromInt(grp.Deals),
		})
	}
	return series
}

// BuildLineSeries tiles the window into sub-buckets and sums revenue
// and deals per tile. Every tile produces a point even when nothing
// fell inside it, so the line stays continuous across quiet stretches.
// Because the tiles partition the window, the points sum back to the
// window's own totals.
func BuildLineSeries(records []sale.SaleRecord, window period.Bucket) TrendSeries {
	subs := window.SubBuckets()
	series := TrendSeries{
		Granularity: window.Granularity(),
		Points:      make([]TrendPoint, 0, len(subs)),
	}
	for _, sub := range subs {
		point := TrendPoint{
			Label:   sub.Label,
			Start:   sub.Start,
			End:     sub.End,
			Revenue: decimal.Zero,
		}
		for _, rec := range records {
			if !sub.Contains(rec.Date) {
				continue
			}
			point.Revenue = point.Revenue.Add(rec.RevenueAmount)
			point.Deals += rec.DealCount
		}
		series.Points = append(series.Points, point)
	}
	return series
}
