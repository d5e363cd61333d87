// Package period resolves the time windows used for sales aggregation.
// Every window is half-open: a record belongs to a bucket when
// bucket.Start <= record date < bucket.End, so boundary dates are never
// counted twice.
package period

import (
	"fmt"
	"strconv"
	"time"
)

// DateLayout is the wire format for calendar dates across the API.
const DateLayout = "2006-01-02"

type Type string

const (
	TypeYTD     Type = "ytd"
	TypeWeek    Type = "week"
	TypeMonth   Type = "month"
	TypeQuarter Type = "quarter"
	TypeYear    Type = "year"
	TypeCustom  Type = "custom"
)

// Valid reports whether t names a selectable aggregation window.
func (t Type) Valid() bool {
	switch t {
	case TypeYTD, TypeWeek, TypeMonth, TypeQuarter, TypeYear, TypeCustom:
		return true
	}
	return false
}

// ValidForEntry reports whether t may tag an individual sale record.
// YTD and custom are query-side selections only.
func (t Type) ValidForEntry() bool {
	switch t {
	case TypeWeek, TypeMonth, TypeQuarter, TypeYear:
		return true
	}
	return false
}

// Granularity is the sub-bucket size a window splits into for trend
// series.
type Granularity string

const (
	GranularityDaily     Granularity = "daily"
	GranularityMonthly   Granularity = "monthly"
	GranularityQuarterly Granularity = "quarterly"
)

// Bucket is a half-open window [Start, End).
type Bucket struct {
	Label string
	Start time.Time
	End   time.Time
}

// Contains reports half-open membership: Start <= t < End.
func (b Bucket) Contains(t time.Time) bool {
	return !t.Before(b.Start) && t.Before(b.End)
}

// Days returns the span of the window in whole days.
func (b Bucket) Days() int {
	return int(b.End.Sub(b.Start).Hours() / 24)
}

// Granularity picks the trend sub-bucket size from the window span:
// up to 31 days splits daily, up to a year splits monthly, anything
// longer splits quarterly.
func (b Bucket) Granularity() Granularity {
	days := b.Days()
	switch {
	case days <= 31:
		return GranularityDaily
	case days <= 366:
		return GranularityMonthly
	default:
		return GranularityQuarterly
	}
}

// SubBuckets splits the window into consecutive sub-windows at the
// size chosen by Granularity. The first and last sub-bucket are
// clipped to the outer bounds, so the result tiles [Start, End)
// exactly and per-sub-bucket totals always sum back to the outer
// total.
func (b Bucket) SubBuckets() []Bucket {
	var out []Bucket

	switch b.Granularity() {
	case GranularityDaily:
		for cur := b.Start; cur.Before(b.End); {
			next := clip(cur.AddDate(0, 0, 1), b.End)
			out = append(out, Bucket{
				Label: cur.Format(DateLayout),
				Start: cur,
				End:   next,
			})
			cur = next
		}
	case GranularityMonthly:
		for cur := b.Start; cur.Before(b.End); {
			monthStart := time.Date(cur.Year(), cur.Month(), 1, 0, 0, 0, 0, time.UTC)
			next := clip(monthStart.AddDate(0, 1, 0), b.End)
			out = append(out, Bucket{
				Label: monthStart.Format("Jan 2006"),
				Start: cur,
				End:   next,
			})
			cur = next
		}
	case GranularityQuarterly:
		for cur := b.Start; cur.Before(b.End); {
			q := quarterOf(cur.Month())
			quarterStart := time.Date(cur.Year(), time.Month((q-1)*3+1), 1, 0, 0, 0, 0, time.UTC)
			next := clip(quarterStart.AddDate(0, 3, 0), b.End)
			out = append(out, Bucket{
				Label: fmt.Sprintf("Q%d %d", q, cur.Year()),
				Start: cur,
				End:   next,
			})
			cur = next
		}
	}

	return out
}

// Spec selects one aggregation window before resolution. Custom specs
// carry an end-inclusive date range as entered by the caller; Resolve
// converts it to the half-open form.
type Spec struct {
	Type    Type
	Anchor  time.Time
	Year    int
	Month   time.Month
	Quarter int
	Start   time.Time
	End     time.Time
}

func YTD(today time.Time) Spec {
	return Spec{Type: TypeYTD, Anchor: today}
}

func Week(anchor time.Time) Spec {
	return Spec{Type: TypeWeek, Anchor: anchor}
}

func Month(year int, month time.Month) Spec {
	return Spec{Type: TypeMonth, Year: year, Month: month}
}

func Quarter(year, quarter int) Spec {
	return Spec{Type: TypeQuarter, Year: year, Quarter: quarter}
}

func Year(year int) Spec {
	return Spec{Type: TypeYear, Year: year}
}

// Custom selects [start, end] where end is the last included day.
func Custom(start, end time.Time) Spec {
	return Spec{Type: TypeCustom, Start: start, End: end}
}

// Resolve turns the spec into a concrete half-open bucket.
func (s Spec) Resolve() (Bucket, error) {
	switch s.Type {
	case TypeYTD:
		today := dateOf(s.Anchor)
		start := time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		return Bucket{
			Label: fmt.Sprintf("YTD %d", today.Year()),
			Start: start,
			End:   today.AddDate(0, 0, 1),
		}, nil
	case TypeWeek:
		start := startOfISOWeek(dateOf(s.Anchor))
		return Bucket{
			Label: "Week of " + start.Format("Jan 2, 2006"),
			Start: start,
			End:   start.AddDate(0, 0, 7),
		}, nil
	case TypeMonth:
		if err := validYear(s.Year); err != nil {
			return Bucket{}, err
		}
		if s.Month < time.January || s.Month > time.December {
			return Bucket{}, ErrInvalidMonth
		}
		start := time.Date(s.Year, s.Month, 1, 0, 0, 0, 0, time.UTC)
		return Bucket{
			Label: start.Format("Jan 2006"),
			Start: start,
			End:   start.AddDate(0, 1, 0),
		}, nil
	case TypeQuarter:
		if err := validYear(s.Year); err != nil {
			return Bucket{}, err
		}
		if s.Quarter < 1 || s.Quarter > 4 {
			return Bucket{}, ErrInvalidQuarter
		}
		start := time.Date(s.Year, time.Month((s.Quarter-1)*3+1), 1, 0, 0, 0, 0, time.UTC)
		return Bucket{
			Label: fmt.Sprintf("Q%d %d", s.Quarter, s.Year),
			Start: start,
			End:   start.AddDate(0, 3, 0),
		}, nil
	case TypeYear:
		if err := validYear(s.Year); err != nil {
			return Bucket{}, err
		}
		start := time.Date(s.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
		return Bucket{
			Label: strconv.Itoa(s.Year),
			Start: start,
			End:   start.AddDate(1, 0, 0),
		}, nil
	case TypeCustom:
		start := dateOf(s.Start)
		end := dateOf(s.End)
		if s.Start.IsZero() || s.End.IsZero() || start.After(end) {
			return Bucket{}, ErrInvalidRange
		}
		return Bucket{
			Label: start.Format(DateLayout) + " to " + end.Format(DateLayout),
			Start: start,
			End:   end.AddDate(0, 0, 1),
		}, nil
	default:
		return Bucket{}, ErrInvalidPeriodType
	}
}

// Query carries a raw period selection as it arrives on the wire.
type Query struct {
	Period  string
	Anchor  string
	Year    string
	Month   string
	Quarter string
	Start   string
	End     string
}

// ParseSpec resolves a raw query into a Spec. An empty period falls
// back to def, and an empty def falls back to year-to-date. Missing
// year/month/quarter/anchor values default to the current date's.
func ParseSpec(q Query, def Type, now time.Time) (Spec, error) {
	today := dateOf(now)

	t := Type(q.Period)
	if q.Period == "" {
		t = def
	}
	if t == "" {
		t = TypeYTD
	}
	if !t.Valid() {
		return Spec{}, ErrInvalidPeriodType
	}

	switch t {
	case TypeYTD:
		return YTD(today), nil
	case TypeWeek:
		anchor := today
		if q.Anchor != "" {
			parsed, err := time.Parse(DateLayout, q.Anchor)
			if err != nil {
				return Spec{}, ErrInvalidDate
			}
			anchor = parsed
		}
		return Week(anchor), nil
	case TypeMonth:
		year, err := parseIntOr(q.Year, today.Year(), ErrInvalidYear)
		if err != nil {
			return Spec{}, err
		}
		month, err := parseIntOr(q.Month, int(today.Month()), ErrInvalidMonth)
		if err != nil {
			return Spec{}, err
		}
		return Month(year, time.Month(month)), nil
	case TypeQuarter:
		year, err := parseIntOr(q.Year, today.Year(), ErrInvalidYear)
		if err != nil {
			return Spec{}, err
		}
		quarter, err := parseIntOr(q.Quarter, quarterOf(today.Month()), ErrInvalidQuarter)
		if err != nil {
			return Spec{}, err
		}
		return Quarter(year, quarter), nil
	case TypeYear:
		year, err := parseIntOr(q.Year, today.Year(), ErrInvalidYear)
		if err != nil {
			return Spec{}, err
		}
		return Year(year), nil
	default: // TypeCustom
		if q.Start == "" || q.End == "" {
			return Spec{}, ErrInvalidRange
		}
		start, err := time.Parse(DateLayout, q.Start)
		if err != nil {
			return Spec{}, ErrInvalidDate
		}
		end, err := time.Parse(DateLayout, q.End)
		if err != nil {
			return Spec{}, ErrInvalidDate
		}
		return Custom(start, end), nil
	}
}

func parseIntOr(raw string, fallback int, invalid error) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, invalid
	}
	return v, nil
}

func validYear(year int) error {
	if year < 1000 || year > 9999 {
		return ErrInvalidYear
	}
	return nil
}

func quarterOf(m time.Month) int {
	return (int(m)-1)/3 + 1
}

// dateOf normalizes to midnight UTC so bucket membership only ever
// compares calendar dates.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func startOfISOWeek(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday
	}
	return t.AddDate(0, 0, 1-weekday)
}

func clip(t, max time.Time) time.Time {
	if t.After(max) {
		return max
	}
	return t
}
