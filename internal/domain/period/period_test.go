package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(DateLayout, value)
	require.NoError(t, err)
	return parsed
}

func TestTypeValid(t *testing.T) {
	for _, typ := range []Type{TypeYTD, TypeWeek, TypeMonth, TypeQuarter, TypeYear, TypeCustom} {
		assert.True(t, typ.Valid(), "%s should be valid", typ)
	}
	assert.False(t, Type("fortnight").Valid())
	assert.False(t, Type("").Valid())
}

func TestTypeValidForEntry(t *testing.T) {
	assert.True(t, TypeMonth.ValidForEntry())
	assert.True(t, TypeWeek.ValidForEntry())
	assert.False(t, TypeYTD.ValidForEntry())
	assert.False(t, TypeCustom.ValidForEntry())
}

func TestResolveYTD(t *testing.T) {
	bucket, err := YTD(date(t, "2024-03-15")).Resolve()
	require.NoError(t, err)

	assert.Equal(t, "YTD 2024", bucket.Label)
	assert.Equal(t, date(t, "2024-01-01"), bucket.Start)
	// End is exclusive, so it sits one day past the anchor.
	assert.Equal(t, date(t, "2024-03-16"), bucket.End)
	assert.True(t, bucket.Contains(date(t, "2024-03-15")))
	assert.False(t, bucket.Contains(date(t, "2024-03-16")))
	assert.False(t, bucket.Contains(date(t, "2023-12-31")))
}

func TestResolveWeekStartsMonday(t *testing.T) {
	tests := []struct {
		anchor string
		start  string
	}{
		{"2024-03-13", "2024-03-11"}, // Wednesday
		{"2024-03-11", "2024-03-11"}, // Monday itself
		{"2024-03-17", "2024-03-11"}, // Sunday closes the week
		{"2024-03-18", "2024-03-18"}, // next Monday
	}

	for _, tt := range tests {
		bucket, err := Week(date(t, tt.anchor)).Resolve()
		require.NoError(t, err)
		assert.Equal(t, date(t, tt.start), bucket.Start, "anchor %s", tt.anchor)
		assert.Equal(t, date(t, tt.start).AddDate(0, 0, 7), bucket.End)
	}
}

func TestResolveWeekAcrossYearBoundary(t *testing.T) {
	// Jan 1 2025 is a Wednesday; its ISO week starts Dec 30 2024.
	bucket, err := Week(date(t, "2025-01-01")).Resolve()
	require.NoError(t, err)

	assert.Equal(t, date(t, "2024-12-30"), bucket.Start)
	assert.Equal(t, date(t, "2025-01-06"), bucket.End)
	assert.True(t, bucket.Contains(date(t, "2024-12-31")))
	assert.True(t, bucket.Contains(date(t, "2025-01-05")))
	assert.False(t, bucket.Contains(date(t, "2025-01-06")))
}

func TestResolveMonth(t *testing.T) {
	bucket, err := Month(2024, time.February).Resolve()
	require.NoError(t, err)

	assert.Equal(t, "Feb 2024", bucket.Label)
	assert.Equal(t, date(t, "2024-02-01"), bucket.Start)
	assert.Equal(t, date(t, "2024-03-01"), bucket.End)
	assert.Equal(t, 29, bucket.Days()) // leap year
	assert.True(t, bucket.Contains(date(t, "2024-02-29")))
	assert.False(t, bucket.Contains(date(t, "2024-03-01")))
}

func TestResolveMonthRejectsBadInputs(t *testing.T) {
	_, err := Month(2024, time.Month(13)).Resolve()
	assert.ErrorIs(t, err, ErrInvalidMonth)

	_, err = Month(99, time.January).Resolve()
	assert.ErrorIs(t, err, ErrInvalidYear)
}

func TestResolveQuarter(t *testing.T) {
	bucket, err := Quarter(2024, 4).Resolve()
	require.NoError(t, err)

	assert.Equal(t, "Q4 2024", bucket.Label)
	assert.Equal(t, date(t, "2024-10-01"), bucket.Start)
	assert.Equal(t, date(t, "2025-01-01"), bucket.End)

	_, err = Quarter(2024, 5).Resolve()
	assert.ErrorIs(t, err, ErrInvalidQuarter)
	_, err = Quarter(2024, 0).Resolve()
	assert.ErrorIs(t, err, ErrInvalidQuarter)
}

func TestResolveYear(t *testing.T) {
	bucket, err := Year(2024).Resolve()
	require.NoError(t, err)

	assert.Equal(t, "2024", bucket.Label)
	assert.Equal(t, date(t, "2024-01-01"), bucket.Start)
	assert.Equal(t, date(t, "2025-01-01"), bucket.End)
	assert.False(t, bucket.Contains(date(t, "2023-12-31")))
	assert.True(t, bucket.Contains(date(t, "2024-01-01")))
	assert.True(t, bucket.Contains(date(t, "2024-12-31")))
	assert.False(t, bucket.Contains(date(t, "2025-01-01")))
}

func TestResolveCustomEndInclusive(t *testing.T) {
	bucket, err := Custom(date(t, "2024-01-10"), date(t, "2024-01-20")).Resolve()
	require.NoError(t, err)

	assert.Equal(t, date(t, "2024-01-10"), bucket.Start)
	assert.Equal(t, date(t, "2024-01-21"), bucket.End)
	assert.True(t, bucket.Contains(date(t, "2024-01-20")))
	assert.False(t, bucket.Contains(date(t, "2024-01-21")))
	assert.Equal(t, 11, bucket.Days())
}

func TestResolveCustomSingleDay(t *testing.T) {
	bucket, err := Custom(date(t, "2024-06-15"), date(t, "2024-06-15")).Resolve()
	require.NoError(t, err)

	assert.Equal(t, 1, bucket.Days())
	assert.True(t, bucket.Contains(date(t, "2024-06-15")))
}

func TestResolveCustomRejectsReversedRange(t *testing.T) {
	_, err := Custom(date(t, "2024-02-01"), date(t, "2024-01-01")).Resolve()
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = Spec{Type: TypeCustom}.Resolve()
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestResolveUnknownType(t *testing.T) {
	_, err := Spec{Type: Type("decade")}.Resolve()
	assert.ErrorIs(t, err, ErrInvalidPeriodType)
}

func TestGranularityThresholds(t *testing.T) {
	month, err := Month(2024, time.January).Resolve()
	require.NoError(t, err)
	assert.Equal(t, GranularityDaily, month.Granularity())

	year, err := Year(2024).Resolve()
	require.NoError(t, err)
	assert.Equal(t, GranularityMonthly, year.Granularity())

	long, err := Custom(date(t, "2023-01-01"), date(t, "2024-06-30")).Resolve()
	require.NoError(t, err)
	assert.Equal(t, GranularityQuarterly, long.Granularity())
}

func TestSubBucketsTileExactly(t *testing.T) {
	windows := []Spec{
		Month(2024, time.February),
		Quarter(2024, 1),
		Year(2024),
		Custom(date(t, "2024-01-15"), date(t, "2024-04-10")),
		Custom(date(t, "2022-07-01"), date(t, "2024-02-15")),
	}

	for _, spec := range windows {
		bucket, err := spec.Resolve()
		require.NoError(t, err)

		subs := bucket.SubBuckets()
		require.NotEmpty(t, subs)
		assert.Equal(t, bucket.Start, subs[0].Start)
		assert.Equal(t, bucket.End, subs[len(subs)-1].End)
		for i := 1; i < len(subs); i++ {
			assert.Equal(t, subs[i-1].End, subs[i].Start, "gap between sub-buckets of %s", bucket.Label)
		}
	}
}

func TestSubBucketsQuarterlyLabels(t *testing.T) {
	bucket, err := Custom(date(t, "2023-01-01"), date(t, "2024-06-30")).Resolve()
	require.NoError(t, err)

	subs := bucket.SubBuckets()
	require.Len(t, subs, 6)
	assert.Equal(t, "Q1 2023", subs[0].Label)
	assert.Equal(t, "Q2 2024", subs[5].Label)
}

func TestParseSpecDefaults(t *testing.T) {
	now := date(t, "2024-05-20")

	spec, err := ParseSpec(Query{}, "", now)
	require.NoError(t, err)
	assert.Equal(t, TypeYTD, spec.Type)

	spec, err = ParseSpec(Query{}, TypeMonth, now)
	require.NoError(t, err)
	assert.Equal(t, TypeMonth, spec.Type)
	assert.Equal(t, 2024, spec.Year)
	assert.Equal(t, time.May, spec.Month)

	// Explicit period always wins over the default.
	spec, err = ParseSpec(Query{Period: "quarter"}, TypeMonth, now)
	require.NoError(t, err)
	assert.Equal(t, TypeQuarter, spec.Type)
	assert.Equal(t, 2, spec.Quarter)
}

func TestParseSpecExplicitValues(t *testing.T) {
	now := date(t, "2024-05-20")

	spec, err := ParseSpec(Query{Period: "month", Year: "2023", Month: "11"}, "", now)
	require.NoError(t, err)
	bucket, err := spec.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "Nov 2023", bucket.Label)

	spec, err = ParseSpec(Query{Period: "week", Anchor: "2024-03-13"}, "", now)
	require.NoError(t, err)
	bucket, err = spec.Resolve()
	require.NoError(t, err)
	assert.Equal(t, date(t, "2024-03-11"), bucket.Start)

	spec, err = ParseSpec(Query{Period: "custom", Start: "2024-01-01", End: "2024-01-31"}, "", now)
	require.NoError(t, err)
	bucket, err = spec.Resolve()
	require.NoError(t, err)
	assert.Equal(t, date(t, "2024-02-01"), bucket.End)
}

func TestParseSpecRejectsBadInput(t *testing.T) {
	now := date(t, "2024-05-20")

	_, err := ParseSpec(Query{Period: "decade"}, "", now)
	assert.ErrorIs(t, err, ErrInvalidPeriodType)

	_, err = ParseSpec(Query{Period: "month", Year: "20x4"}, "", now)
	assert.ErrorIs(t, err, ErrInvalidYear)

	_, err = ParseSpec(Query{Period: "week", Anchor: "13-03-2024"}, "", now)
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = ParseSpec(Query{Period: "custom", Start: "2024-01-01"}, "", now)
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = ParseSpec(Query{Period: "custom", Start: "2024-01-01", End: "junk"}, "", now)
	assert.ErrorIs(t, err, ErrInvalidDate)
}
