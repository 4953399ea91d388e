package engine_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"event-analytics-service/internal/analytics/core/domain"
	"event-analytics-service/internal/analytics/core/engine"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func rng(start, end time.Time) domain.DateRange {
	return domain.DateRange{Start: start, End: end}
}

func channelOptions() engine.ComparisonOptions {
	return engine.ComparisonOptions{
		DateKey:       "date",
		DimensionKeys: []string{"channel"},
		MetricKeys:    []string{"n"},
		CurrentRange:  rng(day(2024, 3, 1), day(2024, 3, 3)),
		PreviousRange: rng(day(2024, 2, 27), day(2024, 2, 29)),
		Aggregation:   domain.AggSum,
	}
}

// ------------------------------------------------------------
// ProcessComparisonData
// ------------------------------------------------------------

func TestProcessComparisonData_MergesPeriods(t *testing.T) {
	rows := []domain.Row{
		{"date": "2024-03-01", "channel": "web", "n": 10},
		{"date": "2024-03-01T18:00:00Z", "channel": "web", "n": 5},
		{"date": "2024-03-01", "channel": "app", "n": 4},
		{"date": "2024-02-27", "channel": "web", "n": 10},
		{"date": "2024-02-27", "channel": "email", "n": 2},
		{"date": "2024-03-03", "channel": "web", "n": 3},
		{"date": "2024-02-29", "channel": "web", "n": 0},
		{"date": "2024-03-10", "channel": "web", "n": 100},
		{"date": "not a date", "channel": "web", "n": 1},
	}

	got := engine.ProcessComparisonData(rows, channelOptions())

	require.Equal(t, []domain.Row{
		{
			"date": day(2024, 3, 1), "comparisonDate": day(2024, 2, 27),
			"channel": "web", "n": 15.0, "n_compare": 10.0, "n_change": 0.5,
		},
		{
			"date": day(2024, 3, 1), "comparisonDate": day(2024, 2, 27),
			"channel": "app", "n": 4.0, "n_compare": nil, "n_change": nil,
		},
		{
			"date": day(2024, 3, 1), "comparisonDate": day(2024, 2, 27),
			"channel": "email", "n": nil, "n_compare": 2.0, "n_change": nil,
		},
		{
			"date": day(2024, 3, 2), "comparisonDate": day(2024, 2, 28),
			"n": nil, "n_compare": nil, "n_change": nil,
		},
		{
			"date": day(2024, 3, 3), "comparisonDate": day(2024, 2, 29),
			"channel": "web", "n": 3.0, "n_compare": 0.0, "n_change": nil,
		},
	}, got)
}

func TestProcessComparisonData_GapFillsEveryDay(t *testing.T) {
	opts := channelOptions()
	opts.CurrentRange = rng(day(2024, 3, 1), day(2024, 3, 5))
	opts.PreviousRange = rng(day(2024, 2, 25), day(2024, 2, 29))

	got := engine.ProcessComparisonData(nil, opts)

	require.Len(t, got, 5)
	for i, row := range got {
		require.Equal(t, day(2024, 3, 1+i), row["date"])
		require.Equal(t, day(2024, 2, 25+i), row["comparisonDate"])
		require.Nil(t, row["n"])
		require.Nil(t, row["n_compare"])
		require.Nil(t, row["n_change"])
	}
}

func TestProcessComparisonData_OneRowGroupPerCurrentDay(t *testing.T) {
	opts := channelOptions()
	opts.CurrentRange = rng(day(2024, 1, 1), day(2024, 1, 31))
	opts.PreviousRange, _ = domain.CalculatePreviousDateRange(opts.CurrentRange, domain.DayToDay)

	rows := []domain.Row{
		{"date": day(2024, 1, 3), "channel": "web", "n": 1},
		{"date": day(2024, 1, 3), "channel": "app", "n": 1},
		{"date": day(2023, 12, 5), "channel": "web", "n": 1},
	}

	got := engine.ProcessComparisonData(rows, opts)

	days := make(map[time.Time]int)
	for _, row := range got {
		days[row["date"].(time.Time)]++
	}
	require.Len(t, days, 31)
	require.Equal(t, 2, days[day(2024, 1, 3)])
}

func TestProcessComparisonData_UnequalLengthsPairWithNil(t *testing.T) {
	opts := channelOptions()
	opts.CurrentRange = rng(day(2024, 3, 1), day(2024, 3, 3))
	opts.PreviousRange = rng(day(2024, 2, 1), day(2024, 2, 2))

	rows := []domain.Row{
		{"date": "2024-03-03", "channel": "web", "n": 7},
		{"date": "2024-02-02", "channel": "web", "n": 7},
	}

	got := engine.ProcessComparisonData(rows, opts)

	require.Len(t, got, 3)
	require.Equal(t, day(2024, 2, 1), got[0]["comparisonDate"])
	require.Equal(t, day(2024, 2, 2), got[1]["comparisonDate"])
	require.Nil(t, got[2]["comparisonDate"])
	require.Equal(t, 7.0, got[2]["n"])
	require.Nil(t, got[2]["n_compare"])
}

func TestProcessComparisonData_NoDimensions(t *testing.T) {
	opts := channelOptions()
	opts.DimensionKeys = nil
	opts.Aggregation = domain.AggMean

	rows := []domain.Row{
		{"date": "2024-03-01", "channel": "web", "n": 10},
		{"date": "2024-03-01", "channel": "app", "n": 20},
		{"date": "2024-02-27", "channel": "web", "n": 10},
	}

	got := engine.ProcessComparisonData(rows, opts)

	require.Len(t, got, 3)
	require.Equal(t, domain.Row{
		"date": day(2024, 3, 1), "comparisonDate": day(2024, 2, 27),
		"n": 15.0, "n_compare": 10.0, "n_change": 0.5,
	}, got[0])
}

func TestProcessComparisonData_ChangeIsAlwaysFinite(t *testing.T) {
	opts := channelOptions()
	rows := []domain.Row{
		{"date": "2024-03-01", "channel": "web", "n": 5},
		{"date": "2024-02-27", "channel": "web", "n": 0},
		{"date": "2024-03-02", "channel": "web", "n": -4},
		{"date": "2024-02-28", "channel": "web", "n": -2},
		{"date": "2024-03-03", "channel": "web", "n": 0},
		{"date": "2024-02-29", "channel": "web", "n": math.Inf(1)},
	}

	got := engine.ProcessComparisonData(rows, opts)

	require.Len(t, got, 3)
	require.Nil(t, got[0]["n_change"])
	require.Equal(t, 1.0, got[1]["n_change"])
	require.Nil(t, got[2]["n_change"])
	for _, row := range got {
		if v, ok := row["n_change"].(float64); ok {
			require.False(t, math.IsNaN(v) || math.IsInf(v, 0))
		}
	}
}

func TestProcessComparisonData_DoesNotMutateInput(t *testing.T) {
	rows := []domain.Row{{"date": "2024-03-01", "channel": "web", "n": 1}}

	engine.ProcessComparisonData(rows, channelOptions())

	require.Equal(t, []domain.Row{{"date": "2024-03-01", "channel": "web", "n": 1}}, rows)
}

// ------------------------------------------------------------
// Pipeline steps
// ------------------------------------------------------------

func TestFilterByDateRange(t *testing.T) {
	rows := []domain.Row{
		{"d": "2024-02-29"},
		{"d": time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"d": time.Date(2024, 3, 3, 23, 59, 59, 0, time.UTC)},
		{"d": "20240304"},
		{"d": nil},
		{},
	}

	got := engine.FilterByDateRange(rows, rng(day(2024, 3, 1), day(2024, 3, 3)), "d")

	require.Equal(t, []domain.Row{
		{"d": day(2024, 3, 1)},
		{"d": day(2024, 3, 3)},
	}, got)
}

func TestPairPeriods(t *testing.T) {
	opts := channelOptions()
	current := engine.FilterByDateRange([]domain.Row{
		{"date": "2024-03-02", "channel": "web", "n": 1},
	}, opts.CurrentRange, opts.DateKey)

	got := engine.PairPeriods(current, nil, opts)

	require.Len(t, got, 3)
	for i, p := range got {
		require.Equal(t, day(2024, 3, 1+i), p.Day)
		require.NotNil(t, p.ComparisonDay)
		require.Equal(t, day(2024, 2, 27+i), *p.ComparisonDay)
		require.Empty(t, p.Previous)
	}
	require.Empty(t, got[0].Current)
	require.Equal(t, []domain.Row{{"date": day(2024, 3, 2), "channel": "web", "n": 1.0}}, got[1].Current)
}

func TestMergePairedPeriods_PreviousOnlyKeysFollowCurrentKeys(t *testing.T) {
	opts := channelOptions()
	cd := day(2024, 2, 27)
	periods := []domain.PairedPeriod{{
		Day:           day(2024, 3, 1),
		ComparisonDay: &cd,
		Current: []domain.Row{
			{"date": day(2024, 3, 1), "channel": "b", "n": 2.0},
			{"date": day(2024, 3, 1), "channel": "a", "n": 1.0},
		},
		Previous: []domain.Row{
			{"date": cd, "channel": "c", "n": 9.0},
			{"date": cd, "channel": "a", "n": 4.0},
			{"date": cd, "channel": "d", "n": 1.0},
		},
	}}

	got := engine.MergePairedPeriods(periods, opts)

	var order []string
	for _, row := range got {
		order = append(order, row["channel"].(string))
	}
	require.Equal(t, []string{"b", "a", "c", "d"}, order)
	require.Equal(t, -0.75, got[1]["n_change"])
	require.Equal(t, 9.0, got[2]["n_compare"])
}
