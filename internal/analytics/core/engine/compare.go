package engine

import (
	"slices"
	"time"

	"github.com/samber/lo"

	"event-analytics-service/internal/analytics/core/domain"
)

type ComparisonOptions struct {
	DateKey       string
	DimensionKeys []string
	MetricKeys    []string
	CurrentRange  domain.DateRange
	PreviousRange domain.DateRange
	Aggregation   domain.Aggregation
}

// ProcessComparisonData merges the current and previous periods of rows into
// one record per (day, dimension combination), annotated with
// <metric>_compare and <metric>_change.
//
// Days are paired by position, not by calendar offset. When the previous
// range has fewer days the trailing current days get a nil comparisonDate;
// callers wanting meaningful comparison dates must pass ranges of equal
// length.
func ProcessComparisonData(rows []domain.Row, opts ComparisonOptions) []domain.Row {
	current := FilterByDateRange(rows, opts.CurrentRange, opts.DateKey)
	previous := FilterByDateRange(rows, opts.PreviousRange, opts.DateKey)

	return MergePairedPeriods(PairPeriods(current, previous, opts), opts)
}

// FilterByDateRange keeps rows whose date falls inside r. Kept rows are copies
// with the date field normalized to its UTC day; rows without a readable date
// are dropped.
func FilterByDateRange(rows []domain.Row, r domain.DateRange, dateKey string) []domain.Row {
	return lo.FilterMap(rows, func(row domain.Row, _ int) (domain.Row, bool) {
		day, ok := row.Day(dateKey)
		if !ok || !r.Contains(day) {
			return nil, false
		}
		out := row.Clone()
		out[dateKey] = day
		return out, true
	})
}

// PairPeriods groups each side per day and dimension combination, fills
// every missing day of its range with an empty bucket and pairs the i-th
// current day with the i-th previous day.
func PairPeriods(current, previous []domain.Row, opts ComparisonOptions) []domain.PairedPeriod {
	keys := GroupKeys{
		Dimensions: append([]string{opts.DateKey}, opts.DimensionKeys...),
		Metrics:    opts.MetricKeys,
	}

	curDays, curBuckets := bucketByDay(GroupData(current, keys, opts.Aggregation), opts.DateKey, opts.CurrentRange)
	prevDays, prevBuckets := bucketByDay(GroupData(previous, keys, opts.Aggregation), opts.DateKey, opts.PreviousRange)

	out := make([]domain.PairedPeriod, 0, len(curDays))
	for i, day := range curDays {
		p := domain.PairedPeriod{
			Day:     day,
			Current: curBuckets[day.Unix()],
		}
		if i < len(prevDays) {
			cd := prevDays[i]
			p.ComparisonDay = &cd
			p.Previous = prevBuckets[cd.Unix()]
		}
		out = append(out, p)
	}
	return out
}

// bucketByDay splits grouped rows per UTC day and gap-fills the range so each
// of its days has a (possibly empty) bucket. Days are returned ascending.
func bucketByDay(groups []domain.Row, dateKey string, r domain.DateRange) ([]time.Time, map[int64][]domain.Row) {
	buckets := make(map[int64][]domain.Row)
	var days []time.Time

	for _, g := range groups {
		day, ok := g.Day(dateKey)
		if !ok {
			continue
		}
		k := day.Unix()
		if _, seen := buckets[k]; !seen {
			days = append(days, day)
		}
		buckets[k] = append(buckets[k], g)
	}

	for _, day := range domain.DomainFromDateRange(r) {
		k := day.Unix()
		if _, seen := buckets[k]; !seen {
			buckets[k] = []domain.Row{}
			days = append(days, day)
		}
	}

	slices.SortFunc(days, func(a, b time.Time) int { return a.Compare(b) })
	return days, buckets
}

// MergePairedPeriods emits the merged records for each paired day in order.
// A day with no data on either side still yields one placeholder record with
// every metric null.
func MergePairedPeriods(periods []domain.PairedPeriod, opts ComparisonOptions) []domain.Row {
	var out []domain.Row

	for _, p := range periods {
		var comparisonDate any
		if p.ComparisonDay != nil {
			comparisonDate = *p.ComparisonDay
		}

		if len(p.Current) == 0 && len(p.Previous) == 0 {
			out = append(out, mergeRows(nil, nil, p.Day, comparisonDate, opts))
			continue
		}

		cur := indexByKey(p.Current, opts.DimensionKeys)
		prev := indexByKey(p.Previous, opts.DimensionKeys)
		consumed := make(map[string]struct{}, len(cur.order))

		for _, key := range cur.order {
			consumed[key] = struct{}{}
			out = append(out, mergeRows(cur.rows[key], prev.rows[key], p.Day, comparisonDate, opts))
		}
		for _, key := range prev.order {
			if _, done := consumed[key]; done {
				continue
			}
			out = append(out, mergeRows(nil, prev.rows[key], p.Day, comparisonDate, opts))
		}
	}

	return out
}

type keyedRows struct {
	order []string
	rows  map[string]domain.Row
}

// indexByKey maps each row by its dimension key, keeping first-seen order.
// The last row wins on a duplicate key.
func indexByKey(rows []domain.Row, dims []string) keyedRows {
	k := keyedRows{rows: make(map[string]domain.Row, len(rows))}
	for _, r := range rows {
		key := r.CompositeKey(dims)
		if _, ok := k.rows[key]; !ok {
			k.order = append(k.order, key)
		}
		k.rows[key] = r
	}
	return k
}

func mergeRows(current, previous domain.Row, day time.Time, comparisonDate any, opts ComparisonOptions) domain.Row {
	var merged domain.Row
	if current != nil {
		merged = current.Clone()
		delete(merged, opts.DateKey)
	} else {
		merged = make(domain.Row, len(opts.DimensionKeys)+3*len(opts.MetricKeys)+2)
		if previous != nil {
			for _, dim := range opts.DimensionKeys {
				merged[dim] = previous[dim]
			}
		}
		for _, m := range opts.MetricKeys {
			merged[m] = nil
		}
	}

	merged[opts.DateKey] = day
	merged[domain.ComparisonDateField] = comparisonDate

	for _, m := range opts.MetricKeys {
		merged[domain.CompareField(m)] = nullable(previous[m])
		merged[domain.ChangeField(m)] = change(current[m], previous[m])
	}
	return merged
}
