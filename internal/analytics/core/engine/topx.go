package engine

import (
	"cmp"
	"slices"
	"strings"

	"event-analytics-service/internal/analytics/core/domain"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

type TopXOptions struct {
	TopX        int
	SplitBy     []string
	TopBy       []string
	MetricKeys  []string
	Aggregation domain.Aggregation
	SortOrder   []SortOrder // per TopBy key, desc when missing
}

// TopXResult holds the rows kept verbatim followed by the folded remainder.
type TopXResult struct {
	Top   []domain.Row
	Other []domain.OtherBucket
}

// Rows flattens the result: top rows first, then one record per bucket.
func (r TopXResult) Rows() []domain.Row {
	out := make([]domain.Row, 0, len(r.Top)+len(r.Other))
	out = append(out, r.Top...)
	for _, b := range r.Other {
		out = append(out, b.Record())
	}
	return out
}

// AggregateTopX keeps the opts.TopX highest ranked rows and folds the rest
// into one bucket per SplitBy combination. Unlike GroupData it rejects
// unknown aggregations.
func AggregateTopX(rows []domain.Row, opts TopXOptions) (TopXResult, error) {
	agg, err := domain.ParseAggregation(string(opts.Aggregation))
	if err != nil {
		return TopXResult{}, err
	}

	sorted := slices.Clone(rows)
	slices.SortStableFunc(sorted, func(a, b domain.Row) int {
		for i, key := range opts.TopBy {
			order := SortDesc
			if i < len(opts.SortOrder) && opts.SortOrder[i] != "" {
				order = opts.SortOrder[i]
			}
			if c := compareField(a[key], b[key], order); c != 0 {
				return c
			}
		}
		return 0
	})

	n := min(max(opts.TopX, 0), len(sorted))
	res := TopXResult{Top: sorted[:n:n]}

	for _, p := range partitionFlat(sorted[n:], opts.SplitBy) {
		row := make(domain.Row, len(opts.SplitBy)+len(opts.MetricKeys))
		for i, key := range opts.SplitBy {
			row[key] = p.values[i]
		}
		for _, m := range opts.MetricKeys {
			// an empty bucket metric reads as 0, not null
			v, _ := reduce(metricValues(p.rows, m), agg)
			row[m] = nullable(v)
		}
		res.Other = append(res.Other, domain.OtherBucket{Row: row, Data: p.rows})
	}

	return res, nil
}

// compareField orders two field values. Numbers compare numerically, other
// values by their key string, and missing values always sort last.
func compareField(a, b any, order SortOrder) int {
	aMissing, bMissing := a == nil, b == nil
	switch {
	case aMissing && bMissing:
		return 0
	case aMissing:
		return 1
	case bMissing:
		return -1
	}

	var c int
	an, aok := domain.ToNumber(a)
	bn, bok := domain.ToNumber(b)
	if aok && bok {
		c = cmp.Compare(an, bn)
	} else {
		c = strings.Compare(domain.KeyOf(a), domain.KeyOf(b))
	}

	if order == SortAsc {
		return c
	}
	return -c
}
