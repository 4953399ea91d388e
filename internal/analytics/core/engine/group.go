package engine

import (
	"slices"

	"event-analytics-service/internal/analytics/core/domain"
)

// GroupKeys names the dimension fields rows are partitioned by and the metric
// fields reduced in each partition.
type GroupKeys struct {
	Dimensions []string
	Metrics    []string
}

type partition struct {
	values []any // first-seen value per grouping key
	rows   []domain.Row
}

// GroupData reduces rows into one record per dimension combination.
//
// Partitions are discovered key by key in first-seen order, so the second
// dimension's groups stay nested under the first. Each record holds the
// dimension values plus one aggregate per metric, or a "value" row count when
// no metrics are given. An unknown aggregation falls back to sum.
//
// The result is sorted descending by the first metric (or "value"); equal
// values keep partition order.
func GroupData(rows []domain.Row, keys GroupKeys, agg domain.Aggregation) []domain.Row {
	agg = agg.OrSum()

	if len(keys.Dimensions) == 0 {
		return []domain.Row{summarize(partition{rows: rows}, keys, agg)}
	}

	parts := partitionNested(rows, keys.Dimensions)
	out := make([]domain.Row, 0, len(parts))
	for _, p := range parts {
		out = append(out, summarize(p, keys, agg))
	}

	sortKey := domain.CountField
	if len(keys.Metrics) > 0 {
		sortKey = keys.Metrics[0]
	}
	slices.SortStableFunc(out, func(a, b domain.Row) int {
		return compareField(a[sortKey], b[sortKey], SortDesc)
	})

	return out
}

func summarize(p partition, keys GroupKeys, agg domain.Aggregation) domain.Row {
	row := make(domain.Row, len(keys.Dimensions)+len(keys.Metrics))
	for i, dim := range keys.Dimensions {
		row[dim] = p.values[i]
	}

	if len(keys.Metrics) == 0 {
		row[domain.CountField] = len(p.rows)
		return row
	}

	for _, m := range keys.Metrics {
		if v, ok := reduce(metricValues(p.rows, m), agg); ok {
			row[m] = nullable(v)
		} else {
			row[m] = nil
		}
	}
	return row
}

// partitionNested groups rows by dims[0] in first-seen order, then recurses
// into each group with the remaining dims.
func partitionNested(rows []domain.Row, dims []string) []partition {
	if len(dims) == 0 {
		return []partition{{rows: rows}}
	}

	var level []partition
	index := make(map[string]int)
	for _, r := range rows {
		v := r[dims[0]]
		k := domain.KeyOf(v)
		i, ok := index[k]
		if !ok {
			i = len(level)
			index[k] = i
			level = append(level, partition{values: []any{v}})
		}
		level[i].rows = append(level[i].rows, r)
	}

	var out []partition
	for _, p := range level {
		for _, sub := range partitionNested(p.rows, dims[1:]) {
			out = append(out, partition{
				values: append(slices.Clone(p.values), sub.values...),
				rows:   sub.rows,
			})
		}
	}
	return out
}

// partitionFlat groups rows by their composite key in first-seen order.
func partitionFlat(rows []domain.Row, keys []string) []partition {
	var out []partition
	index := make(map[string]int)
	for _, r := range rows {
		k := r.CompositeKey(keys)
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			values := make([]any, len(keys))
			for j, key := range keys {
				values[j] = r[key]
			}
			out = append(out, partition{values: values})
		}
		out[i].rows = append(out[i].rows, r)
	}
	return out
}
