package engine

import (
	"math"
	"slices"

	"event-analytics-service/internal/analytics/core/domain"
)

// metricValues collects the numeric values of metric across rows, skipping
// rows where the field is missing, null or not a number.
func metricValues(rows []domain.Row, metric string) []float64 {
	out := make([]float64, 0, len(rows))
	for _, r := range rows {
		if v, ok := r.Number(metric); ok {
			out = append(out, v)
		}
	}
	return out
}

// reduce applies agg to values. ok is false when there is nothing to reduce,
// except for sum which is 0 over an empty set. The result may overflow to
// ±Inf, so callers store it through nullable.
func reduce(values []float64, agg domain.Aggregation) (float64, bool) {
	if len(values) == 0 {
		return 0, agg == domain.AggSum
	}

	switch agg {
	case domain.AggMean:
		return sum(values) / float64(len(values)), true
	case domain.AggMedian:
		return median(values), true
	case domain.AggMin:
		return slices.Min(values), true
	case domain.AggMax:
		return slices.Max(values), true
	default:
		return sum(values), true
	}
}

func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}

// median interpolates between the two middle values for even counts.
func median(values []float64) float64 {
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	pos := float64(len(sorted)-1) * 0.5
	low := int(math.Floor(pos))
	high := int(math.Ceil(pos))
	if low == high {
		return sorted[low]
	}
	return sorted[low] + (sorted[high]-sorted[low])*(pos-float64(low))
}

// change is (current-previous)/previous, or nil when either side is absent,
// previous is zero, or the result is not finite.
func change(current, previous any) any {
	c, cok := domain.ToNumber(current)
	p, pok := domain.ToNumber(previous)
	if !cok || !pok || p == 0 {
		return nil
	}
	v := (c - p) / p
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return v
}

// nullable returns v as a float64, or nil when it is not a usable number.
func nullable(v any) any {
	if f, ok := domain.ToNumber(v); ok {
		return f
	}
	return nil
}
