package engine

import (
	"event-analytics-service/internal/analytics/core/domain"
)

const (
	TrendUp   = "up"
	TrendDown = "down"
	TrendFlat = "flat"
)

// Scorecards reduces each period to one total per metric and pairs them.
// Dimension keys in opts are ignored.
func Scorecards(rows []domain.Row, opts ComparisonOptions) []domain.Scorecard {
	keys := GroupKeys{Metrics: opts.MetricKeys}
	current := GroupData(FilterByDateRange(rows, opts.CurrentRange, opts.DateKey), keys, opts.Aggregation)[0]
	previous := GroupData(FilterByDateRange(rows, opts.PreviousRange, opts.DateKey), keys, opts.Aggregation)[0]

	out := make([]domain.Scorecard, 0, len(opts.MetricKeys))
	for _, m := range opts.MetricKeys {
		out = append(out, NewScorecard(m, current[m], previous[m]))
	}
	return out
}

// NewScorecard compares value with compareValue. Trend is the relative change
// and stays nil, with an empty symbol, when there is nothing to compare to.
func NewScorecard(metric string, value, compareValue any) domain.Scorecard {
	sc := domain.Scorecard{Metric: metric}

	v, vok := domain.ToNumber(value)
	c, cok := domain.ToNumber(compareValue)
	if vok {
		sc.Value = &v
	}
	if cok {
		sc.CompareValue = &c
	}
	if vok && cok {
		if diff, ok := nullable(v - c).(float64); ok {
			sc.Diff = &diff
		}
	}

	if t, ok := change(value, compareValue).(float64); ok {
		sc.Trend = &t
		switch {
		case t > 0:
			sc.TrendSymbol = TrendUp
		case t < 0:
			sc.TrendSymbol = TrendDown
		default:
			sc.TrendSymbol = TrendFlat
		}
	}
	return sc
}
