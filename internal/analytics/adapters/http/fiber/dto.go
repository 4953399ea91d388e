package fiber

import (
	"time"

	"event-analytics-service/internal/analytics/core/domain"
	"event-analytics-service/internal/analytics/core/usecase"
)

const dayLayout = "2006-01-02"

type DateRangeResponse struct {
	Start string `json:"start" example:"2024-02-01"`
	End   string `json:"end" example:"2024-02-29"`
}

type PeriodsResponse struct {
	Current    DateRangeResponse `json:"current"`
	Previous   DateRangeResponse `json:"previous"`
	Comparison string            `json:"comparison" example:"month-to-month"`
}

type CompareResponse struct {
	Dataset string           `json:"dataset" example:"events"`
	Periods PeriodsResponse  `json:"periods"`
	Rows    []map[string]any `json:"rows"`
}

type TopResponse struct {
	Dataset string            `json:"dataset" example:"events"`
	Range   DateRangeResponse `json:"range"`
	// Rows lists the top records followed by the folded buckets, which carry
	// isOther=true and their source records under data.
	Rows []map[string]any `json:"rows"`
}

type ScorecardResponse struct {
	Metric       string   `json:"metric" example:"views"`
	Value        *float64 `json:"value" example:"120"`
	CompareValue *float64 `json:"compare_value" example:"100"`
	Diff         *float64 `json:"diff" example:"20"`
	Trend        *float64 `json:"trend" example:"0.2"`
	TrendSymbol  string   `json:"trend_symbol" example:"up"`
}

type ScorecardsResponse struct {
	Dataset    string              `json:"dataset" example:"events"`
	Periods    PeriodsResponse     `json:"periods"`
	Scorecards []ScorecardResponse `json:"scorecards"`
}

type RangeResponse struct {
	Name       string            `json:"name" example:"Last month"`
	Value      string            `json:"value" example:"last-mm"`
	Comparison string            `json:"comparison" example:"month-to-month"`
	Current    DateRangeResponse `json:"current"`
	Previous   DateRangeResponse `json:"previous"`
}

type DatasetResponse struct {
	Name        string   `json:"name" example:"events"`
	Dimensions  []string `json:"dimensions"`
	Metrics     []string `json:"metrics"`
	Aggregation string   `json:"aggregation" example:"sum"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_query"`
	Message string `json:"message" example:"unknown metric: \"revenue\" in dataset \"events\""`
}

func toDateRange(r domain.DateRange) DateRangeResponse {
	return DateRangeResponse{Start: r.Start.Format(dayLayout), End: r.End.Format(dayLayout)}
}

func toPeriods(p usecase.Periods) PeriodsResponse {
	return PeriodsResponse{
		Current:    toDateRange(p.Current),
		Previous:   toDateRange(p.Previous),
		Comparison: string(p.Comparison),
	}
}

func toRows(rows []domain.Row) []map[string]any {
	out := make([]map[string]any, 0, len(rows))
	for _, r := range rows {
		out = append(out, toRow(r))
	}
	return out
}

// toRow renders dates as days and nested records recursively.
func toRow(r domain.Row) map[string]any {
	out := make(map[string]any, len(r))
	for k, v := range r {
		switch x := v.(type) {
		case time.Time:
			out[k] = x.UTC().Format(dayLayout)
		case domain.Row:
			out[k] = toRow(x)
		case []domain.Row:
			out[k] = toRows(x)
		default:
			out[k] = v
		}
	}
	return out
}

func toScorecard(sc domain.Scorecard) ScorecardResponse {
	return ScorecardResponse{
		Metric:       sc.Metric,
		Value:        sc.Value,
		CompareValue: sc.CompareValue,
		Diff:         sc.Diff,
		Trend:        sc.Trend,
		TrendSymbol:  sc.TrendSymbol,
	}
}
