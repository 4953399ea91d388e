package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"event-analytics-service/internal/analytics/core/domain"
	"event-analytics-service/internal/analytics/core/engine"
	"event-analytics-service/internal/analytics/core/ports"
	"event-analytics-service/internal/telemetry"
)

type CompareInput struct {
	Dataset     string
	Period      PeriodInput
	Dimensions  []string
	Metrics     []string // all dataset metrics when empty
	Aggregation string   // dataset default when empty; unknown names reduce as sum
	Filters     map[string][]string
}

type CompareResult struct {
	Dataset string
	Periods Periods
	Rows    []domain.Row
}

type CompareUseCase struct {
	base
}

func NewCompareUseCase(reader ports.RowReaderPort, catalog ports.DatasetCatalogPort, log logrus.FieldLogger) *CompareUseCase {
	return &CompareUseCase{base: newBase(reader, catalog, log)}
}

// Execute reads both periods in one query and merges them day by day.
func (uc *CompareUseCase) Execute(ctx context.Context, in CompareInput) (*CompareResult, error) {
	start := time.Now()

	ds, err := uc.dataset(in.Dataset)
	if err != nil {
		return nil, err
	}
	metrics := in.Metrics
	if len(metrics) == 0 {
		metrics = ds.Metrics
	}
	if hasDuplicates(in.Dimensions) || hasDuplicates(metrics) {
		return nil, fmt.Errorf("%w: repeated dimension or metric", ErrInvalidQuery)
	}
	if err := checkFields(ds, in.Dimensions, metrics, in.Filters); err != nil {
		return nil, err
	}
	periods, err := uc.resolvePeriods(in.Period)
	if err != nil {
		return nil, err
	}

	agg := aggregation(ds, in.Aggregation)
	if !agg.Valid() {
		uc.log.WithField("aggregation", agg).Warn("unknown aggregation, reducing as sum")
	}

	rows, err := uc.read(ctx, ds, periods.Current.Span(periods.Previous), in.Dimensions, metrics, in.Filters)
	if err != nil {
		return nil, err
	}

	merged := engine.ProcessComparisonData(rows, engine.ComparisonOptions{
		DateKey:       domain.DateField,
		DimensionKeys: in.Dimensions,
		MetricKeys:    metrics,
		CurrentRange:  periods.Current,
		PreviousRange: periods.Previous,
		Aggregation:   agg,
	})

	telemetry.ObserveCompute("compare", ds.Name, start, len(rows), len(merged))
	uc.log.WithFields(logrus.Fields{
		"dataset":    ds.Name,
		"current":    periods.Current.String(),
		"previous":   periods.Previous.String(),
		"comparison": periods.Comparison,
		"rows_read":  len(rows),
		"rows_out":   len(merged),
	}).Debug("comparison computed")

	return &CompareResult{Dataset: ds.Name, Periods: periods, Rows: merged}, nil
}
