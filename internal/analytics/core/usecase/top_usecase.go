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

type TopInput struct {
	Dataset    string
	Period     PeriodInput // only the current period is read
	Dimensions []string    // the first one is ranked, the rest split the remainder
	Metric     string      // first dataset metric when empty
	TopX       int
	Order      string // "desc" (default) or "asc"
	// Aggregation must name a supported reducer; empty means dataset default.
	Aggregation string
	// OtherLabel, when set, replaces the first dimension of every folded bucket.
	OtherLabel string
	Filters    map[string][]string
}

type TopResult struct {
	Dataset string
	Range   domain.DateRange
	Result  engine.TopXResult
}

type TopUseCase struct {
	base
}

func NewTopUseCase(reader ports.RowReaderPort, catalog ports.DatasetCatalogPort, log logrus.FieldLogger) *TopUseCase {
	return &TopUseCase{base: newBase(reader, catalog, log)}
}

func (uc *TopUseCase) Execute(ctx context.Context, in TopInput) (*TopResult, error) {
	start := time.Now()

	ds, err := uc.dataset(in.Dataset)
	if err != nil {
		return nil, err
	}
	if len(in.Dimensions) == 0 {
		return nil, fmt.Errorf("%w: at least one dimension is required", ErrInvalidQuery)
	}
	if hasDuplicates(in.Dimensions) {
		return nil, fmt.Errorf("%w: repeated dimension", ErrInvalidQuery)
	}
	if in.TopX < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidTopX, in.TopX)
	}
	order := engine.SortOrder(in.Order)
	switch order {
	case "":
		order = engine.SortDesc
	case engine.SortAsc, engine.SortDesc:
	default:
		return nil, fmt.Errorf("%w: order must be asc or desc", ErrInvalidQuery)
	}
	metric := in.Metric
	if metric == "" {
		metric = ds.Metrics[0]
	}
	if err := checkFields(ds, in.Dimensions, []string{metric}, in.Filters); err != nil {
		return nil, err
	}
	agg, err := domain.ParseAggregation(string(aggregation(ds, in.Aggregation)))
	if err != nil {
		return nil, err
	}
	periods, err := uc.resolvePeriods(in.Period)
	if err != nil {
		return nil, err
	}

	rows, err := uc.read(ctx, ds, periods.Current, in.Dimensions, []string{metric}, in.Filters)
	if err != nil {
		return nil, err
	}

	keys := engine.GroupKeys{Dimensions: in.Dimensions, Metrics: []string{metric}}
	res, err := engine.AggregateTopX(engine.GroupData(rows, keys, agg), engine.TopXOptions{
		TopX:        in.TopX,
		SplitBy:     in.Dimensions[1:],
		TopBy:       []string{metric},
		MetricKeys:  []string{metric},
		Aggregation: agg,
		SortOrder:   []engine.SortOrder{order},
	})
	if err != nil {
		return nil, err
	}
	if in.OtherLabel != "" {
		for i := range res.Other {
			res.Other[i].Row[in.Dimensions[0]] = in.OtherLabel
		}
	}

	telemetry.ObserveCompute("top", ds.Name, start, len(rows), len(res.Top)+len(res.Other))
	uc.log.WithFields(logrus.Fields{
		"dataset":   ds.Name,
		"range":     periods.Current.String(),
		"top":       len(res.Top),
		"other":     len(res.Other),
		"rows_read": len(rows),
	}).Debug("top computed")

	return &TopResult{Dataset: ds.Name, Range: periods.Current, Result: res}, nil
}
