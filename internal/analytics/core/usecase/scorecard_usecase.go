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

type ScorecardInput struct {
	Dataset     string
	Period      PeriodInput
	Metrics     []string // all dataset metrics when empty
	Aggregation string
	Filters     map[string][]string
}

type ScorecardResult struct {
	Dataset    string
	Periods    Periods
	Scorecards []domain.Scorecard
}

type ScorecardUseCase struct {
	base
}

func NewScorecardUseCase(reader ports.RowReaderPort, catalog ports.DatasetCatalogPort, log logrus.FieldLogger) *ScorecardUseCase {
	return &ScorecardUseCase{base: newBase(reader, catalog, log)}
}

func (uc *ScorecardUseCase) Execute(ctx context.Context, in ScorecardInput) (*ScorecardResult, error) {
	start := time.Now()

	ds, err := uc.dataset(in.Dataset)
	if err != nil {
		return nil, err
	}
	metrics := in.Metrics
	if len(metrics) == 0 {
		metrics = ds.Metrics
	}
	if hasDuplicates(metrics) {
		return nil, fmt.Errorf("%w: repeated metric", ErrInvalidQuery)
	}
	if err := checkFields(ds, nil, metrics, in.Filters); err != nil {
		return nil, err
	}
	periods, err := uc.resolvePeriods(in.Period)
	if err != nil {
		return nil, err
	}

	rows, err := uc.read(ctx, ds, periods.Current.Span(periods.Previous), nil, metrics, in.Filters)
	if err != nil {
		return nil, err
	}

	cards := engine.Scorecards(rows, engine.ComparisonOptions{
		DateKey:       domain.DateField,
		MetricKeys:    metrics,
		CurrentRange:  periods.Current,
		PreviousRange: periods.Previous,
		Aggregation:   aggregation(ds, in.Aggregation),
	})

	telemetry.ObserveCompute("scorecards", ds.Name, start, len(rows), len(cards))
	uc.log.WithFields(logrus.Fields{
		"dataset":   ds.Name,
		"current":   periods.Current.String(),
		"previous":  periods.Previous.String(),
		"rows_read": len(rows),
	}).Debug("scorecards computed")

	return &ScorecardResult{Dataset: ds.Name, Periods: periods, Scorecards: cards}, nil
}
