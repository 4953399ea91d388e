package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"event-analytics-service/internal/analytics/core/domain"
	"event-analytics-service/internal/analytics/core/ports"
)

var (
	ErrInvalidQuery     = errors.New("invalid analytics query")
	ErrUnknownDataset   = errors.New("unknown dataset")
	ErrUnknownDimension = errors.New("unknown dimension")
	ErrUnknownMetric    = errors.New("unknown metric")
	ErrInvalidTopX      = errors.New("top must be a positive number")
)

// DefaultMaxRangeDays bounds the current period of a query, about ten years.
const DefaultMaxRangeDays = 3660

// PeriodInput selects the current period either from a preset relative to
// Reference or from explicit Start/End days.
type PeriodInput struct {
	Range      string    // preset, "28-dd" when empty
	Comparison string    // defaults to the preset's usual comparison, day-to-day for explicit ranges
	Reference  time.Time // zero means today
	Start      time.Time
	End        time.Time
}

type Periods struct {
	Current    domain.DateRange
	Previous   domain.DateRange
	Comparison domain.ComparisonType
}

// base carries what every query usecase shares.
type base struct {
	reader  ports.RowReaderPort
	catalog ports.DatasetCatalogPort
	log     logrus.FieldLogger
	now     func() time.Time
	maxDays int
}

func newBase(reader ports.RowReaderPort, catalog ports.DatasetCatalogPort, log logrus.FieldLogger) base {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return base{reader: reader, catalog: catalog, log: log, now: time.Now, maxDays: DefaultMaxRangeDays}
}

// SetMaxRangeDays changes the longest current period accepted. n <= 0
// removes the limit.
func (b *base) SetMaxRangeDays(n int) {
	b.maxDays = n
}

func (b *base) resolvePeriods(in PeriodInput) (Periods, error) {
	var p Periods

	if !in.Start.IsZero() || !in.End.IsZero() {
		if in.Start.IsZero() || in.End.IsZero() {
			return Periods{}, fmt.Errorf("%w: start and end must be given together", ErrInvalidQuery)
		}
		current, err := domain.NewDateRange(in.Start, in.End)
		if err != nil {
			return Periods{}, err
		}
		p.Current = current
		p.Comparison = domain.DayToDay
	} else {
		rangeType := domain.RangeLast28Days
		if in.Range != "" {
			rt, err := domain.ParseRangeType(in.Range)
			if err != nil {
				return Periods{}, err
			}
			rangeType = rt
		}
		ref := in.Reference
		if ref.IsZero() {
			ref = b.now()
		}
		current, err := domain.GetDateRangePeriod(ref, rangeType)
		if err != nil {
			return Periods{}, err
		}
		p.Current = current
		p.Comparison, _ = domain.DefaultComparison(rangeType)
	}

	if b.maxDays > 0 && p.Current.Days() > b.maxDays {
		return Periods{}, fmt.Errorf("%w: range of %d days exceeds the limit of %d", ErrInvalidQuery, p.Current.Days(), b.maxDays)
	}

	if in.Comparison != "" {
		ct, err := domain.ParseComparisonType(in.Comparison)
		if err != nil {
			return Periods{}, err
		}
		p.Comparison = ct
	}

	previous, err := domain.CalculatePreviousDateRange(p.Current, p.Comparison)
	if err != nil {
		return Periods{}, err
	}
	p.Previous = previous
	return p, nil
}

func (b *base) dataset(name string) (domain.Dataset, error) {
	if name == "" {
		return domain.Dataset{}, fmt.Errorf("%w: dataset is required", ErrInvalidQuery)
	}
	ds, ok := b.catalog.Dataset(name)
	if !ok {
		return domain.Dataset{}, fmt.Errorf("%w: %q", ErrUnknownDataset, name)
	}
	return ds, nil
}

// checkFields validates requested keys against ds. Filters may only name
// dimensions.
func checkFields(ds domain.Dataset, dimensions, metrics []string, filters map[string][]string) error {
	for _, d := range dimensions {
		if !ds.HasDimension(d) {
			return fmt.Errorf("%w: %q in dataset %q", ErrUnknownDimension, d, ds.Name)
		}
	}
	for _, m := range metrics {
		if !ds.HasMetric(m) {
			return fmt.Errorf("%w: %q in dataset %q", ErrUnknownMetric, m, ds.Name)
		}
	}
	for d := range filters {
		if !ds.HasDimension(d) {
			return fmt.Errorf("%w: filter on %q in dataset %q", ErrUnknownDimension, d, ds.Name)
		}
	}
	return nil
}

func hasDuplicates(keys []string) bool {
	return len(lo.Uniq(keys)) != len(keys)
}

// aggregation picks the requested reducer or the dataset default.
func aggregation(ds domain.Dataset, requested string) domain.Aggregation {
	if requested == "" {
		return ds.DefaultAggregation
	}
	return domain.Aggregation(requested)
}

func (b *base) read(ctx context.Context, ds domain.Dataset, r domain.DateRange, dimensions, metrics []string, filters map[string][]string) ([]domain.Row, error) {
	rows, err := b.reader.ReadRows(ctx, ports.RowQuery{
		Dataset:    ds,
		From:       r.Start,
		To:         r.End,
		Dimensions: dimensions,
		Metrics:    metrics,
		Filters:    filters,
	})
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", ds.Name, err)
	}
	return rows, nil
}
