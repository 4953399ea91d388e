package usecase_test

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"event-analytics-service/internal/analytics/core/domain"
	"event-analytics-service/internal/analytics/core/ports"
)

// fakeRowReader fakes RowReaderPort for tests.
type fakeRowReader struct {
	ReadFn    func(ctx context.Context, q ports.RowQuery) ([]domain.Row, error)
	lastQuery ports.RowQuery
	called    bool
}

func (f *fakeRowReader) ReadRows(ctx context.Context, q ports.RowQuery) ([]domain.Row, error) {
	f.called = true
	f.lastQuery = q
	if f.ReadFn != nil {
		return f.ReadFn(ctx, q)
	}
	return nil, nil
}

type fakeCatalog map[string]domain.Dataset

func (c fakeCatalog) Dataset(name string) (domain.Dataset, bool) {
	ds, ok := c[name]
	return ds, ok
}

func (c fakeCatalog) Datasets() []domain.Dataset {
	out := make([]domain.Dataset, 0, len(c))
	for _, ds := range c {
		out = append(out, ds)
	}
	return out
}

var eventsDataset = domain.Dataset{
	Name:               "events",
	Table:              "daily_events",
	DateColumn:         "day",
	Dimensions:         []string{"channel", "country"},
	Metrics:            []string{"views", "users"},
	DefaultAggregation: domain.AggSum,
}

func catalog() fakeCatalog {
	return fakeCatalog{"events": eventsDataset}
}

func nullLogger() (logrus.FieldLogger, *logtest.Hook) {
	return logtest.NewNullLogger()
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func rng(start, end time.Time) domain.DateRange {
	return domain.DateRange{Start: start, End: end}
}
