package ports

import (
	"context"
	"time"

	"event-analytics-service/internal/analytics/core/domain"
)

type RowQuery struct {
	Dataset    domain.Dataset
	From       time.Time // first UTC day, inclusive
	To         time.Time // last UTC day, inclusive
	Dimensions []string
	Metrics    []string
	Filters    map[string][]string // dimension -> allowed values
}

type RowReaderPort interface {
	ReadRows(ctx context.Context, q RowQuery) ([]domain.Row, error)
}

type DatasetCatalogPort interface {
	Dataset(name string) (domain.Dataset, bool)
	Datasets() []domain.Dataset
}
