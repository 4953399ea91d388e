package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/lib/pq"

	"event-analytics-service/internal/analytics/core/domain"
	"event-analytics-service/internal/analytics/core/ports"
)

type RowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

type DB interface {
	QueryContext(ctx context.Context, query string, args ...any) (RowScanner, error)
	PingContext(ctx context.Context) error
}

type RowRepository struct {
	db DB
}

func NewRowRepository(db DB) *RowRepository {
	return &RowRepository{db: db}
}

var _ ports.RowReaderPort = (*RowRepository)(nil)

// ReadRows loads the day rows of q.Dataset between q.From and q.To. The date
// lands under domain.DateField as a UTC day; NULL dimensions and metrics are
// nil.
func (r *RowRepository) ReadRows(ctx context.Context, q ports.RowQuery) ([]domain.Row, error) {
	query, args := buildRowsQuery(q)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Row
	for rows.Next() {
		var day time.Time
		dims := make([]sql.NullString, len(q.Dimensions))
		metrics := make([]sql.NullFloat64, len(q.Metrics))

		dest := make([]any, 0, 1+len(dims)+len(metrics))
		dest = append(dest, &day)
		for i := range dims {
			dest = append(dest, &dims[i])
		}
		for i := range metrics {
			dest = append(dest, &metrics[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}

		row := make(domain.Row, len(dest))
		row[domain.DateField] = domain.FloorDay(day)
		for i, d := range q.Dimensions {
			row[d] = nil
			if dims[i].Valid {
				row[d] = dims[i].String
			}
		}
		for i, m := range q.Metrics {
			row[m] = nil
			if metrics[i].Valid {
				row[m] = metrics[i].Float64
			}
		}
		out = append(out, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

func (r *RowRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// buildRowsQuery renders the SELECT for q. Identifiers come from the dataset
// catalog and are quoted; every request value is a bind parameter.
func buildRowsQuery(q ports.RowQuery) (string, []any) {
	ds := q.Dataset
	date := pq.QuoteIdentifier(ds.DateColumn)

	cols := make([]string, 0, 1+len(q.Dimensions)+len(q.Metrics))
	cols = append(cols, date)
	for _, d := range q.Dimensions {
		cols = append(cols, pq.QuoteIdentifier(d))
	}
	for _, m := range q.Metrics {
		cols = append(cols, pq.QuoteIdentifier(m))
	}

	// the upper bound is exclusive so timestamp columns keep their last day
	where := fmt.Sprintf("%s >= $1 AND %s < $2", date, date)
	args := []any{domain.FloorDay(q.From), domain.FloorDay(q.To).AddDate(0, 0, 1)}
	argIndex := 3

	filterKeys := make([]string, 0, len(q.Filters))
	for k := range q.Filters {
		filterKeys = append(filterKeys, k)
	}
	slices.Sort(filterKeys)

	for _, k := range filterKeys {
		where += fmt.Sprintf(" AND %s = ANY($%d)", pq.QuoteIdentifier(k), argIndex)
		args = append(args, pq.Array(q.Filters[k]))
		argIndex++
	}

	query := `
SELECT
    ` + strings.Join(cols, ",\n    ") + `
FROM ` + quoteTable(ds.Table) + `
WHERE ` + where + `
ORDER BY ` + date

	return query, args
}

func quoteTable(table string) string {
	parts := strings.Split(table, ".")
	for i, p := range parts {
		parts[i] = pq.QuoteIdentifier(p)
	}
	return strings.Join(parts, ".")
}
