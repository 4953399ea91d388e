package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"event-analytics-service/internal/analytics/core/domain"
)

var ErrInvalidCatalog = errors.New("invalid dataset catalog")

// identifiers are interpolated into SQL, so only plain (optionally
// schema-qualified) names are accepted.
var (
	identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	tableRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)
)

type catalogFile struct {
	Datasets []datasetEntry `yaml:"datasets"`
}

type datasetEntry struct {
	Name        string   `yaml:"name"`
	Table       string   `yaml:"table"`
	DateColumn  string   `yaml:"date_column"`
	Dimensions  []string `yaml:"dimensions"`
	Metrics     []string `yaml:"metrics"`
	Aggregation string   `yaml:"aggregation"`
}

// Catalog is the immutable set of datasets the API may query.
type Catalog struct {
	order    []string
	datasets map[string]domain.Dataset
}

func LoadCatalog(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCatalog(f)
}

func ReadCatalog(r io.Reader) (*Catalog, error) {
	var file catalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	if len(file.Datasets) == 0 {
		return nil, fmt.Errorf("%w: no datasets declared", ErrInvalidCatalog)
	}

	c := &Catalog{datasets: make(map[string]domain.Dataset, len(file.Datasets))}
	for _, e := range file.Datasets {
		ds, err := e.dataset()
		if err != nil {
			return nil, fmt.Errorf("%w: dataset %q: %v", ErrInvalidCatalog, e.Name, err)
		}
		if _, dup := c.datasets[ds.Name]; dup {
			return nil, fmt.Errorf("%w: dataset %q declared twice", ErrInvalidCatalog, ds.Name)
		}
		c.order = append(c.order, ds.Name)
		c.datasets[ds.Name] = ds
	}
	return c, nil
}

func (e datasetEntry) dataset() (domain.Dataset, error) {
	if e.Name == "" {
		return domain.Dataset{}, errors.New("name is required")
	}
	if !tableRe.MatchString(e.Table) {
		return domain.Dataset{}, fmt.Errorf("bad table name %q", e.Table)
	}
	if !identRe.MatchString(e.DateColumn) {
		return domain.Dataset{}, fmt.Errorf("bad date column %q", e.DateColumn)
	}
	if len(e.Metrics) == 0 {
		return domain.Dataset{}, errors.New("at least one metric is required")
	}

	seen := map[string]bool{e.DateColumn: true}
	for _, col := range append(append([]string{}, e.Dimensions...), e.Metrics...) {
		if !identRe.MatchString(col) {
			return domain.Dataset{}, fmt.Errorf("bad column %q", col)
		}
		if domain.ReservedField(col) {
			return domain.Dataset{}, fmt.Errorf("column %q clashes with a computed field", col)
		}
		if seen[col] {
			return domain.Dataset{}, fmt.Errorf("column %q used twice", col)
		}
		seen[col] = true
	}

	agg := domain.AggSum
	if e.Aggregation != "" {
		a, err := domain.ParseAggregation(e.Aggregation)
		if err != nil {
			return domain.Dataset{}, err
		}
		agg = a
	}

	return domain.Dataset{
		Name:               e.Name,
		Table:              e.Table,
		DateColumn:         e.DateColumn,
		Dimensions:         e.Dimensions,
		Metrics:            e.Metrics,
		DefaultAggregation: agg,
	}, nil
}

func (c *Catalog) Dataset(name string) (domain.Dataset, bool) {
	ds, ok := c.datasets[name]
	return ds, ok
}

// Datasets returns the datasets in declaration order.
func (c *Catalog) Datasets() []domain.Dataset {
	return lo.Map(c.order, func(name string, _ int) domain.Dataset {
		return c.datasets[name]
	})
}
