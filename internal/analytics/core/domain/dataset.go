package domain

import "slices"

// Dataset describes one day-granular source table and the fields callers
// may group and aggregate by.
type Dataset struct {
	Name               string
	Table              string
	DateColumn         string
	Dimensions         []string
	Metrics            []string
	DefaultAggregation Aggregation
}

func (d Dataset) HasDimension(name string) bool {
	return slices.Contains(d.Dimensions, name)
}

func (d Dataset) HasMetric(name string) bool {
	return slices.Contains(d.Metrics, name)
}
