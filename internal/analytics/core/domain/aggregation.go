package domain

import (
	"fmt"
	"slices"
)

// Aggregation names the reducer applied to a partition's metric values.
type Aggregation string

const (
	AggSum    Aggregation = "sum"
	AggMean   Aggregation = "mean"
	AggMedian Aggregation = "median"
	AggMin    Aggregation = "min"
	AggMax    Aggregation = "max"
)

// Aggregations lists every supported aggregation.
func Aggregations() []Aggregation {
	return []Aggregation{AggSum, AggMean, AggMedian, AggMin, AggMax}
}

func (a Aggregation) Valid() bool {
	return slices.Contains(Aggregations(), a)
}

// OrSum returns a, or AggSum when a is not a known aggregation.
func (a Aggregation) OrSum() Aggregation {
	if a.Valid() {
		return a
	}
	return AggSum
}

// ParseAggregation is the strict counterpart of OrSum.
func ParseAggregation(s string) (Aggregation, error) {
	a := Aggregation(s)
	if !a.Valid() {
		return "", fmt.Errorf("%w: %q, want one of %v", ErrUnsupportedAggregation, s, Aggregations())
	}
	return a, nil
}
