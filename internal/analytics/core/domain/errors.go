package domain

import "errors"

var (
	ErrInvalidRangeType       = errors.New("invalid date range type")
	ErrInvalidComparisonType  = errors.New("invalid comparison type")
	ErrUnsupportedAggregation = errors.New("unsupported aggregation type")
	ErrInvalidDateRange       = errors.New("date range start is after end")
)
