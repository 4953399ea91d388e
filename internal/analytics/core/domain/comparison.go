package domain

import (
	"strings"
	"time"
)

const (
	DateField           = "date"
	ComparisonDateField = "comparisonDate"
	CompareSuffix       = "_compare"
	ChangeSuffix        = "_change"
	CountField          = "value"
	OtherFlagField      = "isOther"
	OtherDataField      = "data"
)

// PairedPeriod is one current day matched by position with a comparison day.
// ComparisonDay is nil when the comparison period has fewer days.
type PairedPeriod struct {
	Day           time.Time
	ComparisonDay *time.Time
	Current       []Row
	Previous      []Row
}

// OtherBucket summarizes rows folded out of a top-N view.
type OtherBucket struct {
	Row  Row
	Data []Row
}

// Record flattens the bucket into an open record carrying isOther and data.
func (b OtherBucket) Record() Row {
	out := b.Row.Clone()
	out[OtherFlagField] = true
	out[OtherDataField] = b.Data
	return out
}

// Scorecard is a headline value set against its comparison value.
type Scorecard struct {
	Metric       string
	Value        *float64
	CompareValue *float64
	Diff         *float64
	Trend        *float64
	TrendSymbol  string
}

// ReservedField reports whether name collides with a field the engine writes.
func ReservedField(name string) bool {
	switch name {
	case DateField, ComparisonDateField, OtherFlagField, OtherDataField:
		return true
	}
	return strings.HasSuffix(name, CompareSuffix) || strings.HasSuffix(name, ChangeSuffix)
}

func CompareField(metric string) string { return metric + CompareSuffix }

func ChangeField(metric string) string { return metric + ChangeSuffix }
