package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Row is one open record: dimension fields, metric fields and a date field.
// Which keys play which role is decided per call by the caller.
type Row map[string]any

// KeySeparator joins dimension values into a composite grouping key.
const KeySeparator = "|"

// NoDimensionsKey is the composite key used when no dimension keys are given.
const NoDimensionsKey = "__NO_DIMENSIONS__"

// Clone returns a shallow copy of the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Number returns the numeric value stored under key.
// Missing, null and non-numeric values report ok=false.
func (r Row) Number(key string) (float64, bool) {
	v, ok := r[key]
	if !ok {
		return 0, false
	}
	return ToNumber(v)
}

// Day returns the UTC day stored under key.
func (r Row) Day(key string) (time.Time, bool) {
	v, ok := r[key]
	if !ok {
		return time.Time{}, false
	}
	return ToDay(v)
}

// CompositeKey joins the values of keys. An empty key list yields NoDimensionsKey.
func (r Row) CompositeKey(keys []string) string {
	if len(keys) == 0 {
		return NoDimensionsKey
	}
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = KeyOf(r[k])
	}
	return strings.Join(parts, KeySeparator)
}

// KeyOf coerces a field value into a stable string usable as a map key.
// Dates are keyed by instant so equal days collapse regardless of location.
func KeyOf(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case time.Time:
		return t.UTC().Format(time.RFC3339Nano)
	case *time.Time:
		if t == nil {
			return ""
		}
		return t.UTC().Format(time.RFC3339Nano)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(v)
	}
}

// ToNumber converts a metric value to float64. NaN and infinities are
// rejected so they never reach an aggregate.
func ToNumber(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int8:
		f = float64(t)
	case int16:
		f = float64(t)
	case int32:
		f = float64(t)
	case int64:
		f = float64(t)
	case uint:
		f = float64(t)
	case uint8:
		f = float64(t)
	case uint16:
		f = float64(t)
	case uint32:
		f = float64(t)
	case uint64:
		f = float64(t)
	case *float64:
		if t == nil {
			return 0, false
		}
		f = *t
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, false
		}
		p, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = p
	case interface{ Float64() (float64, error) }:
		p, err := t.Float64()
		if err != nil {
			return 0, false
		}
		f = p
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

var dayLayouts = []string{
	"2006-01-02",
	"20060102",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
}

// ToDay converts a date field value to its UTC day.
func ToDay(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return time.Time{}, false
		}
		return FloorDay(t), true
	case *time.Time:
		if t == nil || t.IsZero() {
			return time.Time{}, false
		}
		return FloorDay(*t), true
	case string:
		s := strings.TrimSpace(t)
		for _, layout := range dayLayouts {
			if p, err := time.Parse(layout, s); err == nil {
				return FloorDay(p), true
			}
		}
	}
	return time.Time{}, false
}
