package domain

import (
	"fmt"
	"time"
)

type RangeType string

const (
	RangeLast28Days  RangeType = "28-dd"
	RangeLastMonth   RangeType = "last-mm"
	RangeLastQuarter RangeType = "last-qq"
)

type ComparisonType string

const (
	DayToDay         ComparisonType = "day-to-day"
	WeekdayToWeekday ComparisonType = "weekday-to-weekday"
	WeekToWeek       ComparisonType = "week-to-week"
	MonthToMonth     ComparisonType = "month-to-month"
	QuarterToQuarter ComparisonType = "quarter-to-quarter"
	YearToYear       ComparisonType = "year-to-year"
)

// DateRange is a pair of UTC days, inclusive on both ends.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange floors both ends to UTC days and rejects start > end.
func NewDateRange(start, end time.Time) (DateRange, error) {
	r := DateRange{Start: FloorDay(start), End: FloorDay(end)}
	if r.Start.After(r.End) {
		return DateRange{}, ErrInvalidDateRange
	}
	return r, nil
}

// Days is the inclusive day count of the range.
func (r DateRange) Days() int {
	return DaysBetween(r.Start, r.End) + 1
}

// Contains reports whether t falls on a day inside the range.
func (r DateRange) Contains(t time.Time) bool {
	d := FloorDay(t)
	return !d.Before(FloorDay(r.Start)) && !d.After(FloorDay(r.End))
}

// Span returns the smallest range covering both r and o.
func (r DateRange) Span(o DateRange) DateRange {
	out := r
	if o.Start.Before(out.Start) {
		out.Start = o.Start
	}
	if o.End.After(out.End) {
		out.End = o.End
	}
	return out
}

func (r DateRange) String() string {
	return r.Start.Format("2006-01-02") + ".." + r.End.Format("2006-01-02")
}

// FloorDay truncates t to midnight UTC of its UTC day.
func FloorDay(t time.Time) time.Time {
	yy, mm, dd := t.UTC().Date()
	return time.Date(yy, mm, dd, 0, 0, 0, 0, time.UTC)
}

const secondsPerDay = 24 * 60 * 60

// DaysBetween counts UTC day boundaries crossed from a to b. It works on
// Unix seconds so spans longer than a time.Duration stay exact.
func DaysBetween(a, b time.Time) int {
	return int((FloorDay(b).Unix() - FloorDay(a).Unix()) / secondsPerDay)
}

func addDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func quarterStart(t time.Time) time.Time {
	m := (int(t.Month())-1)/3*3 + 1
	return time.Date(t.Year(), time.Month(m), 1, 0, 0, 0, 0, time.UTC)
}

// GetDateRangePeriod computes the period of the given type ending before the
// UTC day of reference.
func GetDateRangePeriod(reference time.Time, rangeType RangeType) (DateRange, error) {
	ref := FloorDay(reference)

	switch rangeType {
	case RangeLast28Days:
		return DateRange{Start: addDays(ref, -28), End: addDays(ref, -1)}, nil
	case RangeLastMonth:
		last := monthStart(ref).AddDate(0, -1, 0)
		return DateRange{Start: last, End: addDays(last.AddDate(0, 1, 0), -1)}, nil
	case RangeLastQuarter:
		last := quarterStart(ref).AddDate(0, -3, 0)
		return DateRange{Start: last, End: addDays(last.AddDate(0, 3, 0), -1)}, nil
	default:
		return DateRange{}, fmt.Errorf("%w: %q", ErrInvalidRangeType, rangeType)
	}
}

// CalculatePreviousDateRange returns the comparison period for current.
// week-to-week and year-to-year are fixed calendar shifts that do not
// preserve the day count.
func CalculatePreviousDateRange(current DateRange, comparisonType ComparisonType) (DateRange, error) {
	start := FloorDay(current.Start)
	end := FloorDay(current.End)
	dayCount := DaysBetween(start, end) + 1

	switch comparisonType {
	case DayToDay:
		return DateRange{Start: addDays(start, -dayCount), End: addDays(end, -dayCount)}, nil

	case WeekdayToWeekday:
		prevStart := addDays(start, -dayCount)
		prevEnd := addDays(end, -dayCount)
		offset := weekdayOffset(prevStart, start)
		return DateRange{Start: addDays(prevStart, offset), End: addDays(prevEnd, offset)}, nil

	case WeekToWeek:
		return DateRange{Start: addDays(start, -7), End: addDays(end, -7)}, nil

	case MonthToMonth:
		// day 0 of the end's month is the last day of the month before it
		prevEnd := time.Date(end.Year(), end.Month(), 0, 0, 0, 0, 0, time.UTC)
		return DateRange{Start: start.AddDate(0, -1, 0), End: prevEnd}, nil

	case QuarterToQuarter:
		prevStart := start.AddDate(0, -3, 0)
		return DateRange{Start: prevStart, End: addDays(prevStart.AddDate(0, 3, 0), -1)}, nil

	case YearToYear:
		return DateRange{Start: start.AddDate(0, -12, 0), End: end.AddDate(0, -12, 0)}, nil

	default:
		return DateRange{}, fmt.Errorf("%w: %q", ErrInvalidComparisonType, comparisonType)
	}
}

// weekdayOffset is the smallest signed day shift that moves date onto the
// weekday of target. Ties resolve forward.
func weekdayOffset(date, target time.Time) int {
	wd := int(date.Weekday())
	tw := int(target.Weekday())

	forward := (tw - wd + 7) % 7
	backward := -((wd - tw + 7) % 7)
	if forward <= -backward {
		return forward
	}
	return backward
}

// DomainFromDateRange lists every UTC day of r in ascending order.
func DomainFromDateRange(r DateRange) []time.Time {
	start := FloorDay(r.Start)
	end := FloorDay(r.End)
	if start.After(end) {
		return nil
	}

	days := make([]time.Time, 0, DaysBetween(start, end)+1)
	for d := start; !d.After(end); d = addDays(d, 1) {
		days = append(days, d)
	}
	return days
}

// RangePreset is a selectable period offered to dashboard users.
type RangePreset struct {
	Name  string
	Value RangeType
}

// RangePresets returns the selectable periods in display order.
func RangePresets() []RangePreset {
	return []RangePreset{
		{Name: "Last 28 days", Value: RangeLast28Days},
		{Name: "Last month", Value: RangeLastMonth},
		{Name: "Last quarter", Value: RangeLastQuarter},
	}
}

// DefaultComparison maps a period type to the comparison users expect for it.
func DefaultComparison(rangeType RangeType) (ComparisonType, error) {
	switch rangeType {
	case RangeLast28Days:
		return DayToDay, nil
	case RangeLastMonth:
		return MonthToMonth, nil
	case RangeLastQuarter:
		return QuarterToQuarter, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRangeType, rangeType)
	}
}

func ParseRangeType(s string) (RangeType, error) {
	switch rt := RangeType(s); rt {
	case RangeLast28Days, RangeLastMonth, RangeLastQuarter:
		return rt, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRangeType, s)
	}
}

func ParseComparisonType(s string) (ComparisonType, error) {
	switch ct := ComparisonType(s); ct {
	case DayToDay, WeekdayToWeekday, WeekToWeek, MonthToMonth, QuarterToQuarter, YearToYear:
		return ct, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidComparisonType, s)
	}
}
