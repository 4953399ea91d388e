package usecase

import (
	"time"

	"event-analytics-service/internal/analytics/core/domain"
)

// RangeOption is a preset resolved against a reference day.
type RangeOption struct {
	Preset     domain.RangePreset
	Comparison domain.ComparisonType
	Current    domain.DateRange
	Previous   domain.DateRange
}

type RangesUseCase struct {
	now func() time.Time
}

func NewRangesUseCase() *RangesUseCase {
	return &RangesUseCase{now: time.Now}
}

// Execute resolves every preset for reference, or for today when it is zero.
func (uc *RangesUseCase) Execute(reference time.Time) ([]RangeOption, error) {
	if reference.IsZero() {
		reference = uc.now()
	}

	presets := domain.RangePresets()
	out := make([]RangeOption, 0, len(presets))
	for _, p := range presets {
		current, err := domain.GetDateRangePeriod(reference, p.Value)
		if err != nil {
			return nil, err
		}
		comparison, err := domain.DefaultComparison(p.Value)
		if err != nil {
			return nil, err
		}
		previous, err := domain.CalculatePreviousDateRange(current, comparison)
		if err != nil {
			return nil, err
		}
		out = append(out, RangeOption{
			Preset:     p,
			Comparison: comparison,
			Current:    current,
			Previous:   previous,
		})
	}
	return out, nil
}
