package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"event-analytics-service/internal/analytics/core/domain"
	"event-analytics-service/internal/analytics/core/usecase"
)

func TestRanges_Execute(t *testing.T) {
	uc := usecase.NewRangesUseCase()

	out, err := uc.Execute(day(2024, 3, 15))
	require.NoError(t, err)
	require.Len(t, out, 3)

	require.Equal(t, domain.RangeLast28Days, out[0].Preset.Value)
	require.Equal(t, domain.DayToDay, out[0].Comparison)
	require.Equal(t, rng(day(2024, 2, 16), day(2024, 3, 14)), out[0].Current)
	require.Equal(t, rng(day(2024, 1, 19), day(2024, 2, 15)), out[0].Previous)

	require.Equal(t, domain.RangeLastMonth, out[1].Preset.Value)
	require.Equal(t, domain.MonthToMonth, out[1].Comparison)
	require.Equal(t, rng(day(2024, 2, 1), day(2024, 2, 29)), out[1].Current)
	require.Equal(t, rng(day(2024, 1, 1), day(2024, 1, 31)), out[1].Previous)

	require.Equal(t, domain.RangeLastQuarter, out[2].Preset.Value)
	require.Equal(t, domain.QuarterToQuarter, out[2].Comparison)
	require.Equal(t, rng(day(2023, 10, 1), day(2023, 12, 31)), out[2].Current)
	require.Equal(t, rng(day(2023, 7, 1), day(2023, 9, 30)), out[2].Previous)
}

func TestRanges_ZeroReferenceUsesToday(t *testing.T) {
	out, err := usecase.NewRangesUseCase().Execute(time.Time{})
	require.NoError(t, err)
	require.Len(t, out, 3)

	today := domain.FloorDay(time.Now())
	for _, o := range out {
		require.True(t, o.Current.End.Before(today), "preset %s must end before today", o.Preset.Value)
	}
}
