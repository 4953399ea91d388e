package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"event-analytics-service/internal/analytics/core/domain"
	"event-analytics-service/internal/analytics/core/ports"
	"event-analytics-service/internal/analytics/core/usecase"
)

func channelRows(ctx context.Context, q ports.RowQuery) ([]domain.Row, error) {
	return []domain.Row{
		{"date": day(2024, 3, 1), "channel": "web", "country": "DE", "views": 6.0},
		{"date": day(2024, 3, 2), "channel": "web", "country": "FR", "views": 4.0},
		{"date": day(2024, 3, 1), "channel": "app", "country": "DE", "views": 4.0},
		{"date": day(2024, 3, 2), "channel": "email", "country": "FR", "views": 3.0},
	}, nil
}

// ------------------------------------------------------------
// SUCCESS
// ------------------------------------------------------------

func TestTop_Success_FoldsRemainder(t *testing.T) {
	reader := &fakeRowReader{ReadFn: channelRows}
	log, _ := nullLogger()
	uc := usecase.NewTopUseCase(reader, catalog(), log)

	out, err := uc.Execute(context.Background(), usecase.TopInput{
		Dataset:    "events",
		Period:     usecase.PeriodInput{Start: day(2024, 3, 1), End: day(2024, 3, 2)},
		Dimensions: []string{"channel"},
		TopX:       1,
		OtherLabel: "Other",
	})
	require.NoError(t, err)

	// only the current period is read, metric defaults to the first one
	require.Equal(t, day(2024, 3, 1), reader.lastQuery.From)
	require.Equal(t, day(2024, 3, 2), reader.lastQuery.To)
	require.Equal(t, []string{"views"}, reader.lastQuery.Metrics)
	require.Equal(t, rng(day(2024, 3, 1), day(2024, 3, 2)), out.Range)

	require.Len(t, out.Result.Top, 1)
	require.Equal(t, "web", out.Result.Top[0]["channel"])
	require.Equal(t, 10.0, out.Result.Top[0]["views"])

	require.Len(t, out.Result.Other, 1)
	other := out.Result.Other[0]
	require.Equal(t, "Other", other.Row["channel"])
	require.Equal(t, 7.0, other.Row["views"])
	require.Len(t, other.Data, 2)
	require.Equal(t, "app", other.Data[0]["channel"])
	require.Equal(t, "email", other.Data[1]["channel"])
}

func TestTop_SplitsRemainderBySecondDimension(t *testing.T) {
	reader := &fakeRowReader{ReadFn: channelRows}
	log, _ := nullLogger()
	uc := usecase.NewTopUseCase(reader, catalog(), log)

	out, err := uc.Execute(context.Background(), usecase.TopInput{
		Dataset:    "events",
		Period:     usecase.PeriodInput{Start: day(2024, 3, 1), End: day(2024, 3, 2)},
		Dimensions: []string{"channel", "country"},
		Metric:     "views",
		TopX:       1,
	})
	require.NoError(t, err)

	require.Len(t, out.Result.Top, 1)
	require.Equal(t, "web", out.Result.Top[0]["channel"])
	require.Equal(t, "DE", out.Result.Top[0]["country"])

	// web/FR 4, app/DE 4, email/FR 3 folded per country
	require.Len(t, out.Result.Other, 2)
	totals := map[any]any{}
	for _, b := range out.Result.Other {
		_, hasChannel := b.Row["channel"]
		require.False(t, hasChannel)
		totals[b.Row["country"]] = b.Row["views"]
	}
	require.Equal(t, map[any]any{"FR": 7.0, "DE": 4.0}, totals)
}

func TestTop_AscendingOrder(t *testing.T) {
	reader := &fakeRowReader{ReadFn: channelRows}
	log, _ := nullLogger()
	uc := usecase.NewTopUseCase(reader, catalog(), log)

	out, err := uc.Execute(context.Background(), usecase.TopInput{
		Dataset:    "events",
		Period:     usecase.PeriodInput{Start: day(2024, 3, 1), End: day(2024, 3, 2)},
		Dimensions: []string{"channel"},
		TopX:       2,
		Order:      "asc",
	})
	require.NoError(t, err)
	require.Len(t, out.Result.Top, 2)
	require.Equal(t, "email", out.Result.Top[0]["channel"])
	require.Equal(t, "app", out.Result.Top[1]["channel"])
}

// ------------------------------------------------------------
// VALIDATION
// ------------------------------------------------------------

func TestTop_ValidationErrors(t *testing.T) {
	period := usecase.PeriodInput{Start: day(2024, 3, 1), End: day(2024, 3, 2)}

	tests := []struct {
		name string
		in   usecase.TopInput
		want error
	}{
		{"unknown_dataset", usecase.TopInput{Dataset: "orders", Period: period, Dimensions: []string{"channel"}, TopX: 3}, usecase.ErrUnknownDataset},
		{"no_dimensions", usecase.TopInput{Dataset: "events", Period: period, TopX: 3}, usecase.ErrInvalidQuery},
		{"zero_top", usecase.TopInput{Dataset: "events", Period: period, Dimensions: []string{"channel"}}, usecase.ErrInvalidTopX},
		{"bad_order", usecase.TopInput{Dataset: "events", Period: period, Dimensions: []string{"channel"}, TopX: 3, Order: "up"}, usecase.ErrInvalidQuery},
		{"unknown_metric", usecase.TopInput{Dataset: "events", Period: period, Dimensions: []string{"channel"}, Metric: "revenue", TopX: 3}, usecase.ErrUnknownMetric},
		{"unsupported_aggregation", usecase.TopInput{Dataset: "events", Period: period, Dimensions: []string{"channel"}, TopX: 3, Aggregation: "mode"}, domain.ErrUnsupportedAggregation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := &fakeRowReader{}
			log, _ := nullLogger()
			uc := usecase.NewTopUseCase(reader, catalog(), log)

			out, err := uc.Execute(context.Background(), tt.in)
			require.ErrorIs(t, err, tt.want)
			require.Nil(t, out)
			require.False(t, reader.called)
		})
	}
}
