package fiber

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"event-analytics-service/internal/analytics/core/domain"
	"event-analytics-service/internal/analytics/core/usecase"
)

const defaultTopX = 10

var errBadParam = errors.New("invalid query parameter")

type CompareUseCase interface {
	Execute(ctx context.Context, in usecase.CompareInput) (*usecase.CompareResult, error)
}

type TopUseCase interface {
	Execute(ctx context.Context, in usecase.TopInput) (*usecase.TopResult, error)
}

type ScorecardUseCase interface {
	Execute(ctx context.Context, in usecase.ScorecardInput) (*usecase.ScorecardResult, error)
}

type RangesUseCase interface {
	Execute(reference time.Time) ([]usecase.RangeOption, error)
}

type DatasetLister interface {
	Datasets() []domain.Dataset
}

type AnalyticsHandler struct {
	compare    CompareUseCase
	top        TopUseCase
	scorecards ScorecardUseCase
	ranges     RangesUseCase
	datasets   DatasetLister
	log        logrus.FieldLogger
}

func NewAnalyticsHandler(
	compare CompareUseCase,
	top TopUseCase,
	scorecards ScorecardUseCase,
	ranges RangesUseCase,
	datasets DatasetLister,
	log logrus.FieldLogger,
) *AnalyticsHandler {
	return &AnalyticsHandler{
		compare:    compare,
		top:        top,
		scorecards: scorecards,
		ranges:     ranges,
		datasets:   datasets,
		log:        log,
	}
}

func (h *AnalyticsHandler) Register(r fiber.Router) {
	r.Get("/ranges", h.GetRanges)
	r.Get("/datasets", h.GetDatasets)
	r.Get("/compare", h.GetComparison)
	r.Get("/top", h.GetTop)
	r.Get("/scorecards", h.GetScorecards)
}

// GetRanges godoc
// @Summary List date range presets
// @Description Resolves every preset and its default comparison period for a reference day
// @Tags Ranges
// @Produce json
// @Param reference query string false "Reference day (YYYY-MM-DD), defaults to today"
// @Success 200 {array} RangeResponse
// @Failure 400 {object} ErrorResponse
// @Router /ranges [get]
func (h *AnalyticsHandler) GetRanges(c *fiber.Ctx) error {
	ref, err := queryDay(c, "reference")
	if err != nil {
		return h.fail(c, err)
	}

	opts, err := h.ranges.Execute(ref)
	if err != nil {
		return h.fail(c, err)
	}

	resp := make([]RangeResponse, 0, len(opts))
	for _, o := range opts {
		resp = append(resp, RangeResponse{
			Name:       o.Preset.Name,
			Value:      string(o.Preset.Value),
			Comparison: string(o.Comparison),
			Current:    toDateRange(o.Current),
			Previous:   toDateRange(o.Previous),
		})
	}
	return c.Status(http.StatusOK).JSON(resp)
}

// GetDatasets godoc
// @Summary List datasets
// @Description Returns the datasets with the dimensions and metrics they accept
// @Tags Datasets
// @Produce json
// @Success 200 {array} DatasetResponse
// @Router /datasets [get]
func (h *AnalyticsHandler) GetDatasets(c *fiber.Ctx) error {
	all := h.datasets.Datasets()
	resp := make([]DatasetResponse, 0, len(all))
	for _, ds := range all {
		resp = append(resp, DatasetResponse{
			Name:        ds.Name,
			Dimensions:  ds.Dimensions,
			Metrics:     ds.Metrics,
			Aggregation: string(ds.DefaultAggregation),
		})
	}
	return c.Status(http.StatusOK).JSON(resp)
}

// GetComparison godoc
// @Summary Compare two periods day by day
// @Description Merges the current and comparison periods per day and dimension combination, adding <metric>_compare and <metric>_change
// @Tags Analytics
// @Produce json
// @Param dataset query string true "Dataset name"
// @Param range query string false "Preset: 28-dd | last-mm | last-qq"
// @Param comparison query string false "day-to-day | weekday-to-weekday | week-to-week | month-to-month | quarter-to-quarter | year-to-year"
// @Param reference query string false "Reference day for presets (YYYY-MM-DD)"
// @Param start query string false "Explicit current range start (YYYY-MM-DD)"
// @Param end query string false "Explicit current range end (YYYY-MM-DD)"
// @Param dimensions query string false "Comma separated dimensions"
// @Param metrics query string false "Comma separated metrics"
// @Param aggregation query string false "Reducer applied per group" Enums(sum, mean, median, min, max)
// @Param filter query []string false "Dimension filter as dim:value, repeatable" collectionFormat(multi)
// @Success 200 {object} CompareResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /compare [get]
func (h *AnalyticsHandler) GetComparison(c *fiber.Ctx) error {
	period, err := periodInput(c)
	if err != nil {
		return h.fail(c, err)
	}
	filters, err := queryFilters(c)
	if err != nil {
		return h.fail(c, err)
	}

	res, err := h.compare.Execute(c.Context(), usecase.CompareInput{
		Dataset:     c.Query("dataset"),
		Period:      period,
		Dimensions:  queryList(c, "dimensions"),
		Metrics:     queryList(c, "metrics"),
		Aggregation: c.Query("aggregation"),
		Filters:     filters,
	})
	if err != nil {
		return h.fail(c, err)
	}

	return c.Status(http.StatusOK).JSON(CompareResponse{
		Dataset: res.Dataset,
		Periods: toPeriods(res.Periods),
		Rows:    toRows(res.Rows),
	})
}

// GetTop godoc
// @Summary Top values of a dimension
// @Description Ranks dimension values by one metric and folds the rest into "other" buckets
// @Tags Analytics
// @Produce json
// @Param dataset query string true "Dataset name"
// @Param dimensions query string true "Comma separated dimensions, the first is ranked"
// @Param metric query string false "Metric to rank by"
// @Param top query int false "Number of rows kept" default(10)
// @Param order query string false "desc | asc"
// @Param aggregation query string false "Reducer applied per group" Enums(sum, mean, median, min, max)
// @Param other_label query string false "Label written into folded buckets"
// @Param range query string false "Preset: 28-dd | last-mm | last-qq"
// @Param reference query string false "Reference day for presets (YYYY-MM-DD)"
// @Param start query string false "Explicit range start (YYYY-MM-DD)"
// @Param end query string false "Explicit range end (YYYY-MM-DD)"
// @Param filter query []string false "Dimension filter as dim:value, repeatable" collectionFormat(multi)
// @Success 200 {object} TopResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /top [get]
func (h *AnalyticsHandler) GetTop(c *fiber.Ctx) error {
	period, err := periodInput(c)
	if err != nil {
		return h.fail(c, err)
	}
	filters, err := queryFilters(c)
	if err != nil {
		return h.fail(c, err)
	}

	topX := defaultTopX
	if s := c.Query("top"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return h.fail(c, badParam("top", s))
		}
		topX = n
	}

	res, err := h.top.Execute(c.Context(), usecase.TopInput{
		Dataset:     c.Query("dataset"),
		Period:      period,
		Dimensions:  queryList(c, "dimensions"),
		Metric:      c.Query("metric"),
		TopX:        topX,
		Order:       c.Query("order"),
		Aggregation: c.Query("aggregation"),
		OtherLabel:  c.Query("other_label"),
		Filters:     filters,
	})
	if err != nil {
		return h.fail(c, err)
	}

	return c.Status(http.StatusOK).JSON(TopResponse{
		Dataset: res.Dataset,
		Range:   toDateRange(res.Range),
		Rows:    toRows(res.Result.Rows()),
	})
}

// GetScorecards godoc
// @Summary Headline totals against the comparison period
// @Tags Analytics
// @Produce json
// @Param dataset query string true "Dataset name"
// @Param metrics query string false "Comma separated metrics"
// @Param aggregation query string false "Reducer applied per group" Enums(sum, mean, median, min, max)
// @Param range query string false "Preset: 28-dd | last-mm | last-qq"
// @Param comparison query string false "Comparison type"
// @Param reference query string false "Reference day for presets (YYYY-MM-DD)"
// @Param start query string false "Explicit current range start (YYYY-MM-DD)"
// @Param end query string false "Explicit current range end (YYYY-MM-DD)"
// @Param filter query []string false "Dimension filter as dim:value, repeatable" collectionFormat(multi)
// @Success 200 {object} ScorecardsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /scorecards [get]
func (h *AnalyticsHandler) GetScorecards(c *fiber.Ctx) error {
	period, err := periodInput(c)
	if err != nil {
		return h.fail(c, err)
	}
	filters, err := queryFilters(c)
	if err != nil {
		return h.fail(c, err)
	}

	res, err := h.scorecards.Execute(c.Context(), usecase.ScorecardInput{
		Dataset:     c.Query("dataset"),
		Period:      period,
		Metrics:     queryList(c, "metrics"),
		Aggregation: c.Query("aggregation"),
		Filters:     filters,
	})
	if err != nil {
		return h.fail(c, err)
	}

	cards := make([]ScorecardResponse, 0, len(res.Scorecards))
	for _, sc := range res.Scorecards {
		cards = append(cards, toScorecard(sc))
	}
	return c.Status(http.StatusOK).JSON(ScorecardsResponse{
		Dataset:    res.Dataset,
		Periods:    toPeriods(res.Periods),
		Scorecards: cards,
	})
}

func (h *AnalyticsHandler) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, usecase.ErrUnknownDataset):
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Error:   "unknown_dataset",
			Message: err.Error(),
		})
	case errors.Is(err, errBadParam),
		errors.Is(err, usecase.ErrInvalidQuery),
		errors.Is(err, usecase.ErrUnknownDimension),
		errors.Is(err, usecase.ErrUnknownMetric),
		errors.Is(err, usecase.ErrInvalidTopX),
		errors.Is(err, domain.ErrInvalidRangeType),
		errors.Is(err, domain.ErrInvalidComparisonType),
		errors.Is(err, domain.ErrUnsupportedAggregation),
		errors.Is(err, domain.ErrInvalidDateRange):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_query",
			Message: err.Error(),
		})
	default:
		h.log.WithError(err).WithField("path", c.Path()).Error("request failed")
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "internal_server_error",
		})
	}
}

func badParam(name, value string) error {
	return errors.Join(errBadParam, errors.New(name+": "+strconv.Quote(value)))
}

func periodInput(c *fiber.Ctx) (usecase.PeriodInput, error) {
	in := usecase.PeriodInput{
		Range:      c.Query("range"),
		Comparison: c.Query("comparison"),
	}
	var err error
	if in.Reference, err = queryDay(c, "reference"); err != nil {
		return in, err
	}
	if in.Start, err = queryDay(c, "start"); err != nil {
		return in, err
	}
	if in.End, err = queryDay(c, "end"); err != nil {
		return in, err
	}
	return in, nil
}

// queryDay parses a YYYY-MM-DD parameter; absent means the zero time.
func queryDay(c *fiber.Ctx, name string) (time.Time, error) {
	s := c.Query(name)
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dayLayout, s)
	if err != nil {
		return time.Time{}, badParam(name, s)
	}
	return t, nil
}

func queryList(c *fiber.Ctx, name string) []string {
	parts := lo.Map(strings.Split(c.Query(name), ","), func(s string, _ int) string {
		return strings.TrimSpace(s)
	})
	return lo.Compact(parts)
}

// queryFilters collects repeated filter=dim:value parameters.
func queryFilters(c *fiber.Ctx) (map[string][]string, error) {
	raw := c.Context().QueryArgs().PeekMulti("filter")
	if len(raw) == 0 {
		return nil, nil
	}
	filters := make(map[string][]string, len(raw))
	for _, b := range raw {
		dim, value, ok := strings.Cut(string(b), ":")
		dim = strings.TrimSpace(dim)
		if !ok || dim == "" {
			return nil, badParam("filter", string(b))
		}
		filters[dim] = append(filters[dim], value)
	}
	return filters, nil
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health godoc
// @Summary Liveness and database reachability
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} ErrorResponse
// @Router /healthz [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		return c.Status(http.StatusServiceUnavailable).JSON(ErrorResponse{
			Error:   "database_unavailable",
			Message: err.Error(),
		})
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"status": "ok"})
}
