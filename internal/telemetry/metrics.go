package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "analytics"

var (
	buckets = []float64{.005, .01, .05, .1, .25, .5, 1, 2.5, 5}

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Time taken to serve an HTTP request.",
			Buckets:   buckets,
		},
		[]string{"method", "route", "status"},
	)
	ComputeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "compute_duration_seconds",
			Help:      "Time taken to read and compute one dashboard query.",
			Buckets:   buckets,
		},
		[]string{"operation", "dataset"},
	)
	RowsRead = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "source_rows_read_total",
			Help:      "Rows read from the source datasets.",
		},
		[]string{"dataset"},
	)
	RowsEmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "output_rows_emitted_total",
			Help:      "Records produced for the dashboard.",
		},
		[]string{"operation"},
	)
)

func init() {
	prometheus.DefaultRegisterer.MustRegister(
		RequestDuration,
		ComputeDuration,
		RowsRead,
		RowsEmitted,
	)
}

// ObserveCompute records one finished computation.
func ObserveCompute(operation, dataset string, start time.Time, read, emitted int) {
	ComputeDuration.WithLabelValues(operation, dataset).Observe(time.Since(start).Seconds())
	RowsRead.WithLabelValues(dataset).Add(float64(read))
	RowsEmitted.WithLabelValues(operation).Add(float64(emitted))
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
