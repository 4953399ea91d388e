package telemetry

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := newLogger(&buf, "info", "json")
	require.NoError(t, err)

	log.WithField("dataset", "events").Debug("hidden")
	log.WithField("dataset", "events").Info("computed")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	require.Equal(t, "computed", entry["msg"])
	require.Equal(t, "events", entry["dataset"])
	require.Equal(t, "info", entry["level"])
}

func TestNewLogger_Text(t *testing.T) {
	log, err := newLogger(&bytes.Buffer{}, "debug", "text")
	require.NoError(t, err)
	require.Equal(t, logrus.DebugLevel, log.GetLevel())
}

func TestNewLogger_Invalid(t *testing.T) {
	_, err := NewLogger("loud", "json")
	require.Error(t, err)

	_, err = NewLogger("info", "xml")
	require.Error(t, err)
}

func TestObserveCompute(t *testing.T) {
	before := testutil.ToFloat64(RowsRead.WithLabelValues("telemetry_test"))

	ObserveCompute("compare", "telemetry_test", time.Now(), 12, 3)

	require.Equal(t, before+12, testutil.ToFloat64(RowsRead.WithLabelValues("telemetry_test")))
	require.GreaterOrEqual(t, testutil.ToFloat64(RowsEmitted.WithLabelValues("compare")), 3.0)
}

func TestHandlerExposesMetrics(t *testing.T) {
	ObserveCompute("top", "telemetry_test", time.Now(), 1, 1)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "analytics_source_rows_read_total")
}
