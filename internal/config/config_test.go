package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"event-analytics-service/internal/analytics/core/domain"
)

func runFlags(t *testing.T, args ...string) *Config {
	t.Helper()
	o := Defaults()
	app := &cli.App{
		Name:   "test",
		Flags:  Flags(o),
		Action: func(*cli.Context) error { return nil },
	}
	require.NoError(t, app.Run(append([]string{"test"}, args...)))
	return o
}

// ------------------------------------------------------------
// FLAGS
// ------------------------------------------------------------

func TestFlags_Defaults(t *testing.T) {
	o := runFlags(t, "--postgres-dsn", "postgres://localhost/analytics")

	require.Equal(t, "postgres://localhost/analytics", o.PostgresDSN)
	require.Equal(t, ":8080", o.ListenAddress)
	require.Equal(t, "config/datasets.yaml", o.DatasetsFile)
	require.Equal(t, 20, o.MaxOpenConns)
	require.Equal(t, 10, o.MaxIdleConns)
	require.Equal(t, 30*time.Minute, o.ConnMaxLifetime)
	require.Equal(t, 5*time.Second, o.ShutdownTimeout)
	require.Equal(t, 3660, o.MaxRangeDays)
	require.NoError(t, o.Validate())
}

func TestFlags_Overrides(t *testing.T) {
	o := runFlags(t,
		"--postgres-dsn", "dsn",
		"--listen", ":9090",
		"--db-max-open-conns", "4",
		"--db-max-idle-conns", "2",
		"--shutdown-timeout", "10s",
		"--log-format", "text",
		"--max-range-days", "400",
	)

	require.Equal(t, ":9090", o.ListenAddress)
	require.Equal(t, 4, o.MaxOpenConns)
	require.Equal(t, 2, o.MaxIdleConns)
	require.Equal(t, 10*time.Second, o.ShutdownTimeout)
	require.Equal(t, "text", o.LogFormat)
	require.Equal(t, 400, o.MaxRangeDays)
}

func TestFlags_EnvVars(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "from-env")
	t.Setenv("LISTEN_ADDR", ":7070")

	o := runFlags(t)

	require.Equal(t, "from-env", o.PostgresDSN)
	require.Equal(t, ":7070", o.ListenAddress)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing_dsn", func(c *Config) { c.PostgresDSN = "" }},
		{"empty_listen", func(c *Config) { c.ListenAddress = "" }},
		{"no_open_conns", func(c *Config) { c.MaxOpenConns = 0 }},
		{"idle_above_open", func(c *Config) { c.MaxIdleConns = c.MaxOpenConns + 1 }},
		{"zero_shutdown", func(c *Config) { c.ShutdownTimeout = 0 }},
		{"zero_max_range", func(c *Config) { c.MaxRangeDays = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Defaults()
			c.PostgresDSN = "dsn"
			tt.mutate(c)
			require.True(t, errors.Is(c.Validate(), ErrInvalidConfig))
		})
	}
}

// ------------------------------------------------------------
// CATALOG
// ------------------------------------------------------------

const catalogYAML = `
datasets:
  - name: events
    table: analytics.daily_events
    date_column: day
    dimensions: [channel, country]
    metrics: [value, users]
  - name: sessions
    table: daily_sessions
    date_column: day
    dimensions: [device]
    metrics: [duration]
    aggregation: mean
`

func TestReadCatalog(t *testing.T) {
	c, err := ReadCatalog(strings.NewReader(catalogYAML))
	require.NoError(t, err)

	all := c.Datasets()
	require.Len(t, all, 2)
	require.Equal(t, "events", all[0].Name)
	require.Equal(t, "sessions", all[1].Name)

	ev, ok := c.Dataset("events")
	require.True(t, ok)
	require.Equal(t, "analytics.daily_events", ev.Table)
	require.Equal(t, domain.AggSum, ev.DefaultAggregation)
	require.True(t, ev.HasDimension("country"))
	require.True(t, ev.HasMetric("users"))

	ss, _ := c.Dataset("sessions")
	require.Equal(t, domain.AggMean, ss.DefaultAggregation)

	_, ok = c.Dataset("missing")
	require.False(t, ok)
}

func TestReadCatalog_Invalid(t *testing.T) {
	tests := map[string]string{
		"empty":         `datasets: []`,
		"unknown_field": "datasets:\n  - name: a\n    table: t\n    date_column: d\n    metrics: [m]\n    color: red\n",
		"bad_table":     "datasets:\n  - name: a\n    table: \"t; drop\"\n    date_column: d\n    metrics: [m]\n",
		"bad_column":    "datasets:\n  - name: a\n    table: t\n    date_column: d\n    dimensions: [\"x y\"]\n    metrics: [m]\n",
		"no_metrics":    "datasets:\n  - name: a\n    table: t\n    date_column: d\n",
		"reused_column": "datasets:\n  - name: a\n    table: t\n    date_column: d\n    dimensions: [m]\n    metrics: [m]\n",
		"reserved":      "datasets:\n  - name: a\n    table: t\n    date_column: d\n    metrics: [m_change]\n",
		"bad_agg":       "datasets:\n  - name: a\n    table: t\n    date_column: d\n    metrics: [m]\n    aggregation: mode\n",
		"duplicate":     "datasets:\n  - {name: a, table: t, date_column: d, metrics: [m]}\n  - {name: a, table: t, date_column: d, metrics: [m]}\n",
	}

	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ReadCatalog(strings.NewReader(doc))
			require.ErrorIs(t, err, ErrInvalidCatalog)
		})
	}
}

func TestLoadCatalog_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "datasets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(catalogYAML), 0o600))

	c, err := LoadCatalog(path)
	require.NoError(t, err)
	require.Len(t, c.Datasets(), 2)

	_, err = LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
