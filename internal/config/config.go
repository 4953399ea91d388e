package config

import (
	"errors"
	"time"

	"github.com/urfave/cli/v2"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	PostgresDSN     string
	ListenAddress   string
	DatasetsFile    string
	LogLevel        string
	LogFormat       string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ShutdownTimeout time.Duration
	MaxRangeDays    int
}

func Defaults() *Config {
	return &Config{
		ListenAddress:   ":8080",
		DatasetsFile:    "config/datasets.yaml",
		LogLevel:        "info",
		LogFormat:       "json",
		MaxOpenConns:    20,
		MaxIdleConns:    10,
		ConnMaxLifetime: 30 * time.Minute,
		ShutdownTimeout: 5 * time.Second,
		MaxRangeDays:    3660,
	}
}

// Flags binds every option to a flag and its environment variable. Values in
// o are used as flag defaults.
func Flags(o *Config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Category:    "database",
			Name:        "postgres-dsn",
			Usage:       "postgres connection string",
			Required:    true,
			Destination: &o.PostgresDSN,
			EnvVars:     []string{"POSTGRES_DSN"},
		},
		&cli.IntFlag{
			Category:    "database",
			Name:        "db-max-open-conns",
			Usage:       "maximum open connections",
			Value:       o.MaxOpenConns,
			Destination: &o.MaxOpenConns,
			EnvVars:     []string{"DB_MAX_OPEN_CONNS"},
		},
		&cli.IntFlag{
			Category:    "database",
			Name:        "db-max-idle-conns",
			Usage:       "maximum idle connections",
			Value:       o.MaxIdleConns,
			Destination: &o.MaxIdleConns,
			EnvVars:     []string{"DB_MAX_IDLE_CONNS"},
		},
		&cli.DurationFlag{
			Category:    "database",
			Name:        "db-conn-max-lifetime",
			Usage:       "maximum lifetime of a pooled connection",
			Value:       o.ConnMaxLifetime,
			Destination: &o.ConnMaxLifetime,
			EnvVars:     []string{"DB_CONN_MAX_LIFETIME"},
		},
		&cli.StringFlag{
			Category:    "core",
			Name:        "listen",
			Usage:       "http address to listen to",
			Value:       o.ListenAddress,
			Destination: &o.ListenAddress,
			EnvVars:     []string{"LISTEN_ADDR"},
		},
		&cli.StringFlag{
			Category:    "core",
			Name:        "datasets",
			Usage:       "path to the dataset catalog",
			Value:       o.DatasetsFile,
			Destination: &o.DatasetsFile,
			EnvVars:     []string{"DATASETS_FILE"},
		},
		&cli.DurationFlag{
			Category:    "core",
			Name:        "shutdown-timeout",
			Usage:       "time allowed for in-flight requests on shutdown",
			Value:       o.ShutdownTimeout,
			Destination: &o.ShutdownTimeout,
			EnvVars:     []string{"SHUTDOWN_TIMEOUT"},
		},
		&cli.IntFlag{
			Category:    "core",
			Name:        "max-range-days",
			Usage:       "longest period, in days, a single query may cover",
			Value:       o.MaxRangeDays,
			Destination: &o.MaxRangeDays,
			EnvVars:     []string{"MAX_RANGE_DAYS"},
		},
		&cli.StringFlag{
			Category:    "log",
			Name:        "log-level",
			Usage:       "log level, one of trace|debug|info|warn|error",
			Value:       o.LogLevel,
			Destination: &o.LogLevel,
			EnvVars:     []string{"LOG_LEVEL"},
		},
		&cli.StringFlag{
			Category:    "log",
			Name:        "log-format",
			Usage:       "log format, json or text",
			Value:       o.LogFormat,
			Destination: &o.LogFormat,
			EnvVars:     []string{"LOG_FORMAT"},
		},
	}
}

func (c *Config) Validate() error {
	switch {
	case c.PostgresDSN == "":
		return errors.Join(ErrInvalidConfig, errors.New("postgres dsn is not set"))
	case c.ListenAddress == "":
		return errors.Join(ErrInvalidConfig, errors.New("listen address is empty"))
	case c.MaxOpenConns < 1:
		return errors.Join(ErrInvalidConfig, errors.New("db-max-open-conns must be positive"))
	case c.MaxIdleConns < 0 || c.MaxIdleConns > c.MaxOpenConns:
		return errors.Join(ErrInvalidConfig, errors.New("db-max-idle-conns must be between 0 and db-max-open-conns"))
	case c.ShutdownTimeout <= 0:
		return errors.Join(ErrInvalidConfig, errors.New("shutdown-timeout must be positive"))
	case c.MaxRangeDays < 1:
		return errors.Join(ErrInvalidConfig, errors.New("max-range-days must be positive"))
	}
	return nil
}
