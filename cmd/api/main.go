package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	analyticsHttp "event-analytics-service/internal/analytics/adapters/http/fiber"
	analyticsRepoPg "event-analytics-service/internal/analytics/adapters/postgres"
	analyticsUsecase "event-analytics-service/internal/analytics/core/usecase"
	"event-analytics-service/internal/config"
	"event-analytics-service/internal/telemetry"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/lib/pq"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"github.com/urfave/cli/v2"

	_ "event-analytics-service/docs"
)

// @title Event Analytics API
// @version 1.0
// @description Period-over-period comparisons, top-N breakdowns and scorecards over day-granular datasets.
// @BasePath /
func main() {
	cfg := config.Defaults()

	app := &cli.App{
		Name:  "event-analytics-service",
		Usage: "compare dashboard metrics across periods",
		Flags: config.Flags(cfg),
		Action: func(c *cli.Context) error {
			return run(c.Context, cfg)
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := telemetry.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	catalog, err := config.LoadCatalog(cfg.DatasetsFile)
	if err != nil {
		return fmt.Errorf("load datasets: %w", err)
	}

	// DB connection
	db, err := sql.Open("postgres", cfg.PostgresDSN)
	if err != nil {
		return fmt.Errorf("failed to open postgres: %w", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping postgres: %w", err)
	}

	// Repositories
	rowRepository := analyticsRepoPg.NewRowRepository(analyticsRepoPg.NewSQLDB(db))

	// Usecases
	compareUC := analyticsUsecase.NewCompareUseCase(rowRepository, catalog, log)
	topUC := analyticsUsecase.NewTopUseCase(rowRepository, catalog, log)
	scorecardUC := analyticsUsecase.NewScorecardUseCase(rowRepository, catalog, log)
	rangesUC := analyticsUsecase.NewRangesUseCase()
	compareUC.SetMaxRangeDays(cfg.MaxRangeDays)
	topUC.SetMaxRangeDays(cfg.MaxRangeDays)
	scorecardUC.SetMaxRangeDays(cfg.MaxRangeDays)

	// HTTP (Fiber) app + handlers
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(analyticsHttp.RequestLogger(log))

	analyticsHttp.NewAnalyticsHandler(compareUC, topUC, scorecardUC, rangesUC, catalog, log).Register(app)
	app.Get("/healthz", analyticsHttp.NewHealthHandler(rowRepository).Health)
	app.Get("/debug/metrics", adaptor.HTTPHandler(telemetry.Handler()))

	// Swagger
	app.Get("/docs/*", fiberSwagger.WrapHandler)

	// Graceful shutdown
	go func() {
		if err := app.Listen(cfg.ListenAddress); err != nil {
			log.WithError(err).Error("fiber stopped")
		}
	}()

	log.WithField("addr", cfg.ListenAddress).
		WithField("datasets", len(catalog.Datasets())).
		Info("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	log.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.WithError(err).Error("fiber shutdown error")
	}

	log.Info("server exiting")
	return nil
}
