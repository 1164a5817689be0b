package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"qrcut/docs"
	"qrcut/internal/config"
	"qrcut/internal/database"
	"qrcut/internal/database/migration"
	handlers "qrcut/internal/http/handler"
	"qrcut/internal/http/middleware"
	"qrcut/internal/jobs"
	"qrcut/internal/logger"
	"qrcut/internal/metrics"
	"qrcut/internal/otel"
	"qrcut/internal/qrmask"
	"qrcut/internal/repository/postgres"
	"qrcut/internal/service"
	"qrcut/internal/storage"
)

// @title QR Cut API
// @version 1.0.0
// @description Detects and masks QR codes in uploaded images.
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	log := logger.New(os.Stdout, cfg.IsProduction(), cfg.Location())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log, "qrcut", cfg.Version)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize tracing")
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Error().Err(err).Msg("tracing shutdown failed")
		}
	}()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	store, err := newStorage(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.Storage.Backend).Msg("failed to initialize storage")
	}

	// Sweep stale artifacts before serving, then optionally on a schedule.
	cleanup := jobs.NewCleanup(store, cfg.Storage.Retention(), log)
	cleanup.Run(ctx)
	scheduler := jobs.NewScheduler(cleanup, cfg.Storage.CleanupSchedule, log)
	if err := scheduler.Start(); err != nil {
		log.Fatal().Err(err).Str("schedule", cfg.Storage.CleanupSchedule).Msg("invalid cleanup schedule")
	}
	defer scheduler.Stop(5 * time.Second)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	procMetrics, err := metrics.NewProcessing(reg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to register metrics")
	}
	httpMetrics, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to register http metrics")
	}

	logRepo := postgres.NewProcessLogPostgres(db)
	svc := service.NewProcessingService(qrmask.NewDefaultProcessor(), store, logRepo, log, procMetrics)

	app := fiber.New(fiber.Config{
		AppName:               cfg.ProjectName,
		BodyLimit:             cfg.MaxUploadMB * 1024 * 1024,
		ErrorHandler:          handlers.ErrorHandler(),
		DisableStartupMessage: cfg.IsProduction(),
	})

	app.Use(recover.New())
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware())
	app.Use(middleware.Logger(log))
	app.Use(httpMetrics.Handler())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  strings.Join(cfg.AllowedOrigins, ","),
		AllowHeaders:  "*",
		ExposeHeaders: strings.Join([]string{handlers.MetadataHeader, fiber.HeaderContentDisposition, middleware.RequestIDHeader}, ","),
	}))

	handlers.RegisterRoutes(app, db, svc)

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// Swagger UI with dynamic host and scheme
	docs.SwaggerInfo.Title = cfg.ProjectName
	docs.SwaggerInfo.Version = cfg.Version
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	serve(ctx, app, ":"+cfg.Port, log)
}

func newStorage(cfg *config.AppConfig) (storage.Storage, error) {
	switch cfg.Storage.Backend {
	case config.StorageLocal:
		return storage.NewLocal(cfg.Storage.Root)
	case config.StorageMinIO:
		return storage.NewMinIO(cfg.MinIO)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// serve blocks until the listener fails or ctx is cancelled, then drains
// in-flight requests.
func serve(ctx context.Context, app *fiber.App, addr string, log zerolog.Logger) {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("http server listening")
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("failed to start server")
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error().Err(err).Msg("graceful shutdown failed")
		}
	}
}
