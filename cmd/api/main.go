package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"

	"taskboard/docs"
	"taskboard/internal/auth"
	"taskboard/internal/config"
	"taskboard/internal/database"
	"taskboard/internal/database/migration"
	handlers "taskboard/internal/http/handler"
	"taskboard/internal/http/middleware"
	"taskboard/internal/lock"
	"taskboard/internal/logger"
	"taskboard/internal/otel"
	"taskboard/internal/repository/postgres"
	"taskboard/internal/scheduler"
	"taskboard/internal/service"
	"taskboard/internal/storage"
)

// @title Taskboard API
// @version 1.0
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	loc := cfg.Location()
	log := logger.New(cfg.LogLevel, loc)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize tracing")
	}

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(ctx, cfg.Database, log)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
		log.WithError(err).Fatal("failed to migrate database")
	}

	// Initialize reusable S3-compatible object storage client (MinIO-supported)
	objStore, err := storage.NewMinIO(ctx, cfg.MinIO, log)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize object storage")
	}

	verifier, err := auth.New(ctx, cfg.Auth)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize session verification")
	}

	locker, closeLocker, err := lock.Open(ctx, cfg.Redis.URL)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to redis")
	}
	defer closeLocker()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	if err := database.RegisterMetrics(reg, db, cfg.Database.Name); err != nil {
		log.WithError(err).Fatal("failed to register database metrics")
	}
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.WithError(err).Fatal("failed to register http metrics")
	}
	jobMetrics, err := service.NewJobMetrics(reg)
	if err != nil {
		log.WithError(err).Fatal("failed to register job metrics")
	}

	// Initialize repositories and services
	projectRepo := postgres.NewProjectPostgres(db)
	taskRepo := postgres.NewTaskPostgres(db)
	columnRepo := postgres.NewColumnPostgres(db)
	sectionRepo := postgres.NewSectionPostgres(db)
	attachmentRepo := postgres.NewAttachmentPostgres(db)
	ruleRepo := postgres.NewRecurrencePostgres(db)

	services := handlers.Services{
		Projects: service.NewProjectService(projectRepo, columnRepo, sectionRepo, attachmentRepo, objStore, log),
		Tasks: service.NewTaskService(service.TaskDeps{
			Tasks:       taskRepo,
			Projects:    projectRepo,
			Sections:    sectionRepo,
			Columns:     columnRepo,
			Attachments: attachmentRepo,
			Rules:       ruleRepo,
		}, objStore, log, loc),
		Columns:         service.NewColumnService(columnRepo, projectRepo),
		Sections:        service.NewSectionService(sectionRepo),
		Attachments:     service.NewAttachmentService(attachmentRepo, taskRepo, objStore, cfg.MinIO.PresignExpiry),
		Recurrence:      service.NewRecurrenceService(ruleRepo, projectRepo),
		Stats:           service.NewStatsService(postgres.NewStatsPostgres(db), loc),
		ViewPreferences: service.NewViewPreferenceService(postgres.NewViewPreferencePostgres(db)),
	}
	maintenance := service.NewMaintenanceService(taskRepo, ruleRepo, objStore, locker, jobMetrics, log, service.MaintenanceConfig{
		TrashRetentionDays: cfg.Cron.TrashRetentionDays,
		LockTTL:            cfg.Redis.LockTTL,
		Location:           loc,
	})

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		JSONEncoder:  sonic.ConfigStd.Marshal,
		JSONDecoder:  sonic.ConfigStd.Unmarshal,
	})

	// Register global middleware
	app.Use(otelfiber.Middleware(otelfiber.WithNext(func(c *fiber.Ctx) bool {
		return c.Path() == "/metrics" || strings.HasPrefix(c.Path(), "/health")
	})))
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger(log))
	app.Use(promMiddleware.Handler())

	handlers.RegisterRoutes(app, handlers.Deps{
		DB:          db,
		Services:    services,
		Maintenance: maintenance,
		Verifier:    verifier,
		CronSecret:  cfg.Cron.Secret,
		Gatherer:    reg,
		Log:         log,
	})

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	var sched *scheduler.Scheduler
	if cfg.Cron.SchedulerEnabled {
		sched, err = scheduler.New(cfg.Cron, maintenance, log, loc)
		if err != nil {
			log.WithError(err).Fatal("failed to configure scheduler")
		}
		sched.Start()
	}

	go func() {
		<-ctx.Done()
		shutdown(app, sched, shutdownTracing, log)
	}()

	addr := ":" + cfg.Port
	log.WithFields(logrus.Fields{"event": "server_start", "addr": addr}).Info("listening")
	if err := app.Listen(addr); err != nil {
		log.WithError(err).Fatal("failed to start server")
	}
}

// shutdown drains in-flight requests, then stops the scheduler and flushes traces.
func shutdown(app *fiber.App, sched *scheduler.Scheduler, flushTraces otel.ShutdownFunc, log logrus.FieldLogger) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	log.WithField("event", "server_shutdown").Info("shutting down")
	if err := app.ShutdownWithContext(ctx); err != nil {
		log.WithError(err).Error("http shutdown failed")
	}
	if sched != nil {
		if err := sched.Stop(ctx); err != nil {
			log.WithError(err).Error("scheduler stop failed")
		}
	}
	if err := flushTraces(ctx); err != nil {
		log.WithError(err).Error("trace flush failed")
	}
}
