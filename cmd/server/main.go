package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/routes"
	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/storage"
	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/tracing"
)

const serviceName = "bhasbi-api"

func main() {
	cfg := config.Load()
	logging.Setup(cfg.AppEnv)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Tracing
	shutdownTracer, err := tracing.Init(ctx, serviceName, cfg.AppEnv, cfg.OTLPEndpoint)
	if err != nil {
		slog.Error("tracing init failed", "error", err)
		os.Exit(1)
	}

	// Database
	db, err := database.Connect(cfg)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(db)
	logging.Setup(cfg.AppEnv, pgLogHandler)

	// Log cleanup (30-day retention)
	logging.StartCleanup(ctx, db)

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		}
	}

	uploader, err := storage.New(ctx, cfg)
	if err != nil {
		slog.Error("upload storage init failed", "error", err)
		os.Exit(1)
	}

	// Services
	userService := services.NewUserService(db)
	authService := services.NewAuthService(userService, cfg)
	reportService := services.NewReportService(db, services.ReportWorkflow{Override: cfg.ReportStatusOverride})
	adminService := services.NewAdminService(db, reportService)
	fishService := services.NewFishService(db)
	articleService := services.NewArticleService(db)

	if cfg.ReportStatusOverride {
		slog.Warn("report status override enabled: any status transition is allowed")
	}

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	if sqlDB, err := db.DB(); err == nil {
		reg.MustRegister(collectors.NewDBStatsCollector(sqlDB, cfg.DBName))
	}

	app := routes.NewApp(cfg, reg)
	routes.Setup(app, cfg, routes.Handlers{
		Auth:    handlers.NewAuthHandler(authService, userService),
		User:    handlers.NewUserHandler(userService, uploader),
		Fish:    handlers.NewFishHandler(fishService, uploader),
		Article: handlers.NewArticleHandler(articleService, uploader),
		Report:  handlers.NewReportHandler(reportService, uploader),
		Admin:   handlers.NewAdminHandler(adminService),
		Health:  handlers.NewHealthHandler(db),
	}, userService)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	stop()
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := shutdownTracer(context.Background()); err != nil {
		slog.Error("tracer shutdown error", "error", err)
	}
	if err := database.Close(db); err != nil {
		slog.Error("database close error", "error", err)
	}

	slog.Info("server stopped")
}
