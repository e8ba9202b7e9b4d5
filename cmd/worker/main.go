package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/carpetdist/carpet-erp/internal/app"
	"github.com/carpetdist/carpet-erp/internal/dashboard"
	jobmetrics "github.com/carpetdist/carpet-erp/internal/jobs"
	"github.com/carpetdist/carpet-erp/internal/masterdata/products"
	"github.com/carpetdist/carpet-erp/internal/observability"
	"github.com/carpetdist/carpet-erp/internal/platform/cache"
	"github.com/carpetdist/carpet-erp/internal/platform/db"
	"github.com/carpetdist/carpet-erp/internal/shared"
	"github.com/carpetdist/carpet-erp/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	metrics := observability.NewMetrics()
	jobMetrics := jobmetrics.NewMetrics(metrics.Registerer())

	dashboardService := dashboard.NewService(
		dashboard.NewRepository(pool),
		dashboard.NewCache(redisClient, cfg.DashboardCacheTTL),
	)
	stockJob := jobs.NewStockJob(products.NewCriticalReader(pool), logger, jobMetrics)
	maintenance := &jobs.MaintenanceJob{
		Keys:    shared.NewIdempotencyStore(pool),
		Warmer:  dashboardService,
		Logger:  logger,
		Metrics: jobMetrics,
	}

	cleanupTask, err := jobs.NewIdempotencyCleanupTask(cfg.IdempotencyRetention)
	if err != nil {
		logger.Error("build cleanup task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts:   asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:      logger,
		Concurrency: cfg.WorkerConcurrency,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskLowStockAlert, Handler: stockJob.HandleLowStockAlert},
			{Type: jobs.TaskCriticalStockScan, Handler: stockJob.HandleCriticalScan},
			{Type: jobs.TaskIdempotencyCleanup, Handler: maintenance.HandleIdempotencyCleanup},
			{Type: jobs.TaskDashboardWarmup, Handler: maintenance.HandleDashboardWarmup},
		},
		Cron: []jobs.CronRegistration{
			{Spec: cfg.CriticalStockScanCron, Task: jobs.NewCriticalStockScanTask(), Options: []asynq.Option{asynq.MaxRetry(3)}},
			{Spec: "30 2 * * *", Task: cleanupTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
			{Spec: "*/15 * * * *", Task: jobs.NewDashboardWarmupTask(), Options: []asynq.Option{asynq.MaxRetry(1)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	metricsServer := &http.Server{
		Addr:              cfg.WorkerMetricsAddr,
		Handler:           metrics.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("serving worker metrics", slog.String("addr", cfg.WorkerMetricsAddr))
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Warn("worker metrics server", slog.Any("error", err))
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}()

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
