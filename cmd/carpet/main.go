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
	"github.com/carpetdist/carpet-erp/internal/audit"
	audithttp "github.com/carpetdist/carpet-erp/internal/audit/http"
	"github.com/carpetdist/carpet-erp/internal/dashboard"
	"github.com/carpetdist/carpet-erp/internal/finance"
	"github.com/carpetdist/carpet-erp/internal/masterdata/products"
	"github.com/carpetdist/carpet-erp/internal/masterdata/suppliers"
	"github.com/carpetdist/carpet-erp/internal/observability"
	"github.com/carpetdist/carpet-erp/internal/platform/cache"
	"github.com/carpetdist/carpet-erp/internal/platform/db"
	"github.com/carpetdist/carpet-erp/internal/procurement"
	"github.com/carpetdist/carpet-erp/internal/sales/customers"
	"github.com/carpetdist/carpet-erp/internal/sales/orders"
	"github.com/carpetdist/carpet-erp/internal/shared"
	"github.com/carpetdist/carpet-erp/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
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
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		logger.Error("migrate schema", slog.Any("error", err))
		os.Exit(1)
	}

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
	dashboardCache := dashboard.NewCache(redisClient, cfg.DashboardCacheTTL)
	go dashboardCache.ListenForInvalidation(ctx)

	hooks := shared.CommitHooks{
		Audit:   shared.NewAuditLogger(pool),
		Cache:   dashboardCache,
		Metrics: metrics,
		Logger:  logger,
	}
	idempotencyStore := shared.NewIdempotencyStore(pool)

	redisOpts := asynq.RedisClientOpt{Addr: cfg.RedisAddr}
	jobClient := jobs.NewClient(redisOpts)
	defer func() {
		if err := jobClient.Close(); err != nil {
			logger.Warn("asynq client close", slog.Any("error", err))
		}
	}()
	inspector := asynq.NewInspector(redisOpts)
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()

	productService := products.NewService(products.NewRepository(pool), hooks)
	customerService := customers.NewService(customers.NewRepository(pool), hooks)
	supplierService := suppliers.NewService(suppliers.NewRepository(pool), hooks)
	orderService := orders.NewService(orders.NewRepository(pool), hooks, idempotencyStore, jobClient, logger)
	purchaseService := procurement.NewService(
		procurement.NewRepository(pool),
		procurement.RatioCostEstimator(cfg.PurchaseCostRatio),
		hooks,
		jobClient,
		logger,
	)
	financeService := finance.NewService(finance.NewRepository(pool), hooks, idempotencyStore, logger)
	dashboardService := dashboard.NewService(dashboard.NewRepository(pool), dashboardCache)
	auditService := audit.NewService(audit.NewRepository(pool))

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		Metrics:          metrics,
		DB:               pool,
		ProductHandler:   products.NewHandler(logger, productService),
		CustomerHandler:  customers.NewHandler(logger, customerService),
		SupplierHandler:  suppliers.NewHandler(logger, supplierService),
		SalesHandler:     orders.NewHandler(logger, orderService),
		PurchaseHandler:  procurement.NewHandler(logger, purchaseService),
		FinanceHandler:   finance.NewHandler(logger, financeService),
		DashboardHandler: dashboard.NewHandler(logger, dashboardService),
		AuditHandler:     audithttp.NewHandler(logger, auditService),
		JobHandler:       jobs.NewHandler(inspector, logger),
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
