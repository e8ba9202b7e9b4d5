package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/carpetdist/carpet-erp/internal/jobs"
	"github.com/carpetdist/carpet-erp/internal/masterdata/products"
)

var defaultJobMetrics = jobmetrics.NewMetrics(nil)

// CriticalSource lists critical products, all of them when ids is empty.
type CriticalSource interface {
	Critical(ctx context.Context, ids []int64) ([]products.Product, error)
}

// StockJob handles stock:low_alert and stock:critical_scan.
type StockJob struct {
	Source  CriticalSource
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
}

// NewStockJob wires dependencies for the stock handlers.
func NewStockJob(source CriticalSource, logger *slog.Logger, metrics *jobmetrics.Metrics) *StockJob {
	return &StockJob{Source: source, Logger: logger, Metrics: metrics}
}

// HandleLowStockAlert reports the payload products still at critical level.
// Products restocked since the alert was raised are skipped.
func (j *StockJob) HandleLowStockAlert(ctx context.Context, t *asynq.Task) (resultErr error) {
	if j == nil || j.Source == nil {
		return errors.New("stock alert: source not configured")
	}
	var payload LowStockAlertPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if len(payload.ProductIDs) == 0 {
		return nil
	}

	tracker := j.metrics().Track(TaskLowStockAlert)
	defer func() { resultErr = tracker.End(resultErr) }()

	critical, err := j.Source.Critical(ctx, payload.ProductIDs)
	if err != nil {
		j.logger(TaskLowStockAlert).Error("load critical products", slog.Any("error", err))
		return err
	}
	for _, p := range critical {
		j.logger(TaskLowStockAlert).Warn("low stock",
			slog.Int64("product_id", p.ID),
			slog.String("sku", p.SKU),
			slog.String("name", p.Name),
			slog.Int("stock", p.Stock),
			slog.Int("critical_level", p.CriticalLevel),
			slog.Time("raised_at", payload.RaisedAt))
	}
	j.metrics().AddLowStockAlerts(len(critical))
	return nil
}

// HandleCriticalScan sweeps every product and publishes the critical count.
func (j *StockJob) HandleCriticalScan(ctx context.Context, t *asynq.Task) (resultErr error) {
	if j == nil || j.Source == nil {
		return errors.New("critical scan: source not configured")
	}
	tracker := j.metrics().Track(TaskCriticalStockScan)
	defer func() { resultErr = tracker.End(resultErr) }()

	critical, err := j.Source.Critical(ctx, nil)
	if err != nil {
		j.logger(TaskCriticalStockScan).Error("scan critical products", slog.Any("error", err))
		return err
	}
	j.metrics().SetCriticalProducts(len(critical))
	if len(critical) == 0 {
		j.logger(TaskCriticalStockScan).Info("no products at critical stock")
		return nil
	}
	skus := make([]string, 0, len(critical))
	for _, p := range critical {
		skus = append(skus, p.SKU)
	}
	j.logger(TaskCriticalStockScan).Warn("products at critical stock", slog.Int("count", len(critical)), slog.Any("skus", skus))
	return nil
}

func (j *StockJob) logger(job string) *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", job))
	}
	return slog.Default().With(slog.String("job", job))
}

func (j *StockJob) metrics() *jobmetrics.Metrics {
	if j.Metrics != nil {
		return j.Metrics
	}
	return defaultJobMetrics
}
