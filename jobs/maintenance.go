package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/carpetdist/carpet-erp/internal/dashboard"
	jobmetrics "github.com/carpetdist/carpet-erp/internal/jobs"
)

// DefaultKeyRetention is how long idempotency keys are kept.
const DefaultKeyRetention = 72 * time.Hour

// KeyCleaner removes idempotency keys older than a retention window.
type KeyCleaner interface {
	Cleanup(ctx context.Context, olderThan time.Duration) (int64, error)
}

// OverviewWarmer rebuilds the cached dashboard overview.
type OverviewWarmer interface {
	Overview(ctx context.Context) (dashboard.Overview, error)
}

// MaintenanceJob handles idempotency cleanup and dashboard warmup.
type MaintenanceJob struct {
	Keys    KeyCleaner
	Warmer  OverviewWarmer
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
}

// HandleIdempotencyCleanup deletes expired idempotency keys.
func (j *MaintenanceJob) HandleIdempotencyCleanup(ctx context.Context, t *asynq.Task) (resultErr error) {
	if j == nil || j.Keys == nil {
		return errors.New("idempotency cleanup: store not configured")
	}
	retention := DefaultKeyRetention
	if len(t.Payload()) > 0 {
		var payload CleanupPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
		if payload.RetentionHours > 0 {
			retention = time.Duration(payload.RetentionHours) * time.Hour
		}
	}

	tracker := j.metrics().Track(TaskIdempotencyCleanup)
	defer func() { resultErr = tracker.End(resultErr) }()

	removed, err := j.Keys.Cleanup(ctx, retention)
	if err != nil {
		j.logger(TaskIdempotencyCleanup).Error("cleanup idempotency keys", slog.Any("error", err))
		return err
	}
	j.metrics().AddExpiredKeys(removed)
	j.logger(TaskIdempotencyCleanup).Info("idempotency keys removed", slog.Int64("count", removed), slog.Duration("retention", retention))
	return nil
}

// HandleDashboardWarmup loads the overview so the first reader after a bump
// or a new day hits the cache.
func (j *MaintenanceJob) HandleDashboardWarmup(ctx context.Context, t *asynq.Task) (resultErr error) {
	if j == nil || j.Warmer == nil {
		return errors.New("dashboard warmup: service not configured")
	}
	tracker := j.metrics().Track(TaskDashboardWarmup)
	defer func() { resultErr = tracker.End(resultErr) }()

	ctx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()
	if _, err := j.Warmer.Overview(ctx); err != nil {
		j.logger(TaskDashboardWarmup).Error("warm dashboard overview", slog.Any("error", err))
		return err
	}
	return nil
}

func (j *MaintenanceJob) logger(job string) *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", job))
	}
	return slog.Default().With(slog.String("job", job))
}

func (j *MaintenanceJob) metrics() *jobmetrics.Metrics {
	if j.Metrics != nil {
		return j.Metrics
	}
	return defaultJobMetrics
}
