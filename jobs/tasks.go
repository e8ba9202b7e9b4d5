package jobs

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskLowStockAlert reports products a committed write pushed to their critical level.
	TaskLowStockAlert = "stock:low_alert"
	// TaskCriticalStockScan sweeps every product for critical stock.
	TaskCriticalStockScan = "stock:critical_scan"
	// TaskIdempotencyCleanup drops expired idempotency keys.
	TaskIdempotencyCleanup = "idempotency:cleanup"
	// TaskDashboardWarmup rebuilds the cached dashboard overview.
	TaskDashboardWarmup = "dashboard:warmup"
)

// LowStockAlertPayload names the products to report.
type LowStockAlertPayload struct {
	ProductIDs []int64   `json:"product_ids"`
	RaisedAt   time.Time `json:"raised_at"`
}

// NewLowStockAlertTask builds a stock:low_alert task.
func NewLowStockAlertTask(productIDs []int64, at time.Time) (*asynq.Task, error) {
	body, err := json.Marshal(LowStockAlertPayload{ProductIDs: productIDs, RaisedAt: at})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLowStockAlert, body, asynq.Queue(QueueDefault), asynq.MaxRetry(5)), nil
}

// CleanupPayload configures the retention of the idempotency cleanup.
type CleanupPayload struct {
	RetentionHours int `json:"retention_hours"`
}

// NewIdempotencyCleanupTask builds an idempotency:cleanup task.
func NewIdempotencyCleanupTask(retention time.Duration) (*asynq.Task, error) {
	body, err := json.Marshal(CleanupPayload{RetentionHours: int(retention / time.Hour)})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskIdempotencyCleanup, body, asynq.Queue(QueueDefault)), nil
}

// NewCriticalStockScanTask builds a stock:critical_scan task.
func NewCriticalStockScanTask() *asynq.Task {
	return asynq.NewTask(TaskCriticalStockScan, nil, asynq.Queue(QueueDefault))
}

// NewDashboardWarmupTask builds a dashboard:warmup task.
func NewDashboardWarmupTask() *asynq.Task {
	return asynq.NewTask(TaskDashboardWarmup, nil, asynq.Queue(QueueDefault))
}
