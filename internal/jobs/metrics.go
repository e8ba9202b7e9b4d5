package jobmetrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes Prometheus collectors for background jobs.
type Metrics struct {
	runs      *prometheus.CounterVec
	failures  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	critical  prometheus.Gauge
	alerts    prometheus.Counter
	keysFreed prometheus.Counter
}

var (
	defaultOnce    sync.Once
	defaultMetrics *Metrics
)

// NewMetrics registers the job metrics against the provided registerer. When the
// registerer is nil the default Prometheus registerer is used.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		defaultOnce.Do(func() {
			defaultMetrics = buildMetrics(prometheus.DefaultRegisterer)
		})
		return defaultMetrics
	}
	return buildMetrics(registerer)
}

// Tracker provides lifecycle instrumentation helpers for a single job run.
type Tracker struct {
	metrics *Metrics
	job     string
	start   time.Time
}

// Track spawns a tracker for the given job name.
func (m *Metrics) Track(job string) *Tracker {
	if m == nil {
		return &Tracker{job: job, start: time.Now()}
	}
	return &Tracker{metrics: m, job: job, start: time.Now()}
}

// End records duration and outcome, returning err untouched.
func (t *Tracker) End(err error) error {
	if t == nil || t.metrics == nil || t.job == "" {
		return err
	}
	status := "success"
	if err != nil {
		status = "failure"
		t.metrics.failures.WithLabelValues(t.job).Inc()
	}
	t.metrics.runs.WithLabelValues(t.job, status).Inc()
	t.metrics.duration.WithLabelValues(t.job).Observe(time.Since(t.start).Seconds())
	return err
}

// SetCriticalProducts records the size of the latest full critical stock scan.
func (m *Metrics) SetCriticalProducts(count int) {
	if m == nil {
		return
	}
	m.critical.Set(float64(count))
}

// AddLowStockAlerts counts products reported by low stock alerts.
func (m *Metrics) AddLowStockAlerts(count int) {
	if m == nil || count <= 0 {
		return
	}
	m.alerts.Add(float64(count))
}

// AddExpiredKeys counts idempotency keys removed by cleanup.
func (m *Metrics) AddExpiredKeys(count int64) {
	if m == nil || count <= 0 {
		return
	}
	m.keysFreed.Add(float64(count))
}

func buildMetrics(registerer prometheus.Registerer) *Metrics {
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "carpet_jobs_total",
		Help: "Total job executions partitioned by job name and status.",
	}, []string{"job", "status"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "carpet_jobs_failures_total",
		Help: "Total failures observed for background jobs.",
	}, []string{"job"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "carpet_job_duration_seconds",
		Help:    "Duration in seconds of background job executions.",
		Buckets: prometheus.DefBuckets,
	}, []string{"job"})
	critical := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "carpet_critical_stock_products",
		Help: "Products at or below their critical stock level at the last scan.",
	})
	alerts := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "carpet_low_stock_alerts_total",
		Help: "Products reported by low stock alerts.",
	})
	keysFreed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "carpet_idempotency_keys_expired_total",
		Help: "Idempotency keys removed by the cleanup job.",
	})
	registerer.MustRegister(runs, failures, duration, critical, alerts, keysFreed)
	return &Metrics{runs: runs, failures: failures, duration: duration, critical: critical, alerts: alerts, keysFreed: keysFreed}
}
