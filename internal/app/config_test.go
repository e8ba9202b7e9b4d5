package app

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	unsetEnv(t, "APP_ENV", "APP_ADDR", "PURCHASE_COST_RATIO", "DASHBOARD_CACHE_TTL", "IDEMPOTENCY_RETENTION")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, ":8080", cfg.AppAddr)
	assert.True(t, cfg.PurchaseCostRatio.Equal(decimal.RequireFromString("0.70")))
	assert.Equal(t, 5*time.Minute, cfg.DashboardCacheTTL)
	assert.Equal(t, 72*time.Hour, cfg.IdempotencyRetention)
	assert.False(t, cfg.IsProduction())
}

func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("PURCHASE_COST_RATIO", "0.65")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "30")
	t.Setenv("CRITICAL_STOCK_SCAN_CRON", "*/30 * * * *")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "0.65", cfg.PurchaseCostRatio.String())
	assert.Equal(t, 30, cfg.RateLimitPerMinute)
	assert.Equal(t, "*/30 * * * *", cfg.CriticalStockScanCron)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	cases := map[string]map[string]string{
		"zero ratio":     {"PURCHASE_COST_RATIO": "0"},
		"ratio above 1":  {"PURCHASE_COST_RATIO": "1.5"},
		"garbage ratio":  {"PURCHASE_COST_RATIO": "abc"},
		"zero rate":      {"RATE_LIMIT_PER_MINUTE": "0"},
		"bad ttl format": {"DASHBOARD_CACHE_TTL": "soon"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			require.Error(t, err)
		})
	}
}

func TestNewLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, &Config{LogFormat: "json"}).Info("hello")
	assert.Contains(t, buf.String(), `"msg":"hello"`)
	assert.Contains(t, buf.String(), `"service":"carpet-erp"`)

	buf.Reset()
	newLogger(&buf, nil).Info("hello")
	assert.Contains(t, buf.String(), "msg=hello")
}
