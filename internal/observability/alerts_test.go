package observability

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type alertRule struct {
	Alert       string            `yaml:"alert"`
	Expr        string            `yaml:"expr"`
	For         string            `yaml:"for"`
	Labels      map[string]string `yaml:"labels"`
	Annotations map[string]string `yaml:"annotations"`
}

type alertFile struct {
	Groups []struct {
		Name  string      `yaml:"name"`
		Rules []alertRule `yaml:"rules"`
	} `yaml:"groups"`
}

// exported by this package and by internal/jobs
var knownSeries = map[string]bool{
	"carpet_http_requests_total":           true,
	"carpet_http_request_duration_seconds": true,
	"carpet_workflow_commits_total":        true,
	"carpet_jobs_total":                    true,
	"carpet_jobs_failures_total":           true,
	"carpet_job_duration_seconds":          true,
	"carpet_critical_stock_products":       true,
	"carpet_low_stock_alerts_total":        true,
}

var seriesPattern = regexp.MustCompile(`carpet_[a-z_]+`)

func loadCarpetRules(t *testing.T) []alertRule {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "..", "deploy", "prometheus", "alerts", "carpet.yml"))
	require.NoError(t, err)

	var file alertFile
	require.NoError(t, yaml.Unmarshal(data, &file))
	for _, g := range file.Groups {
		if g.Name == "carpet" {
			return g.Rules
		}
	}
	t.Fatal("carpet alert group missing")
	return nil
}

func TestStockAlertRules(t *testing.T) {
	rules := loadCarpetRules(t)

	expected := map[string]struct {
		severity string
		runbook  string
	}{
		"HighErrorRate":     {severity: "critical", runbook: "docs/runbook.md#high-error-rate"},
		"CriticalStockHigh": {severity: "warning", runbook: "docs/runbook.md#critical-stock"},
		"StockJobsFailing":  {severity: "warning", runbook: "docs/runbook.md#stock-jobs"},
	}
	require.Len(t, rules, len(expected))

	for _, rule := range rules {
		want, ok := expected[rule.Alert]
		require.True(t, ok, "unexpected rule %q", rule.Alert)
		assert.Equal(t, want.severity, rule.Labels["severity"], rule.Alert)
		assert.Equal(t, want.runbook, rule.Annotations["runbook"], rule.Alert)
		assert.NotEmpty(t, rule.Annotations["summary"], rule.Alert)
		assert.NotEmpty(t, rule.Annotations["description"], rule.Alert)
		assert.NotEmpty(t, rule.For, rule.Alert)
	}
}

func TestAlertExpressionsUseExportedSeries(t *testing.T) {
	for _, rule := range loadCarpetRules(t) {
		series := seriesPattern.FindAllString(rule.Expr, -1)
		require.NotEmpty(t, series, "rule %s must query a carpet series", rule.Alert)
		for _, name := range series {
			assert.True(t, knownSeries[name], "rule %s queries unknown series %s", rule.Alert, name)
		}
	}
}
