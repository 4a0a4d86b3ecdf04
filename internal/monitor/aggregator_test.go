package monitor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aman-churiwal/influx-monitor/internal/probe"
)

type stubProbe struct {
	name   string
	result probe.Result
}

func (s stubProbe) Name() string                      { return s.name }
func (s stubProbe) Check(ctx context.Context) probe.Result { return s.result }

type panicProbe struct {
	name string
}

func (p panicProbe) Name() string { return p.name }
func (p panicProbe) Check(ctx context.Context) probe.Result {
	panic("nil map write")
}

func healthyAggregator() *Aggregator {
	return New(
		stubProbe{name: "database", result: probe.Healthy(map[string]any{"response_time": 0.01})},
		stubProbe{name: "backup_service", result: probe.Healthy(map[string]any{"state": "running"})},
		stubProbe{name: "storage", result: probe.Healthy(map[string]any{"used_percentage": 40.0})},
		stubProbe{name: "system", result: probe.Unavailable("no facility")},
	)
}

func TestAggregatorRunPopulatesAllFields(t *testing.T) {
	report := healthyAggregator().Run(context.Background())

	assert.Greater(t, report.Timestamp, 0.0)
	assert.Equal(t, probe.StatusHealthy, report.Database.Status)
	assert.Equal(t, probe.StatusHealthy, report.BackupService.Status)
	assert.Equal(t, probe.StatusHealthy, report.Storage.Status)
	assert.Equal(t, probe.StatusUnavailable, report.System.Status)
}

func TestAggregatorSurvivesFailingProbes(t *testing.T) {
	agg := New(
		stubProbe{name: "database", result: probe.Error("connection refused")},
		panicProbe{name: "backup_service"},
		stubProbe{name: "storage", result: probe.Error("backup directory not found")},
		panicProbe{name: "system"},
	)

	report := agg.Run(context.Background())

	assert.Equal(t, probe.StatusError, report.Database.Status)
	require.Equal(t, probe.StatusError, report.BackupService.Status)
	assert.Contains(t, report.BackupService.Message, "panicked")
	assert.Equal(t, probe.StatusError, report.Storage.Status)
	assert.Equal(t, probe.StatusError, report.System.Status)
}

type freshProbe struct {
	name string
}

func (f freshProbe) Name() string { return f.name }
func (f freshProbe) Check(ctx context.Context) probe.Result {
	return probe.Healthy(map[string]any{"value": 1.0})
}

func TestAggregatorReportsAreIndependent(t *testing.T) {
	agg := New(
		freshProbe{name: "database"},
		freshProbe{name: "backup_service"},
		freshProbe{name: "storage"},
		freshProbe{name: "system"},
	)

	first := agg.Run(context.Background())
	second := agg.Run(context.Background())

	assert.GreaterOrEqual(t, second.Timestamp, first.Timestamp)

	// Mutating one report's details must not leak into the other.
	first.Database.Details["value"] = 99.0
	assert.Equal(t, 1.0, second.Database.Details["value"])
}
