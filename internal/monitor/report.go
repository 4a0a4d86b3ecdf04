package monitor

import (
	"time"

	"github.com/aman-churiwal/influx-monitor/internal/probe"
)

// Report is the snapshot produced by one aggregation run. It is built fresh
// on every run, never mutated afterwards, and never persisted; each report
// is superseded by the next.
type Report struct {
	Timestamp     float64      `json:"timestamp"`
	Database      probe.Result `json:"database"`
	BackupService probe.Result `json:"backup_service"`
	Storage       probe.Result `json:"storage"`
	System        probe.Result `json:"system"`
}

func epochSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}
