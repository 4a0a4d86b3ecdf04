package monitor

import (
	"encoding/json"

	"github.com/sirupsen/logrus"

	"github.com/aman-churiwal/influx-monitor/internal/probe"
)

// Reporter emits one log line per aggregation run and applies the
// escalation rules. Escalation is an observability side effect only; it
// never alters the report or retries a check.
type Reporter struct {
	log            *logrus.Logger
	alertThreshold float64
}

func NewReporter(log *logrus.Logger, alertThreshold float64) *Reporter {
	return &Reporter{log: log, alertThreshold: alertThreshold}
}

func (r *Reporter) Report(report Report) {
	if payload, err := json.Marshal(report); err != nil {
		r.log.WithError(err).Error("failed to serialize health report")
	} else {
		r.log.WithField("report", string(payload)).Info("health check completed")
	}

	if report.Database.Status != probe.StatusHealthy {
		r.log.WithFields(resultFields(report.Database)).Error("influxdb health check failed")
	}

	if report.BackupService.Status != probe.StatusHealthy {
		r.log.WithFields(resultFields(report.BackupService)).Warning("backup service not running")
	}

	if pct, ok := usedPercentage(report.Storage); ok && r.alertThreshold > 0 && pct > r.alertThreshold {
		r.log.WithFields(logrus.Fields{
			"used_percentage": pct,
			"alert_threshold": r.alertThreshold,
		}).Warning("backup volume usage above alert threshold")
	}
}

func resultFields(result probe.Result) logrus.Fields {
	fields := logrus.Fields{"status": string(result.Status)}
	for k, v := range result.Details {
		fields[k] = v
	}
	if result.Message != "" {
		fields["error"] = result.Message
	}
	return fields
}

func usedPercentage(result probe.Result) (float64, bool) {
	if result.Status != probe.StatusHealthy {
		return 0, false
	}
	pct, ok := result.Details["used_percentage"].(float64)
	return pct, ok
}
