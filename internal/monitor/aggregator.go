package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/aman-churiwal/influx-monitor/internal/config"
	"github.com/aman-churiwal/influx-monitor/internal/probe"
)

// Aggregator composes the four independent probes into a single report. It
// applies no cross-probe logic beyond composition.
type Aggregator struct {
	database probe.Probe
	backup   probe.Probe
	storage  probe.Probe
	system   probe.Probe
}

func New(database, backup, storage, system probe.Probe) *Aggregator {
	return &Aggregator{
		database: database,
		backup:   backup,
		storage:  storage,
		system:   system,
	}
}

// FromConfig builds an aggregator wired to the real probes.
func FromConfig(cfg *config.Config) *Aggregator {
	return New(
		probe.NewDatabaseProbe(cfg.InfluxDB.URL),
		probe.NewBackupProbe(cfg.Monitoring.BackupProcess),
		probe.NewStorageProbe(cfg.Monitoring.BackupDir),
		probe.NewSystemProbe(),
	)
}

// Run invokes all probes concurrently and waits for each to finish. One
// probe failing or panicking never prevents the others from completing or
// from appearing in the report; Run always returns a fully-populated report.
func (a *Aggregator) Run(ctx context.Context) Report {
	report := Report{Timestamp: epochSeconds(time.Now())}

	var wg sync.WaitGroup
	check := func(p probe.Probe, dst *probe.Result) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			*dst = safeCheck(ctx, p)
		}()
	}

	check(a.database, &report.Database)
	check(a.backup, &report.BackupService)
	check(a.storage, &report.Storage)
	check(a.system, &report.System)
	wg.Wait()

	return report
}

// safeCheck converts a panicking probe into an error result so a single
// misbehaving check cannot take down an aggregation run.
func safeCheck(ctx context.Context, p probe.Probe) (result probe.Result) {
	defer func() {
		if r := recover(); r != nil {
			result = probe.Errorf("%s probe panicked: %v", p.Name(), r)
		}
	}()
	return p.Check(ctx)
}
