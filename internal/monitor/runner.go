package monitor

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// faultBackoff is how long the loop pauses after a failed pass before the
// next tick is honored.
const faultBackoff = 10 * time.Second

// Source produces one aggregation report per pass.
type Source interface {
	Run(ctx context.Context) Report
}

// Sink consumes each pass's report.
type Sink interface {
	Report(Report)
}

// Runner drives periodic aggregation on a fixed interval, independent of
// the HTTP surface's lifecycle.
type Runner struct {
	source   Source
	sink     Sink
	interval time.Duration
	backoff  time.Duration
	log      *logrus.Logger
}

func NewRunner(source Source, sink Sink, interval time.Duration, log *logrus.Logger) *Runner {
	return &Runner{
		source:   source,
		sink:     sink,
		interval: interval,
		backoff:  faultBackoff,
		log:      log,
	}
}

// Run performs an immediate pass, then ticks until ctx is cancelled. A
// faulting pass is logged and followed by a fixed backoff; the loop never
// terminates on a single pass's failure.
func (r *Runner) Run(ctx context.Context) {
	r.pass(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.log.Info("shutting down monitor loop")
			return
		case <-ticker.C:
			if !r.pass(ctx) {
				select {
				case <-ctx.Done():
					r.log.Info("shutting down monitor loop")
					return
				case <-time.After(r.backoff):
				}
			}
		}
	}
}

// pass reports whether the aggregate-and-report cycle completed without a
// fault.
func (r *Runner) pass(ctx context.Context) (ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.WithField("panic", rec).Error("error in monitoring loop")
			ok = false
		}
	}()

	r.sink.Report(r.source.Run(ctx))
	return true
}
