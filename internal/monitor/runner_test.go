package monitor

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flakySource struct {
	calls      int
	panicUntil int
}

func (f *flakySource) Run(ctx context.Context) Report {
	f.calls++
	if f.calls <= f.panicUntil {
		panic("tick fault")
	}
	return Report{Timestamp: float64(f.calls)}
}

type countingSink struct {
	reports []Report
}

func (c *countingSink) Report(report Report) {
	c.reports = append(c.reports, report)
}

func TestRunnerSurvivesFaultingPass(t *testing.T) {
	logger, hook := test.NewNullLogger()
	source := &flakySource{panicUntil: 1}
	sink := &countingSink{}

	runner := NewRunner(source, sink, 10*time.Millisecond, logger)
	runner.backoff = time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()
	runner.Run(ctx)

	// First pass panicked; the loop kept ticking afterwards.
	assert.GreaterOrEqual(t, source.calls, 2)
	require.NotEmpty(t, sink.reports)

	faults := 0
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.ErrorLevel && e.Message == "error in monitoring loop" {
			faults++
		}
	}
	assert.Equal(t, 1, faults)
}

func TestRunnerStopsOnCancel(t *testing.T) {
	logger, hook := test.NewNullLogger()
	source := &flakySource{}
	sink := &countingSink{}

	runner := NewRunner(source, sink, time.Millisecond, logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		runner.Run(ctx)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("runner did not stop on context cancellation")
	}

	var sawShutdown bool
	for _, e := range hook.AllEntries() {
		if e.Message == "shutting down monitor loop" {
			sawShutdown = true
		}
	}
	assert.True(t, sawShutdown)
}

func TestRunnerReportsEveryPass(t *testing.T) {
	logger, _ := test.NewNullLogger()
	source := &flakySource{}
	sink := &countingSink{}

	runner := NewRunner(source, sink, 5*time.Millisecond, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 40*time.Millisecond)
	defer cancel()
	runner.Run(ctx)

	require.NotEmpty(t, sink.reports)
	assert.Len(t, sink.reports, source.calls)
}
