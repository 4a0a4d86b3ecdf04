package probe

import (
	"context"
	"strings"

	ps "github.com/mitchellh/go-ps"
)

// ProcessLister abstracts the host process table so tests can substitute a
// fake without spawning real processes.
type ProcessLister interface {
	Processes() ([]ps.Process, error)
}

type hostProcessLister struct{}

func (hostProcessLister) Processes() ([]ps.Process, error) {
	return ps.Processes()
}

// BackupProbe reports whether the backup process is present in the host's
// process table. Liveness is boolean: running or stopped.
type BackupProbe struct {
	pattern string
	lister  ProcessLister
}

func NewBackupProbe(pattern string) *BackupProbe {
	return NewBackupProbeWithLister(pattern, hostProcessLister{})
}

func NewBackupProbeWithLister(pattern string, lister ProcessLister) *BackupProbe {
	return &BackupProbe{pattern: pattern, lister: lister}
}

func (p *BackupProbe) Name() string {
	return "backup_service"
}

func (p *BackupProbe) Check(ctx context.Context) Result {
	procs, err := p.lister.Processes()
	if err != nil {
		return Errorf("process table scan failed: %v", err)
	}

	for _, proc := range procs {
		if strings.Contains(proc.Executable(), p.pattern) {
			return Healthy(map[string]any{"state": "running"})
		}
	}

	return Unhealthy(map[string]any{"state": "stopped"})
}
