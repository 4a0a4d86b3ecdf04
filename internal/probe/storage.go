package probe

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/shirou/gopsutil/v4/disk"
)

// StorageProbe reports free space and usage of the backup volume.
type StorageProbe struct {
	path  string
	usage func(ctx context.Context, path string) (*disk.UsageStat, error)
}

func NewStorageProbe(path string) *StorageProbe {
	return &StorageProbe{path: path, usage: disk.UsageWithContext}
}

func (p *StorageProbe) Name() string {
	return "storage"
}

// Check stats the backup directory's filesystem. It reports healthy with the
// derived usage figures regardless of how full the volume is; the alert
// threshold comparison lives in the reporter's escalation rules.
func (p *StorageProbe) Check(ctx context.Context) Result {
	if _, err := os.Stat(p.path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Error("backup directory not found")
		}
		return Error(err.Error())
	}

	usage, err := p.usage(ctx, p.path)
	if err != nil {
		return Error(err.Error())
	}
	if usage.Total == 0 {
		return Error("filesystem reports zero capacity")
	}

	usedPercentage := float64(usage.Total-usage.Free) / float64(usage.Total) * 100

	return Healthy(map[string]any{
		"free_space_gb":   round2(float64(usage.Free) / (1 << 30)),
		"used_percentage": round2(usedPercentage),
	})
}
