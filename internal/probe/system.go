package probe

import (
	"context"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
)

// cpuSampleWindow is how long the CPU sampler blocks to measure utilization.
const cpuSampleWindow = 1 * time.Second

// SystemProbe samples host CPU, memory and root filesystem utilization.
// Host metrics are an optional facility: on platforms the sampler does not
// support, the probe degrades to an unavailable result instead of an error.
type SystemProbe struct {
	cpuPercent    func(ctx context.Context, interval time.Duration, percpu bool) ([]float64, error)
	virtualMemory func(ctx context.Context) (*mem.VirtualMemoryStat, error)
	diskUsage     func(ctx context.Context, path string) (*disk.UsageStat, error)
}

func NewSystemProbe() *SystemProbe {
	return &SystemProbe{
		cpuPercent:    cpu.PercentWithContext,
		virtualMemory: mem.VirtualMemoryWithContext,
		diskUsage:     disk.UsageWithContext,
	}
}

func (p *SystemProbe) Name() string {
	return "system"
}

func (p *SystemProbe) Check(ctx context.Context) Result {
	cpuPercents, err := p.cpuPercent(ctx, cpuSampleWindow, false)
	if err != nil {
		return sampleFault(err)
	}
	var cpuPercent float64
	if len(cpuPercents) > 0 {
		cpuPercent = cpuPercents[0]
	}

	vm, err := p.virtualMemory(ctx)
	if err != nil {
		return sampleFault(err)
	}

	rootfs, err := p.diskUsage(ctx, "/")
	if err != nil {
		return sampleFault(err)
	}

	return Healthy(map[string]any{
		"cpu_percent":    round2(cpuPercent),
		"memory_percent": round2(vm.UsedPercent),
		"disk_percent":   round2(rootfs.UsedPercent),
	})
}

// gopsutil keeps its not-implemented sentinel in an internal package, so
// unsupported platforms are recognized by the error message.
func sampleFault(err error) Result {
	if strings.Contains(err.Error(), "not implemented") {
		return Unavailable("host metrics not supported on this platform")
	}
	return Error(err.Error())
}
