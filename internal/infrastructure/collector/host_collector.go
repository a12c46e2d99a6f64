package collector

import (
	"context"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/Ofr3d/FADA/internal/application/port"
)

// HostCollector собирает CPU и память хоста, на котором работает evaluator
type HostCollector struct {
	cpuInterval time.Duration
}

// NewHostCollector создает новый Host collector
func NewHostCollector() *HostCollector {
	return &HostCollector{cpuInterval: 200 * time.Millisecond}
}

// Collect собирает метрики хоста
func (c *HostCollector) Collect(ctx context.Context) (port.HostHealth, error) {
	percentages, err := cpu.PercentWithContext(ctx, c.cpuInterval, false)
	if err != nil {
		return port.HostHealth{}, err
	}

	vmStat, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return port.HostHealth{}, err
	}

	health := port.HostHealth{
		MemoryPercent: vmStat.UsedPercent,
	}
	if len(percentages) > 0 {
		health.CPUPercent = percentages[0]
	}

	return health, nil
}
