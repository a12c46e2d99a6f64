package port

import "context"

// HostHealth — самочувствие хоста, на котором работает evaluator
type HostHealth struct {
	CPUPercent    float64
	MemoryPercent float64
}

// HostCollector собирает метрики хоста для включения в статус
type HostCollector interface {
	Collect(ctx context.Context) (HostHealth, error)
}
