package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/Ofr3d/FADA/internal/application/dto"
	"github.com/Ofr3d/FADA/internal/application/port"
	"github.com/Ofr3d/FADA/pkg/logger"
)

func TestGetStatusUseCase_CacheMissBuildsAndCaches(t *testing.T) {
	monitor := newTestMonitor()
	cache := newMockCache()
	uc := NewGetStatusUseCase(monitor, nil, cache, logger.New("error"))

	if _, err := monitor.Start("benchy"); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	status, err := uc.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !status.Monitoring {
		t.Error("Monitoring = false, want true")
	}
	if status.Session == nil || status.Session.Name != "benchy" {
		t.Error("status is not bound to the active session")
	}
	if cache.setCalls != 1 {
		t.Errorf("cache Set calls = %d, want 1", cache.setCalls)
	}
}

func TestGetStatusUseCase_CacheHitSkipsMonitor(t *testing.T) {
	cache := newMockCache()
	if err := cache.Set(context.Background(), "fada:status", &dto.StatusDTO{Monitoring: true}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	host := &mockHostCollector{err: errors.New("must not be called")}
	uc := NewGetStatusUseCase(newTestMonitor(), host, cache, logger.New("error"))

	status, err := uc.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !status.Monitoring {
		t.Error("Monitoring = false, want cached snapshot")
	}
	// Свежий снимок не собирался и не перезаписывал кэш
	if cache.setCalls != 1 {
		t.Errorf("cache Set calls = %d, want only the priming call", cache.setCalls)
	}
}

func TestGetStatusUseCase_IncludesHostHealth(t *testing.T) {
	host := &mockHostCollector{health: port.HostHealth{CPUPercent: 42.5, MemoryPercent: 63}}
	uc := NewGetStatusUseCase(newTestMonitor(), host, nil, logger.New("error"))

	status, err := uc.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if status.Host == nil {
		t.Fatal("Host = nil, want collected health")
	}
	if status.Host.CPUPercent != 42.5 || status.Host.MemoryPercent != 63 {
		t.Errorf("Host = %+v, want CPU 42.5 and memory 63", status.Host)
	}
}

func TestGetStatusUseCase_HostFailureLeavesHealthEmpty(t *testing.T) {
	host := &mockHostCollector{err: errors.New("procfs unavailable")}
	uc := NewGetStatusUseCase(newTestMonitor(), host, nil, logger.New("error"))

	status, err := uc.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute() error = %v, want status despite host failure", err)
	}
	if status.Host != nil {
		t.Errorf("Host = %+v, want nil when collection fails", status.Host)
	}
}

func TestGetStatusUseCase_Invalidate(t *testing.T) {
	cache := newMockCache()
	if err := cache.Set(context.Background(), "fada:status", &dto.StatusDTO{Monitoring: true}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	uc := NewGetStatusUseCase(newTestMonitor(), nil, cache, logger.New("error"))
	uc.Invalidate(context.Background())

	var cached dto.StatusDTO
	if err := cache.Get(context.Background(), "fada:status", &cached); err == nil {
		t.Error("cached status survived Invalidate()")
	}
}
