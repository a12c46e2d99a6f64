package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/Ofr3d/FADA/internal/domain/service"
	"github.com/Ofr3d/FADA/pkg/logger"
)

func TestStartMonitoringUseCase_Execute(t *testing.T) {
	monitor := newTestMonitor()
	publisher := &mockEventPublisher{}
	uc := NewStartMonitoringUseCase(monitor, nil, publisher, nil, logger.New("error"))

	session, err := uc.Execute(context.Background(), StartMonitoringCommand{Name: "benchy"})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if session.Name != "benchy" {
		t.Errorf("session name = %q, want %q", session.Name, "benchy")
	}
	if session.ID == "" {
		t.Error("session ID is empty")
	}

	subjects := publisher.subjects()
	if len(subjects) != 1 || subjects[0] != "fada.sessions" {
		t.Errorf("published subjects = %v, want [fada.sessions]", subjects)
	}
}

func TestStartMonitoringUseCase_RejectsSecondSession(t *testing.T) {
	monitor := newTestMonitor()
	uc := NewStartMonitoringUseCase(monitor, nil, nil, nil, logger.New("error"))

	if _, err := uc.Execute(context.Background(), StartMonitoringCommand{Name: "first"}); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	_, err := uc.Execute(context.Background(), StartMonitoringCommand{Name: "second"})
	if !errors.Is(err, service.ErrSessionActive) {
		t.Errorf("Execute() error = %v, want %v", err, service.ErrSessionActive)
	}
}

func TestStartMonitoringUseCase_PublisherFailureDoesNotBlock(t *testing.T) {
	monitor := newTestMonitor()
	publisher := &mockEventPublisher{err: errors.New("broker down")}
	uc := NewStartMonitoringUseCase(monitor, nil, publisher, nil, logger.New("error"))

	if _, err := uc.Execute(context.Background(), StartMonitoringCommand{Name: "benchy"}); err != nil {
		t.Errorf("Execute() error = %v, want monitoring started despite broker failure", err)
	}
}

func TestStartMonitoringUseCase_InvalidatesStatusCache(t *testing.T) {
	monitor := newTestMonitor()
	cache := newMockCache()
	statusUC := NewGetStatusUseCase(monitor, nil, cache, logger.New("error"))
	uc := NewStartMonitoringUseCase(monitor, nil, nil, statusUC, logger.New("error"))

	// Кэш держит снимок "idle" до запуска сессии
	idle, err := statusUC.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if idle.Monitoring {
		t.Fatal("idle status Monitoring = true, want false before start")
	}

	if _, err := uc.Execute(context.Background(), StartMonitoringCommand{Name: "benchy"}); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	status, err := statusUC.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !status.Monitoring {
		t.Error("status Monitoring = false after start, want cache invalidated")
	}
}

func TestStartMonitoringUseCase_BroadcastsStatus(t *testing.T) {
	monitor := newTestMonitor()
	notifier := &mockNotifier{}
	uc := NewStartMonitoringUseCase(monitor, notifier, nil, nil, logger.New("error"))

	if _, err := uc.Execute(context.Background(), StartMonitoringCommand{Name: "benchy"}); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if len(notifier.statuses) != 1 {
		t.Fatalf("broadcast statuses = %d, want 1", len(notifier.statuses))
	}
	status := notifier.statuses[0]
	if !status.Monitoring {
		t.Error("broadcast status Monitoring = false, want true after start")
	}
	if status.Session == nil || status.Session.Name != "benchy" {
		t.Error("broadcast status is not bound to the started session")
	}
}
