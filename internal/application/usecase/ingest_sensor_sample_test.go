package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Ofr3d/FADA/internal/application/port"
	"github.com/Ofr3d/FADA/internal/domain/valueobject"
	"github.com/Ofr3d/FADA/pkg/logger"
)

func TestIngestSensorSampleUseCase_RejectsUnknownChannel(t *testing.T) {
	uc := NewIngestSensorSampleUseCase(newTestMonitor(), nil, nil, nil, nil, logger.New("error"))

	_, err := uc.Execute(context.Background(), IngestSensorSampleCommand{
		Channel: "pressure",
		Value:   10,
	})
	if !errors.Is(err, valueobject.ErrUnknownChannel) {
		t.Errorf("Execute() error = %v, want %v", err, valueobject.ErrUnknownChannel)
	}
}

func TestIngestSensorSampleUseCase_IdleDropsSample(t *testing.T) {
	notifier := &mockNotifier{}
	publisher := &mockEventPublisher{}
	uc := NewIngestSensorSampleUseCase(newTestMonitor(), notifier, publisher, nil, nil, logger.New("error"))

	result, err := uc.Execute(context.Background(), IngestSensorSampleCommand{
		Channel: "temperature",
		Value:   260,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if result.Recorded {
		t.Error("Recorded = true, want false while idle")
	}
	if len(notifier.alerts) != 0 || len(publisher.events) != 0 {
		t.Error("idle sample fanned out alerts")
	}
}

func TestIngestSensorSampleUseCase_FansOutAlerts(t *testing.T) {
	monitor := newTestMonitor()
	notifier := &mockNotifier{}
	publisher := &mockEventPublisher{}
	logPublisher := &mockLogPublisher{}
	metrics := &mockMetricsPublisher{}
	uc := NewIngestSensorSampleUseCase(monitor, notifier, publisher, metrics, logPublisher, logger.New("error"))

	if _, err := monitor.Start("test"); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	result, err := uc.Execute(context.Background(), IngestSensorSampleCommand{
		Channel:   "temperature",
		Value:     260,
		Timestamp: time.Now(),
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !result.Recorded {
		t.Fatal("Recorded = false, want true")
	}
	if len(result.Alerts) != 1 || result.Alerts[0].Type != "high_temperature" {
		t.Fatalf("alerts = %v, want single high_temperature", result.Alerts)
	}

	if len(notifier.alerts) != 1 {
		t.Errorf("broadcast alerts = %d, want 1", len(notifier.alerts))
	}
	subjects := publisher.subjects()
	if len(subjects) != 1 || subjects[0] != "fada.alerts" {
		t.Errorf("published subjects = %v, want [fada.alerts]", subjects)
	}
	if len(logPublisher.entries) != 1 {
		t.Fatalf("log entries = %d, want 1", len(logPublisher.entries))
	}
	if logPublisher.entries[0].Level != port.LogLevelWarn {
		t.Errorf("log level = %v, want %v for warning severity", logPublisher.entries[0].Level, port.LogLevelWarn)
	}
	if metrics.alertCounts["warning"] != 1 {
		t.Errorf("alert count metric = %d, want 1 warning", metrics.alertCounts["warning"])
	}
}

func TestIngestSensorSampleUseCase_CriticalAlertLogsAsError(t *testing.T) {
	monitor := newTestMonitor()
	logPublisher := &mockLogPublisher{}
	uc := NewIngestSensorSampleUseCase(monitor, nil, nil, nil, logPublisher, logger.New("error"))

	if _, err := monitor.Start("test"); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	// Поток ниже минимума дает alert с severity error
	if _, err := uc.Execute(context.Background(), IngestSensorSampleCommand{
		Channel: "material_flow",
		Value:   50,
	}); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if len(logPublisher.entries) != 1 {
		t.Fatalf("log entries = %d, want 1", len(logPublisher.entries))
	}
	if logPublisher.entries[0].Level != port.LogLevelError {
		t.Errorf("log level = %v, want %v for critical severity", logPublisher.entries[0].Level, port.LogLevelError)
	}
}

func TestLogLevelForSeverity(t *testing.T) {
	tests := []struct {
		severity valueobject.Severity
		want     port.LogLevel
	}{
		{valueobject.SeverityWarning, port.LogLevelWarn},
		{valueobject.SeverityMedium, port.LogLevelWarn},
		{valueobject.SeverityError, port.LogLevelError},
		{valueobject.SeverityHigh, port.LogLevelError},
	}

	for _, tt := range tests {
		if got := logLevelForSeverity(tt.severity); got != tt.want {
			t.Errorf("logLevelForSeverity(%v) = %v, want %v", tt.severity, got, tt.want)
		}
	}
}

func TestIngestSensorSampleUseCase_PublisherFailureDoesNotBlock(t *testing.T) {
	monitor := newTestMonitor()
	publisher := &mockEventPublisher{err: errors.New("broker down")}
	logPublisher := &mockLogPublisher{err: errors.New("logs unreachable")}
	uc := NewIngestSensorSampleUseCase(monitor, nil, publisher, nil, logPublisher, logger.New("error"))

	if _, err := monitor.Start("test"); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	result, err := uc.Execute(context.Background(), IngestSensorSampleCommand{
		Channel: "vibration",
		Value:   90,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v, want sample accepted despite fan-out failures", err)
	}
	if !result.Recorded {
		t.Error("Recorded = false, want true")
	}
}
