package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/Ofr3d/FADA/pkg/logger"
)

func TestIngestPrinterTelemetryUseCase_IdleDropsUpdate(t *testing.T) {
	uc := NewIngestPrinterTelemetryUseCase(newTestMonitor(), nil, nil, nil, nil, logger.New("error"))

	result, err := uc.Execute(context.Background(), IngestPrinterTelemetryCommand{
		Z:          0.25,
		HotendTemp: 200,
		BedTemp:    60,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if result.Recorded {
		t.Error("Recorded = true, want false while idle")
	}
}

func TestIngestPrinterTelemetryUseCase_FansOutDetection(t *testing.T) {
	monitor := newTestMonitor()
	notifier := &mockNotifier{}
	publisher := &mockEventPublisher{}
	metrics := &mockMetricsPublisher{}
	uc := NewIngestPrinterTelemetryUseCase(monitor, notifier, publisher, metrics, nil, logger.New("error"))

	if _, err := monitor.Start("test"); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	// Пересечение границы первого слоя запускает оценку риска
	result, err := uc.Execute(context.Background(), IngestPrinterTelemetryCommand{
		Z:          0.25,
		HotendTemp: 200,
		BedTemp:    60,
		Timestamp:  time.Now(),
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !result.Recorded {
		t.Fatal("Recorded = false, want true")
	}
	if result.Layer != 1 {
		t.Errorf("Layer = %d, want 1", result.Layer)
	}
	if result.Detection == nil {
		t.Fatal("Detection = nil, want evaluation on layer 1")
	}

	if len(notifier.detections) != 1 {
		t.Errorf("broadcast detections = %d, want 1", len(notifier.detections))
	}
	if len(metrics.detections) != 1 {
		t.Errorf("published detection metrics = %d, want 1", len(metrics.detections))
	}

	var sawDetectionEvent bool
	for _, subject := range publisher.subjects() {
		if subject == "fada.detections" {
			sawDetectionEvent = true
		}
	}
	if !sawDetectionEvent {
		t.Errorf("published subjects = %v, want fada.detections present", publisher.subjects())
	}
}

func TestIngestPrinterTelemetryUseCase_NoDetectionBetweenCadences(t *testing.T) {
	monitor := newTestMonitor()
	uc := NewIngestPrinterTelemetryUseCase(monitor, nil, nil, nil, nil, logger.New("error"))

	if _, err := monitor.Start("test"); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	// Без продвижения слоя и до десятого обновления оценка не запускается
	result, err := uc.Execute(context.Background(), IngestPrinterTelemetryCommand{
		Z:          0.05,
		HotendTemp: 200,
		BedTemp:    60,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if result.Detection != nil {
		t.Error("Detection != nil, want none before either cadence fires")
	}
}

func TestIngestPrinterTelemetryUseCase_HotendAlertFansOut(t *testing.T) {
	monitor := newTestMonitor()
	notifier := &mockNotifier{}
	metrics := &mockMetricsPublisher{}
	uc := NewIngestPrinterTelemetryUseCase(monitor, notifier, nil, metrics, nil, logger.New("error"))

	if _, err := monitor.Start("test"); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	result, err := uc.Execute(context.Background(), IngestPrinterTelemetryCommand{
		Z:          0.05,
		HotendTemp: 260,
		BedTemp:    60,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(result.Alerts) != 1 || result.Alerts[0].Type != "high_temperature" {
		t.Fatalf("alerts = %v, want single high_temperature", result.Alerts)
	}
	if len(notifier.alerts) != 1 {
		t.Errorf("broadcast alerts = %d, want 1", len(notifier.alerts))
	}
	if metrics.alertCounts["warning"] != 1 {
		t.Errorf("alert count metric = %d, want 1 warning", metrics.alertCounts["warning"])
	}
}
