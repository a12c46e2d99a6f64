package usecase

import (
	"context"
	"time"

	"github.com/Ofr3d/FADA/internal/application/dto"
	"github.com/Ofr3d/FADA/internal/application/port"
	"github.com/Ofr3d/FADA/internal/domain/entity"
	"github.com/Ofr3d/FADA/internal/domain/service"
	"github.com/Ofr3d/FADA/pkg/logger"
)

// IngestPrinterTelemetryCommand — одно обновление слоя device-communication
type IngestPrinterTelemetryCommand struct {
	X, Y, Z    float64
	HotendTemp float64
	BedTemp    float64
	Timestamp  time.Time
}

// IngestPrinterTelemetryResult — результат приема обновления
type IngestPrinterTelemetryResult struct {
	Recorded  bool              `json:"recorded"`
	Layer     int               `json:"layer"`
	Alerts    []*dto.AlertDTO   `json:"alerts,omitempty"`
	Detection *dto.DetectionDTO `json:"detection,omitempty"`
}

// IngestPrinterTelemetryUseCase принимает телеметрию принтера, продвигает
// tracker слоев и рассылает результаты сработавших оценок риска
type IngestPrinterTelemetryUseCase struct {
	monitor      *service.SessionMonitor
	notifier     port.NotificationService
	publisher    port.EventPublisher
	metrics      port.MetricsPublisher
	logPublisher port.LogPublisher
	logger       *logger.Logger
}

// NewIngestPrinterTelemetryUseCase создает новый use case
func NewIngestPrinterTelemetryUseCase(
	monitor *service.SessionMonitor,
	notifier port.NotificationService,
	publisher port.EventPublisher,
	metrics port.MetricsPublisher,
	logPublisher port.LogPublisher,
	logger *logger.Logger,
) *IngestPrinterTelemetryUseCase {
	return &IngestPrinterTelemetryUseCase{
		monitor:      monitor,
		notifier:     notifier,
		publisher:    publisher,
		metrics:      metrics,
		logPublisher: logPublisher,
		logger:       logger,
	}
}

// Execute принимает одно обновление телеметрии
func (uc *IngestPrinterTelemetryUseCase) Execute(ctx context.Context, cmd IngestPrinterTelemetryCommand) (*IngestPrinterTelemetryResult, error) {
	position := entity.NewPositionSample(cmd.X, cmd.Y, cmd.Z, cmd.Timestamp)

	result := uc.monitor.UpdatePrinterData(position, cmd.HotendTemp, cmd.BedTemp)
	if !result.Recorded {
		// Монитор в состоянии idle: обновление отброшено без ошибки
		return &IngestPrinterTelemetryResult{}, nil
	}

	out := &IngestPrinterTelemetryResult{
		Recorded: true,
		Layer:    result.Layer,
		Alerts:   dto.ToAlertDTOs(result.Alerts),
	}

	for _, alert := range result.Alerts {
		alertDTO := dto.AlertFromEntity(alert)
		uc.logger.Warn("Alert raised", "type", alert.Type(), "severity", alert.Severity().String())

		if uc.notifier != nil {
			uc.notifier.BroadcastAlert(alertDTO)
		}
		if uc.publisher != nil {
			if err := uc.publisher.PublishEvent(ctx, "fada.alerts", alertDTO); err != nil {
				uc.logger.Warn("Failed to publish alert", "error", err.Error())
			}
		}
		if uc.logPublisher != nil {
			entry := port.LogEntry{
				Timestamp: alert.Timestamp(),
				Level:     logLevelForSeverity(alert.Severity()),
				Message:   alert.Message(),
				Fields: map[string]interface{}{
					"type":     alert.Type(),
					"severity": alert.Severity().String(),
					"value":    alert.Value(),
				},
			}
			if err := uc.logPublisher.Publish(ctx, entry); err != nil {
				uc.logger.Warn("Failed to publish alert log", "error", err.Error())
			}
		}
	}

	publishAlertCounts(ctx, uc.metrics, result.Alerts, uc.logger)

	if result.Detection != nil {
		out.Detection = uc.fanOutDetection(ctx, result.Detection)
	}

	return out, nil
}

// fanOutDetection рассылает один detection клиентам, в шину событий и
// в observability-платформу
func (uc *IngestPrinterTelemetryUseCase) fanOutDetection(ctx context.Context, detection *entity.Detection) *dto.DetectionDTO {
	detectionDTO := dto.DetectionFromEntity(detection)

	uc.logger.Info("Risk evaluated",
		"layer", detection.Layer(),
		"risk_score", detection.RiskScore(),
		"confidence", detection.Confidence(),
		"action", detection.Recommendation().Action.String(),
	)

	if uc.notifier != nil {
		uc.notifier.BroadcastDetection(detectionDTO)
	}

	if uc.publisher != nil {
		if err := uc.publisher.PublishEvent(ctx, "fada.detections", detectionDTO); err != nil {
			uc.logger.Warn("Failed to publish detection", "error", err.Error())
		}
	}

	if uc.metrics != nil {
		if err := uc.metrics.PublishDetection(ctx, detection); err != nil {
			uc.logger.Warn("Failed to publish detection metrics", "error", err.Error())
		}
	}

	return detectionDTO
}
