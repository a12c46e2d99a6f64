package usecase

import (
	"context"
	"time"

	"github.com/Ofr3d/FADA/internal/application/dto"
	"github.com/Ofr3d/FADA/internal/application/port"
	"github.com/Ofr3d/FADA/internal/domain/entity"
	"github.com/Ofr3d/FADA/internal/domain/service"
	"github.com/Ofr3d/FADA/internal/domain/valueobject"
	"github.com/Ofr3d/FADA/pkg/logger"
)

// IngestSensorSampleCommand — одно наблюдение шлюза сенсоров
type IngestSensorSampleCommand struct {
	Channel   string
	Value     float64
	Timestamp time.Time
}

// IngestSensorSampleResult — результат приема наблюдения
type IngestSensorSampleResult struct {
	Recorded bool            `json:"recorded"`
	Alerts   []*dto.AlertDTO `json:"alerts,omitempty"`
}

// IngestSensorSampleUseCase принимает наблюдения беспроводного шлюза
// сенсоров и рассылает порожденные alerts
type IngestSensorSampleUseCase struct {
	monitor      *service.SessionMonitor
	notifier     port.NotificationService
	publisher    port.EventPublisher
	metrics      port.MetricsPublisher
	logPublisher port.LogPublisher
	logger       *logger.Logger
}

// NewIngestSensorSampleUseCase создает новый use case
func NewIngestSensorSampleUseCase(
	monitor *service.SessionMonitor,
	notifier port.NotificationService,
	publisher port.EventPublisher,
	metrics port.MetricsPublisher,
	logPublisher port.LogPublisher,
	logger *logger.Logger,
) *IngestSensorSampleUseCase {
	return &IngestSensorSampleUseCase{
		monitor:      monitor,
		notifier:     notifier,
		publisher:    publisher,
		metrics:      metrics,
		logPublisher: logPublisher,
		logger:       logger,
	}
}

// Execute принимает одно наблюдение.
// Неизвестный канал отклоняется на границе вызова, не записывается молча.
func (uc *IngestSensorSampleUseCase) Execute(ctx context.Context, cmd IngestSensorSampleCommand) (*IngestSensorSampleResult, error) {
	sample, err := entity.NewSensorSample(valueobject.Channel(cmd.Channel), cmd.Value, cmd.Timestamp)
	if err != nil {
		uc.logger.Warn("Rejected sensor sample", "channel", cmd.Channel, "error", err.Error())
		return nil, err
	}

	result := uc.monitor.UpdateSensorData(sample)
	if !result.Recorded {
		// Монитор в состоянии idle: наблюдение отброшено без ошибки
		return &IngestSensorSampleResult{}, nil
	}

	uc.fanOutAlerts(ctx, result.Alerts)
	publishAlertCounts(ctx, uc.metrics, result.Alerts, uc.logger)

	return &IngestSensorSampleResult{
		Recorded: true,
		Alerts:   dto.ToAlertDTOs(result.Alerts),
	}, nil
}

// fanOutAlerts рассылает alerts клиентам и в шину событий
func (uc *IngestSensorSampleUseCase) fanOutAlerts(ctx context.Context, alerts []entity.Alert) {
	for _, alert := range alerts {
		alertDTO := dto.AlertFromEntity(alert)

		uc.logger.Warn("Alert raised", "type", alert.Type(), "severity", alert.Severity().String(), "value", alert.Value())

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
}

// logLevelForSeverity сопоставляет severity alert уровню журнала
func logLevelForSeverity(s valueobject.Severity) port.LogLevel {
	if s.IsCritical() {
		return port.LogLevelError
	}
	return port.LogLevelWarn
}

// publishAlertCounts отправляет число сработавших alerts по severity
// в observability-платформу. Сбой публикации не валит прием телеметрии.
func publishAlertCounts(ctx context.Context, metrics port.MetricsPublisher, alerts []entity.Alert, log *logger.Logger) {
	if metrics == nil || len(alerts) == 0 {
		return
	}

	counts := make(map[string]int)
	for _, a := range alerts {
		counts[a.Severity().String()]++
	}

	for severity, n := range counts {
		if err := metrics.PublishAlertCount(ctx, severity, n); err != nil {
			log.Warn("Failed to publish alert count", "severity", severity, "error", err.Error())
		}
	}
}
