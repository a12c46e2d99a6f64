package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Ofr3d/FADA/internal/application/dto"
	"github.com/Ofr3d/FADA/internal/application/port"
	"github.com/Ofr3d/FADA/internal/domain/entity"
	"github.com/Ofr3d/FADA/internal/domain/service"
	"github.com/Ofr3d/FADA/pkg/logger"
)

// StopMonitoringUseCase завершает сессию, архивирует ее результаты и
// возвращает финальный отчет о качестве
type StopMonitoringUseCase struct {
	monitor   *service.SessionMonitor
	archive   port.DetectionArchive
	storage   port.ReportStorage
	notifier  port.NotificationService
	publisher port.EventPublisher
	status    *GetStatusUseCase
	logger    *logger.Logger
}

// NewStopMonitoringUseCase создает новый use case
func NewStopMonitoringUseCase(
	monitor *service.SessionMonitor,
	archive port.DetectionArchive,
	storage port.ReportStorage,
	notifier port.NotificationService,
	publisher port.EventPublisher,
	status *GetStatusUseCase,
	logger *logger.Logger,
) *StopMonitoringUseCase {
	return &StopMonitoringUseCase{
		monitor:   monitor,
		archive:   archive,
		storage:   storage,
		notifier:  notifier,
		publisher: publisher,
		status:    status,
		logger:    logger,
	}
}

// Execute останавливает мониторинг.
// Сбои архивации и выгрузки не валят остановку: отчет уже собран,
// сессия завершена, потеря аудиторского следа только логируется.
func (uc *StopMonitoringUseCase) Execute(ctx context.Context) (*dto.QualityReportDTO, error) {
	report, session, err := uc.monitor.Stop()
	if err != nil {
		uc.logger.Warn("Rejected stop request", "error", err.Error())
		return nil, err
	}

	uc.logger.Info("Monitoring stopped",
		"session_id", session.ID(),
		"grade", report.Grade.String(),
		"score", report.OverallScore,
	)

	reportDTO := dto.ReportFromEntity(report, session)

	if uc.status != nil {
		uc.status.Invalidate(ctx)
	}

	if uc.notifier != nil {
		uc.notifier.BroadcastStatus(dto.StatusFromMonitor(uc.monitor.Status()))
	}

	if uc.archive != nil {
		uc.archiveSession(ctx, session)
	}

	if uc.storage != nil {
		uc.uploadReport(ctx, session, reportDTO)
	}

	if uc.publisher != nil {
		if err := uc.publisher.PublishEvent(ctx, "fada.sessions", map[string]interface{}{
			"event":  "session.completed",
			"report": reportDTO,
		}); err != nil {
			uc.logger.Warn("Failed to publish session event", "error", err.Error())
		}
	}

	return reportDTO, nil
}

// archiveSession сохраняет сессию и ее detections в архив
func (uc *StopMonitoringUseCase) archiveSession(ctx context.Context, session *entity.PrintSession) {
	if err := uc.archive.SaveSession(ctx, session); err != nil {
		uc.logger.Warn("Failed to archive session", "session_id", session.ID(), "error", err.Error())
		return
	}

	// История детектора переживает сессии: архивируем только detections
	// текущей сессии.
	var sessionDetections []*entity.Detection
	for _, d := range uc.monitor.Detector().History() {
		if !d.Timestamp().Before(session.StartTime()) {
			sessionDetections = append(sessionDetections, d)
		}
	}

	if len(sessionDetections) == 0 {
		return
	}

	if err := uc.archive.SaveDetections(ctx, session.ID(), sessionDetections); err != nil {
		uc.logger.Warn("Failed to archive detections", "session_id", session.ID(), "error", err.Error())
	}
}

// uploadReport выгружает финальный отчет в объектное хранилище
func (uc *StopMonitoringUseCase) uploadReport(ctx context.Context, session *entity.PrintSession, report *dto.QualityReportDTO) {
	body, err := json.Marshal(report)
	if err != nil {
		uc.logger.Warn("Failed to marshal final report", "error", err.Error())
		return
	}

	key := fmt.Sprintf("reports/%s/%s.json", session.StartTime().UTC().Format("2006/01/02"), session.ID())
	url, err := uc.storage.PutObject(ctx, key, "application/json", body)
	if err != nil {
		uc.logger.Warn("Failed to upload final report", "key", key, "error", err.Error())
		return
	}

	uc.logger.Info("Final report archived", "url", url)
}
