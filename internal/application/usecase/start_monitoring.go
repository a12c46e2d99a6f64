package usecase

import (
	"context"

	"github.com/Ofr3d/FADA/internal/application/dto"
	"github.com/Ofr3d/FADA/internal/application/port"
	"github.com/Ofr3d/FADA/internal/domain/service"
	"github.com/Ofr3d/FADA/pkg/logger"
)

// StartMonitoringCommand — параметры запуска мониторинга
type StartMonitoringCommand struct {
	Name string
}

// StartMonitoringUseCase запускает мониторинг новой сессии печати
type StartMonitoringUseCase struct {
	monitor   *service.SessionMonitor
	notifier  port.NotificationService
	publisher port.EventPublisher
	status    *GetStatusUseCase
	logger    *logger.Logger
}

// NewStartMonitoringUseCase создает новый use case
func NewStartMonitoringUseCase(
	monitor *service.SessionMonitor,
	notifier port.NotificationService,
	publisher port.EventPublisher,
	status *GetStatusUseCase,
	logger *logger.Logger,
) *StartMonitoringUseCase {
	return &StartMonitoringUseCase{
		monitor:   monitor,
		notifier:  notifier,
		publisher: publisher,
		status:    status,
		logger:    logger,
	}
}

// Execute запускает мониторинг.
// Кэшированный статус инвалидируется сразу: снимок "idle" не должен
// переживать переход сессии.
func (uc *StartMonitoringUseCase) Execute(ctx context.Context, cmd StartMonitoringCommand) (*dto.SessionDTO, error) {
	session, err := uc.monitor.Start(cmd.Name)
	if err != nil {
		uc.logger.Warn("Rejected start request", "error", err.Error())
		return nil, err
	}

	uc.logger.Info("Monitoring started", "session_id", session.ID(), "name", session.Name())

	sessionDTO := dto.SessionFromEntity(session)

	if uc.status != nil {
		uc.status.Invalidate(ctx)
	}

	if uc.notifier != nil {
		uc.notifier.BroadcastStatus(dto.StatusFromMonitor(uc.monitor.Status()))
	}

	if uc.publisher != nil {
		if err := uc.publisher.PublishEvent(ctx, "fada.sessions", map[string]interface{}{
			"event":   "session.started",
			"session": sessionDTO,
		}); err != nil {
			uc.logger.Warn("Failed to publish session event", "error", err.Error())
		}
	}

	return sessionDTO, nil
}
