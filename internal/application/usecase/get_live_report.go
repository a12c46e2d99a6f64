package usecase

import (
	"github.com/Ofr3d/FADA/internal/application/dto"
	"github.com/Ofr3d/FADA/internal/domain/service"
	"github.com/Ofr3d/FADA/pkg/logger"
)

// GetLiveReportUseCase собирает отчет о качестве по текущим данным
// активной сессии
type GetLiveReportUseCase struct {
	monitor *service.SessionMonitor
	logger  *logger.Logger
}

// NewGetLiveReportUseCase создает новый use case
func NewGetLiveReportUseCase(monitor *service.SessionMonitor, logger *logger.Logger) *GetLiveReportUseCase {
	return &GetLiveReportUseCase{
		monitor: monitor,
		logger:  logger,
	}
}

// Execute возвращает live отчет
func (uc *GetLiveReportUseCase) Execute() (*dto.QualityReportDTO, error) {
	report, session, err := uc.monitor.LiveReport()
	if err != nil {
		return nil, err
	}

	uc.logger.Debug("Live report built", "grade", report.Grade.String(), "score", report.OverallScore)

	return dto.ReportFromEntity(report, session), nil
}

// GetFinalReportUseCase возвращает отчет последней завершенной сессии
type GetFinalReportUseCase struct {
	monitor *service.SessionMonitor
	logger  *logger.Logger
}

// NewGetFinalReportUseCase создает новый use case
func NewGetFinalReportUseCase(monitor *service.SessionMonitor, logger *logger.Logger) *GetFinalReportUseCase {
	return &GetFinalReportUseCase{
		monitor: monitor,
		logger:  logger,
	}
}

// Execute возвращает финальный отчет
func (uc *GetFinalReportUseCase) Execute() (*dto.QualityReportDTO, error) {
	report, session, err := uc.monitor.FinalReport()
	if err != nil {
		return nil, err
	}

	return dto.ReportFromEntity(report, session), nil
}
