package usecase

import (
	"github.com/Ofr3d/FADA/internal/application/dto"
	"github.com/Ofr3d/FADA/internal/domain/service"
	"github.com/Ofr3d/FADA/pkg/logger"
)

// recentDetectionsLimit ограничивает число detections в статистике
const recentDetectionsLimit = 10

// GetDetectionStatsUseCase возвращает статистику обучающего цикла
type GetDetectionStatsUseCase struct {
	detector *service.RiskDetector
	logger   *logger.Logger
}

// NewGetDetectionStatsUseCase создает новый use case
func NewGetDetectionStatsUseCase(detector *service.RiskDetector, logger *logger.Logger) *GetDetectionStatsUseCase {
	return &GetDetectionStatsUseCase{
		detector: detector,
		logger:   logger,
	}
}

// Execute возвращает статистику detections
func (uc *GetDetectionStatsUseCase) Execute() *dto.DetectionStatsDTO {
	tp, fp := uc.detector.Feedback().Counters()

	return &dto.DetectionStatsDTO{
		TotalDetections:  uc.detector.TotalDetections(),
		Accuracy:         uc.detector.Feedback().Accuracy(),
		TruePositives:    tp,
		FalsePositives:   fp,
		RecentDetections: dto.ToDetectionDTOs(uc.detector.RecentDetections(recentDetectionsLimit)),
	}
}
