package usecase

import (
	"github.com/Ofr3d/FADA/internal/domain/service"
	"github.com/Ofr3d/FADA/pkg/logger"
)

// ResetFeedbackUseCase обнуляет счетчики отзывов оператора.
// Явное действие оператора: больше счетчики ничем не сбрасываются.
type ResetFeedbackUseCase struct {
	detector *service.RiskDetector
	logger   *logger.Logger
}

// NewResetFeedbackUseCase создает новый use case
func NewResetFeedbackUseCase(detector *service.RiskDetector, logger *logger.Logger) *ResetFeedbackUseCase {
	return &ResetFeedbackUseCase{
		detector: detector,
		logger:   logger,
	}
}

// Execute обнуляет счетчики
func (uc *ResetFeedbackUseCase) Execute() {
	uc.detector.Feedback().Reset()
	uc.logger.Info("Feedback counters reset")
}
