package usecase

import (
	"github.com/Ofr3d/FADA/internal/domain/service"
	"github.com/Ofr3d/FADA/pkg/logger"
)

// ReportOutcomeCommand — подтвержденный оператором исход
type ReportOutcomeCommand struct {
	WasActualFailure bool
}

// ReportOutcomeUseCase фиксирует отзыв оператора о прошедшем detection.
// Отзыв влияет только на будущие оценки, не на прошлые.
type ReportOutcomeUseCase struct {
	detector *service.RiskDetector
	logger   *logger.Logger
}

// NewReportOutcomeUseCase создает новый use case
func NewReportOutcomeUseCase(detector *service.RiskDetector, logger *logger.Logger) *ReportOutcomeUseCase {
	return &ReportOutcomeUseCase{
		detector: detector,
		logger:   logger,
	}
}

// Execute фиксирует исход.
// Возвращает ErrNoDetections, если детектор еще ничего не оценивал.
func (uc *ReportOutcomeUseCase) Execute(cmd ReportOutcomeCommand) error {
	if uc.detector.TotalDetections() == 0 {
		return service.ErrNoDetections
	}

	uc.detector.Feedback().Report(cmd.WasActualFailure)

	tp, fp := uc.detector.Feedback().Counters()
	uc.logger.Info("Operator feedback recorded",
		"was_actual_failure", cmd.WasActualFailure,
		"true_positives", tp,
		"false_positives", fp,
		"accuracy", uc.detector.Feedback().Accuracy(),
	)

	return nil
}
