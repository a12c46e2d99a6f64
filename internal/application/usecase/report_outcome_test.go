package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/Ofr3d/FADA/internal/domain/entity"
	"github.com/Ofr3d/FADA/internal/domain/service"
	"github.com/Ofr3d/FADA/pkg/logger"
)

func detectorWithHistory(t *testing.T, evaluations int) *service.RiskDetector {
	t.Helper()

	detector := service.NewRiskDetector(nil)
	buffer := service.NewTelemetryBuffer()
	for i := 0; i < evaluations; i++ {
		detector.Evaluate(entity.StructuralSnapshot{}, buffer, entity.VisualSignal{}, i+10, time.Now())
	}
	return detector
}

func TestReportOutcomeUseCase_RequiresDetections(t *testing.T) {
	uc := NewReportOutcomeUseCase(service.NewRiskDetector(nil), logger.New("error"))

	err := uc.Execute(ReportOutcomeCommand{WasActualFailure: true})
	if !errors.Is(err, service.ErrNoDetections) {
		t.Errorf("Execute() error = %v, want %v", err, service.ErrNoDetections)
	}
}

func TestReportOutcomeUseCase_UpdatesAccuracy(t *testing.T) {
	detector := detectorWithHistory(t, 1)
	uc := NewReportOutcomeUseCase(detector, logger.New("error"))

	outcomes := []bool{true, true, true, false}
	for _, outcome := range outcomes {
		if err := uc.Execute(ReportOutcomeCommand{WasActualFailure: outcome}); err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
	}

	if got := detector.Feedback().Accuracy(); got != 0.75 {
		t.Errorf("Accuracy() = %v, want 0.75", got)
	}
}

func TestResetFeedbackUseCase_RestoresDefaultAccuracy(t *testing.T) {
	detector := detectorWithHistory(t, 1)
	detector.Feedback().Report(false)
	detector.Feedback().Report(false)

	uc := NewResetFeedbackUseCase(detector, logger.New("error"))
	uc.Execute()

	if got := detector.Feedback().Accuracy(); got != service.DefaultAccuracy {
		t.Errorf("Accuracy() after reset = %v, want %v", got, service.DefaultAccuracy)
	}
}

func TestGetDetectionStatsUseCase_Execute(t *testing.T) {
	detector := detectorWithHistory(t, 15)
	detector.Feedback().Report(true)
	detector.Feedback().Report(false)

	uc := NewGetDetectionStatsUseCase(detector, logger.New("error"))
	stats := uc.Execute()

	if stats.TotalDetections != 15 {
		t.Errorf("TotalDetections = %d, want 15", stats.TotalDetections)
	}
	if stats.Accuracy != 0.5 {
		t.Errorf("Accuracy = %v, want 0.5", stats.Accuracy)
	}
	if stats.TruePositives != 1 || stats.FalsePositives != 1 {
		t.Errorf("counters = (%d, %d), want (1, 1)", stats.TruePositives, stats.FalsePositives)
	}
	if len(stats.RecentDetections) != 10 {
		t.Errorf("RecentDetections = %d, want capped at 10", len(stats.RecentDetections))
	}
}
