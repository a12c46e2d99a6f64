package dto

import (
	"time"

	"github.com/Ofr3d/FADA/internal/domain/entity"
)

// QualityMetricsDTO содержит суб-оценки качества
type QualityMetricsDTO struct {
	TemperatureStability float64 `json:"temperature_stability"`
	VibrationLevel       float64 `json:"vibration_level"`
	LayerQuality         float64 `json:"layer_quality"`
}

// QualityReportDTO представляет отчет о качестве, слитый с метаданными сессии
type QualityReportDTO struct {
	Timestamp       time.Time         `json:"timestamp"`
	OverallScore    float64           `json:"overall_score"`
	Grade           string            `json:"grade"`
	Issues          []string          `json:"issues"`
	Recommendations []string          `json:"recommendations"`
	Metrics         QualityMetricsDTO `json:"metrics"`
	Session         *SessionDTO       `json:"session,omitempty"`
}

// ReportFromEntity конвертирует QualityReport и сессию в DTO
func ReportFromEntity(report entity.QualityReport, session *entity.PrintSession) *QualityReportDTO {
	return &QualityReportDTO{
		Timestamp:       report.Timestamp,
		OverallScore:    report.OverallScore,
		Grade:           report.Grade.String(),
		Issues:          report.Issues,
		Recommendations: report.Recommendations,
		Metrics: QualityMetricsDTO{
			TemperatureStability: report.Metrics.TemperatureStability,
			VibrationLevel:       report.Metrics.VibrationLevel,
			LayerQuality:         report.Metrics.LayerQuality,
		},
		Session: SessionFromEntity(session),
	}
}
