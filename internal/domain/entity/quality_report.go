package entity

import (
	"time"

	"github.com/Ofr3d/FADA/internal/domain/valueobject"
)

// QualityMetrics содержит суб-оценки, из которых собирается итоговый балл
type QualityMetrics struct {
	TemperatureStability float64
	VibrationLevel       float64
	LayerQuality         float64
}

// QualityReport представляет отчет о качестве печати.
// Собирается по требованию и не хранится.
type QualityReport struct {
	Timestamp       time.Time
	OverallScore    float64
	Grade           valueobject.Grade
	Issues          []string
	Recommendations []string
	Metrics         QualityMetrics
}
