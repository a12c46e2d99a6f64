package entity

import (
	"time"

	"github.com/Ofr3d/FADA/internal/domain/valueobject"
	"github.com/google/uuid"
)

// RiskFactor представляет один объясняющий фактор риска.
// Список факторов собирается только для оператора и не участвует в score.
type RiskFactor struct {
	Name        string
	Level       valueobject.RiskLevel
	Description string
}

// Recommendation представляет рекомендацию детектора оператору
type Recommendation struct {
	Action  valueobject.RecommendedAction
	Urgency valueobject.Urgency
	Steps   []string
}

// Detection представляет один результат оценки риска (Aggregate Root).
// История detections переживает сессии: это субстрат для обучающего цикла.
type Detection struct {
	id             string
	timestamp      time.Time
	layer          int
	riskScore      float64
	confidence     float64
	alerts         []Alert
	riskFactors    []RiskFactor
	recommendation Recommendation
}

// NewDetection создает новый Detection, клампя score и confidence к [0,1]
func NewDetection(
	timestamp time.Time,
	layer int,
	riskScore, confidence float64,
	alerts []Alert,
	riskFactors []RiskFactor,
	recommendation Recommendation,
) *Detection {
	return &Detection{
		id:             uuid.New().String(),
		timestamp:      timestamp,
		layer:          layer,
		riskScore:      clamp01(riskScore),
		confidence:     clamp01(confidence),
		alerts:         alerts,
		riskFactors:    riskFactors,
		recommendation: recommendation,
	}
}

// ReconstructDetection восстанавливает Detection из хранилища (для Repository)
func ReconstructDetection(
	id string,
	timestamp time.Time,
	layer int,
	riskScore, confidence float64,
	recommendation Recommendation,
) *Detection {
	return &Detection{
		id:             id,
		timestamp:      timestamp,
		layer:          layer,
		riskScore:      clamp01(riskScore),
		confidence:     clamp01(confidence),
		recommendation: recommendation,
	}
}

// ID возвращает идентификатор detection
func (d *Detection) ID() string {
	return d.id
}

// Timestamp возвращает время оценки
func (d *Detection) Timestamp() time.Time {
	return d.timestamp
}

// Layer возвращает слой, на котором выполнена оценка
func (d *Detection) Layer() int {
	return d.layer
}

// RiskScore возвращает структурный риск [0,1]
func (d *Detection) RiskScore() float64 {
	return d.riskScore
}

// Confidence возвращает итоговую уверенность [0,1]
func (d *Detection) Confidence() float64 {
	return d.confidence
}

// Alerts возвращает копию списка alerts
func (d *Detection) Alerts() []Alert {
	out := make([]Alert, len(d.alerts))
	copy(out, d.alerts)
	return out
}

// RiskFactors возвращает копию списка факторов риска
func (d *Detection) RiskFactors() []RiskFactor {
	out := make([]RiskFactor, len(d.riskFactors))
	copy(out, d.riskFactors)
	return out
}

// Recommendation возвращает рекомендацию оператору
func (d *Detection) Recommendation() Recommendation {
	return d.recommendation
}

// RequiresIntervention проверяет, требует ли detection немедленного вмешательства
func (d *Detection) RequiresIntervention() bool {
	return d.recommendation.Action == valueobject.ActionImmediateIntervention
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
