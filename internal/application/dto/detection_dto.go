package dto

import (
	"time"

	"github.com/Ofr3d/FADA/internal/domain/entity"
)

// RiskFactorDTO представляет объясняющий фактор риска
type RiskFactorDTO struct {
	Name        string `json:"name"`
	Level       string `json:"level"`
	Description string `json:"description"`
}

// RecommendationDTO представляет рекомендацию детектора
type RecommendationDTO struct {
	Action  string   `json:"action"`
	Urgency string   `json:"urgency"`
	Steps   []string `json:"steps,omitempty"`
}

// DetectionDTO представляет один результат оценки риска
type DetectionDTO struct {
	ID             string            `json:"id"`
	Timestamp      time.Time         `json:"timestamp"`
	Layer          int               `json:"layer"`
	RiskScore      float64           `json:"risk_score"`
	Confidence     float64           `json:"confidence"`
	Alerts         []*AlertDTO       `json:"alerts"`
	RiskFactors    []RiskFactorDTO   `json:"risk_factors"`
	Recommendation RecommendationDTO `json:"recommendation"`
}

// DetectionFromEntity конвертирует Detection в DTO
func DetectionFromEntity(d *entity.Detection) *DetectionDTO {
	factors := make([]RiskFactorDTO, 0, len(d.RiskFactors()))
	for _, f := range d.RiskFactors() {
		factors = append(factors, RiskFactorDTO{
			Name:        f.Name,
			Level:       f.Level.String(),
			Description: f.Description,
		})
	}

	rec := d.Recommendation()

	return &DetectionDTO{
		ID:          d.ID(),
		Timestamp:   d.Timestamp(),
		Layer:       d.Layer(),
		RiskScore:   d.RiskScore(),
		Confidence:  d.Confidence(),
		Alerts:      ToAlertDTOs(d.Alerts()),
		RiskFactors: factors,
		Recommendation: RecommendationDTO{
			Action:  rec.Action.String(),
			Urgency: rec.Urgency.String(),
			Steps:   rec.Steps,
		},
	}
}

// ToDetectionDTOs конвертирует слайс detections в слайс DTO
func ToDetectionDTOs(detections []*entity.Detection) []*DetectionDTO {
	dtos := make([]*DetectionDTO, len(detections))
	for i, d := range detections {
		dtos[i] = DetectionFromEntity(d)
	}
	return dtos
}

// DetectionStatsDTO представляет статистику обучающего цикла
type DetectionStatsDTO struct {
	TotalDetections  int             `json:"total_detections"`
	Accuracy         float64         `json:"accuracy"`
	TruePositives    int             `json:"true_positives"`
	FalsePositives   int             `json:"false_positives"`
	RecentDetections []*DetectionDTO `json:"recent_detections"`
}
