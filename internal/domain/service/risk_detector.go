package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/Ofr3d/FADA/internal/domain/entity"
	"github.com/Ofr3d/FADA/internal/domain/valueobject"
)

// DetectionHistoryCapacity ограничивает историю detections.
// История переживает сессии: на ней строится обучающий цикл.
const DetectionHistoryCapacity = 50

// Окна сканирования аномалий по сенсорам
const (
	vibrationWindow   = 10
	temperatureWindow = 5
	flowWindow        = 5
)

// Веса зон риска
const (
	overhangWeight     = 0.9
	bridgeWeight       = 0.8
	smallFeatureWeight = 0.7
	firstLayersWeight  = 0.95
	firstLayersLimit   = 3
	safeZoneDampening  = 0.1
)

// Веса слагаемых итоговой confidence
const (
	riskScoreWeight   = 0.4
	highAlertWeight   = 0.3
	mediumAlertWeight = 0.1
	visualWeight      = 0.2
)

// RiskDetector фьюзит структурные метаданные, аномалии сенсоров и внешний
// визуальный сигнал в одну оценку уверенности (Domain Service).
// Поддерживает ограниченную историю detections и адаптивный множитель
// точности, управляемый отзывами оператора.
type RiskDetector struct {
	feedback *FeedbackTracker

	mu      sync.Mutex
	history []*entity.Detection
}

// NewRiskDetector создает новый детектор с инжектированным трекером отзывов
func NewRiskDetector(feedback *FeedbackTracker) *RiskDetector {
	if feedback == nil {
		feedback = NewFeedbackTracker()
	}

	return &RiskDetector{feedback: feedback}
}

// Evaluate выполняет одну оценку риска для слоя layer.
// Структурный score, аномалии сенсоров и визуальный сигнал независимы
// и сводятся только на этапе фьюжна confidence.
func (d *RiskDetector) Evaluate(
	snapshot entity.StructuralSnapshot,
	buffer *TelemetryBuffer,
	visual entity.VisualSignal,
	layer int,
	now time.Time,
) *entity.Detection {
	snapshot = snapshot.Normalize()
	visual = visual.Normalize()

	riskScore := d.structuralRisk(snapshot, layer)
	alerts := d.scanSensorAnomalies(buffer, now)

	var highCount, mediumCount int
	for _, a := range alerts {
		switch a.Severity() {
		case valueobject.SeverityHigh:
			highCount++
		case valueobject.SeverityMedium:
			mediumCount++
		}
	}

	confidence := riskScore*riskScoreWeight +
		float64(highCount)*highAlertWeight +
		float64(mediumCount)*mediumAlertWeight +
		visual.Confidence*visualWeight
	confidence *= d.feedback.Accuracy()
	if confidence > 1 {
		confidence = 1
	}

	detection := entity.NewDetection(
		now,
		layer,
		riskScore,
		confidence,
		alerts,
		d.riskFactors(snapshot, layer),
		d.recommend(riskScore, confidence, highCount > 0),
	)

	d.mu.Lock()
	d.history = append(d.history, detection)
	if len(d.history) > DetectionHistoryCapacity {
		d.history = d.history[len(d.history)-DetectionHistoryCapacity:]
	}
	d.mu.Unlock()

	return detection
}

// structuralRisk считает взвешенный структурный риск по таблице зон.
// Итог = totalRisk / weightSum по сработавшим зонам, с мультипликативным
// демпфированием за безопасные зоны, кламп к [0,1].
func (d *RiskDetector) structuralRisk(snapshot entity.StructuralSnapshot, layer int) float64 {
	var totalRisk, weightSum float64

	if snapshot.OverhangCount > 0 {
		totalRisk += min1(float64(snapshot.OverhangCount)/10) * overhangWeight
		weightSum += overhangWeight
	}

	if snapshot.BridgeCount > 0 {
		totalRisk += min1(float64(snapshot.BridgeCount)/5) * bridgeWeight
		weightSum += bridgeWeight
	}

	if snapshot.SmallFeatureCount > 0 {
		totalRisk += min1(float64(snapshot.SmallFeatureCount)/20) * smallFeatureWeight
		weightSum += smallFeatureWeight
	}

	if layer <= firstLayersLimit {
		totalRisk += firstLayersWeight
		weightSum += firstLayersWeight
	}

	if weightSum == 0 {
		return 0
	}

	risk := totalRisk / weightSum

	if snapshot.SolidInfillFrac > 0.8 {
		risk *= 1 - safeZoneDampening
	}
	if snapshot.HasSupportMaterial {
		risk *= 1 - safeZoneDampening
	}

	if risk < 0 {
		risk = 0
	}
	if risk > 1 {
		risk = 1
	}
	return risk
}

// scanSensorAnomalies проверяет последние окна сенсоров независимо от
// структурного score
func (d *RiskDetector) scanSensorAnomalies(buffer *TelemetryBuffer, now time.Time) []entity.Alert {
	var alerts []entity.Alert

	vibration := buffer.Window(valueobject.Vibration, vibrationWindow)
	if avg := mean(vibration); avg > 0 {
		var spikes int
		for _, v := range vibration {
			if v > 2*avg {
				spikes++
			}
		}
		if spikes > 3 {
			alerts = append(alerts, entity.NewAlert(
				"vibration_spikes",
				valueobject.SeverityHigh,
				fmt.Sprintf("%d of last %d vibration samples exceed twice the window average", spikes, len(vibration)),
				0.8,
				now,
			))
		}
	}

	temperature := buffer.Window(valueobject.Temperature, temperatureWindow)
	if stddev(temperature) > 8 {
		alerts = append(alerts, entity.NewAlert(
			"temperature_instability",
			valueobject.SeverityMedium,
			"temperature variation over the last samples exceeds 8 degrees",
			0.6,
			now,
		))
	}

	flow := buffer.Window(valueobject.MaterialFlow, flowWindow)
	if len(flow) > 0 {
		flowAvg := mean(flow)
		if flowAvg < 100 {
			alerts = append(alerts, entity.NewAlert(
				"low_flow",
				valueobject.SeverityHigh,
				"material flow average below minimum threshold",
				0.9,
				now,
			))
		}
		if stddev(flow) > flowAvg/2 {
			alerts = append(alerts, entity.NewAlert(
				"flow_inconsistent",
				valueobject.SeverityMedium,
				"material flow variation exceeds half the window average",
				0.7,
				now,
			))
		}
	}

	return alerts
}

// riskFactors собирает объясняющий список факторов для оператора.
// Список не участвует в score.
func (d *RiskDetector) riskFactors(snapshot entity.StructuralSnapshot, layer int) []entity.RiskFactor {
	var factors []entity.RiskFactor

	if layer <= firstLayersLimit {
		factors = append(factors, entity.RiskFactor{
			Name:        "first_layers",
			Level:       valueobject.RiskHigh,
			Description: "adhesion-critical first layers",
		})
	}

	if snapshot.OverhangCount > 0 {
		factors = append(factors, entity.RiskFactor{
			Name:        "overhangs",
			Level:       levelForCount(snapshot.OverhangCount, 5),
			Description: fmt.Sprintf("%d overhang features on this layer", snapshot.OverhangCount),
		})
	}

	if snapshot.BridgeCount > 0 {
		factors = append(factors, entity.RiskFactor{
			Name:        "bridges",
			Level:       levelForCount(snapshot.BridgeCount, 3),
			Description: fmt.Sprintf("%d unsupported bridges on this layer", snapshot.BridgeCount),
		})
	}

	if snapshot.SmallFeatureCount > 0 {
		factors = append(factors, entity.RiskFactor{
			Name:        "small_features",
			Level:       levelForCount(snapshot.SmallFeatureCount, 10),
			Description: fmt.Sprintf("%d small features prone to detachment", snapshot.SmallFeatureCount),
		})
	}

	if snapshot.SolidInfillFrac > 0.8 {
		factors = append(factors, entity.RiskFactor{
			Name:        "solid_infill",
			Level:       valueobject.RiskLow,
			Description: "high solid infill fraction stabilizes the structure",
		})
	}

	if snapshot.HasSupportMaterial {
		factors = append(factors, entity.RiskFactor{
			Name:        "support_material",
			Level:       valueobject.RiskLow,
			Description: "support material mitigates overhang risk",
		})
	}

	return factors
}

// levelForCount масштабирует уровень риска по количеству признаков
func levelForCount(count, highThreshold int) valueobject.RiskLevel {
	switch {
	case count > highThreshold:
		return valueobject.RiskHigh
	case count > highThreshold/2:
		return valueobject.RiskMedium
	default:
		return valueobject.RiskLow
	}
}

// recommend выбирает рекомендацию оператору.
// Отношение confidence/riskScore при нулевом riskScore дает +Inf (любая
// ненулевая confidence без структурного риска требует вмешательства) либо
// NaN (оба нулевые), что не проходит сравнение.
func (d *RiskDetector) recommend(riskScore, confidence float64, hasHighAlert bool) entity.Recommendation {
	if confidence/riskScore > 0.8 || hasHighAlert {
		return entity.Recommendation{
			Action:  valueobject.ActionImmediateIntervention,
			Urgency: valueobject.UrgencyHigh,
			Steps: []string{
				"pause the print",
				"inspect the current layer for detachment or stringing",
				"verify nozzle temperature and material flow",
				"resume only after the cause is addressed",
			},
		}
	}

	if riskScore > 0.5 {
		return entity.Recommendation{
			Action:  valueobject.ActionMonitorClosely,
			Urgency: valueobject.UrgencyMedium,
			Steps:   []string{"watch the next layers for degradation"},
		}
	}

	return entity.Recommendation{
		Action:  valueobject.ActionContinueMonitoring,
		Urgency: valueobject.UrgencyLow,
	}
}

// Feedback возвращает инжектированный трекер отзывов
func (d *RiskDetector) Feedback() *FeedbackTracker {
	return d.feedback
}

// History возвращает копию истории detections в порядке записи
func (d *RiskDetector) History() []*entity.Detection {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]*entity.Detection, len(d.history))
	copy(out, d.history)
	return out
}

// RecentDetections возвращает последние n detections
func (d *RiskDetector) RecentDetections(n int) []*entity.Detection {
	d.mu.Lock()
	defer d.mu.Unlock()

	if n > len(d.history) {
		n = len(d.history)
	}
	out := make([]*entity.Detection, n)
	copy(out, d.history[len(d.history)-n:])
	return out
}

// TotalDetections возвращает число detections в истории
func (d *RiskDetector) TotalDetections() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.history)
}

func min1(v float64) float64 {
	if v > 1 {
		return 1
	}
	return v
}
