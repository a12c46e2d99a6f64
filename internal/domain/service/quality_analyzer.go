package service

import (
	"math"
	"time"

	"github.com/Ofr3d/FADA/internal/domain/entity"
	"github.com/Ofr3d/FADA/internal/domain/valueobject"
)

// Пороги оценки качества
const (
	tempVariationLimit  = 5.0
	tempBandLow         = 180.0
	tempBandHigh        = 250.0
	vibrationAvgLimit   = 50.0
	oscillationDelta    = 10.0
	oscillationFraction = 0.3
	heightDeltaLimit    = 0.05
	flowVariationLimit  = 10.0
)

// Environment содержит показания, которые не живут в историях каналов:
// температура стола и камеры на момент анализа
type Environment struct {
	BedTemperature     float64
	AmbientTemperature float64
	HasBed             bool
	HasAmbient         bool
}

// TemperatureProfile — результат анализа температурной стабильности
type TemperatureProfile struct {
	Stability       float64
	Issues          []string
	Recommendations []string
}

// VibrationProfile — результат анализа вибрации
type VibrationProfile struct {
	Score           float64
	Issues          []string
	Recommendations []string
}

// LayerQualityProfile — результат анализа качества слоев
type LayerQualityProfile struct {
	Score           float64
	Issues          []string
	Recommendations []string
}

// QualityAnalyzer считает оценки качества печати по буферизованной
// телеметрии (Domain Service). Все методы — чистые функции над буфером.
type QualityAnalyzer struct{}

// NewQualityAnalyzer создает новый QualityAnalyzer
func NewQualityAnalyzer() *QualityAnalyzer {
	return &QualityAnalyzer{}
}

// AnalyzeTemperature оценивает стабильность температуры.
// stability = 100 - 10 * стандартное отклонение канала.
func (a *QualityAnalyzer) AnalyzeTemperature(buffer *TelemetryBuffer) TemperatureProfile {
	variation := buffer.Variation(valueobject.Temperature)
	average := buffer.Average(valueobject.Temperature)

	profile := TemperatureProfile{
		Stability: math.Max(0, 100-10*variation),
	}

	if variation > tempVariationLimit {
		profile.Issues = append(profile.Issues, "temperature fluctuations detected")
		profile.Recommendations = append(profile.Recommendations, "check thermistor contact and PID tuning")
	}

	if buffer.Len(valueobject.Temperature) > 0 && (average < tempBandLow || average > tempBandHigh) {
		profile.Issues = append(profile.Issues, "average temperature outside material range")
		profile.Recommendations = append(profile.Recommendations, "verify target temperature for the loaded material")
	}

	return profile
}

// AnalyzeVibration оценивает уровень вибрации.
// score = max(0, 100 - среднее по каналу).
func (a *QualityAnalyzer) AnalyzeVibration(buffer *TelemetryBuffer) VibrationProfile {
	average := buffer.Average(valueobject.Vibration)

	profile := VibrationProfile{
		Score: math.Max(0, 100-average),
	}

	if average > vibrationAvgLimit {
		profile.Issues = append(profile.Issues, "excessive vibration level")
		profile.Recommendations = append(profile.Recommendations, "check belt tension and frame rigidity")
	}

	if hasOscillationPattern(buffer.Values(valueobject.Vibration)) {
		profile.Issues = append(profile.Issues, "periodic vibration pattern detected")
		profile.Recommendations = append(profile.Recommendations, "inspect pulleys and stepper drivers for resonance")
	}

	return profile
}

// hasOscillationPattern проверяет простую эвристику осцилляции: более 30%
// соседних пар значений отличаются больше чем на 10 единиц
func hasOscillationPattern(values []float64) bool {
	if len(values) < 2 {
		return false
	}

	var spikes int
	for i := 1; i < len(values); i++ {
		if math.Abs(values[i]-values[i-1]) > oscillationDelta {
			spikes++
		}
	}

	return float64(spikes)/float64(len(values)-1) > oscillationFraction
}

// AnalyzeLayerQuality оценивает консистентность слоев по журналу позиций
// и вариации потока материала
func (a *QualityAnalyzer) AnalyzeLayerQuality(buffer *TelemetryBuffer) LayerQualityProfile {
	profile := LayerQualityProfile{Score: 100}

	heights := layerHeightDeltas(buffer.Positions())
	if stddev(heights) > heightDeltaLimit {
		profile.Score -= 20
		profile.Issues = append(profile.Issues, "inconsistent layer heights")
		profile.Recommendations = append(profile.Recommendations, "check Z-axis coupling and lead screw")
	}

	if buffer.Variation(valueobject.MaterialFlow) > flowVariationLimit {
		profile.Score -= 15
		profile.Issues = append(profile.Issues, "unstable material flow")
		profile.Recommendations = append(profile.Recommendations, "inspect extruder gear and filament path")
	}

	if profile.Score < 0 {
		profile.Score = 0
	}

	return profile
}

// layerHeightDeltas выводит высоты слоев из журнала позиций: каждое
// строгое увеличение Z считается одним переходом слоя
func layerHeightDeltas(positions []entity.PositionSample) []float64 {
	var deltas []float64
	for i := 1; i < len(positions); i++ {
		prev := positions[i-1].Z()
		cur := positions[i].Z()
		if cur > prev {
			deltas = append(deltas, cur-prev)
		}
	}
	return deltas
}

// ScanCommonIssues проверяет независимый набор типовых проблем печати
// по текущим средним. Правила не взаимоисключающие: может сработать
// несколько одновременно.
func (a *QualityAnalyzer) ScanCommonIssues(buffer *TelemetryBuffer, env Environment) (issues, recommendations []string) {
	tempAvg := buffer.Average(valueobject.Temperature)
	flowAvg := buffer.Average(valueobject.MaterialFlow)
	humidity := buffer.Latest(valueobject.Humidity)

	if buffer.Len(valueobject.Temperature) > 0 && buffer.Len(valueobject.MaterialFlow) > 0 &&
		tempAvg < 200 && flowAvg < 400 {
		issues = append(issues, "possible under-extrusion")
		recommendations = append(recommendations, "raise nozzle temperature or check for partial clog")
	}

	if buffer.Len(valueobject.MaterialFlow) > 0 && flowAvg > 800 {
		issues = append(issues, "possible over-extrusion")
		recommendations = append(recommendations, "lower flow rate or calibrate e-steps")
	}

	if env.HasBed && env.HasAmbient && env.BedTemperature < 50 && env.AmbientTemperature < 20 {
		issues = append(issues, "warping risk: cold bed and ambient")
		recommendations = append(recommendations, "raise bed temperature or enclose the printer")
	}

	if humidity > 60 {
		issues = append(issues, "stringing risk: high humidity")
		recommendations = append(recommendations, "dry the filament before printing")
	}

	return issues, recommendations
}

// BuildReport собирает итоговый QualityReport.
// overallScore = округленное среднее трех суб-оценок.
func (a *QualityAnalyzer) BuildReport(buffer *TelemetryBuffer, env Environment, now time.Time) entity.QualityReport {
	temp := a.AnalyzeTemperature(buffer)
	vibration := a.AnalyzeVibration(buffer)
	layers := a.AnalyzeLayerQuality(buffer)

	issues := make([]string, 0)
	recommendations := make([]string, 0)
	issues = append(issues, temp.Issues...)
	issues = append(issues, vibration.Issues...)
	issues = append(issues, layers.Issues...)
	recommendations = append(recommendations, temp.Recommendations...)
	recommendations = append(recommendations, vibration.Recommendations...)
	recommendations = append(recommendations, layers.Recommendations...)

	commonIssues, commonRecs := a.ScanCommonIssues(buffer, env)
	issues = append(issues, commonIssues...)
	recommendations = append(recommendations, commonRecs...)

	overall := math.Round((temp.Stability + vibration.Score + layers.Score) / 3)

	return entity.QualityReport{
		Timestamp:       now,
		OverallScore:    overall,
		Grade:           valueobject.GradeForScore(overall),
		Issues:          issues,
		Recommendations: recommendations,
		Metrics: entity.QualityMetrics{
			TemperatureStability: temp.Stability,
			VibrationLevel:       vibration.Score,
			LayerQuality:         layers.Score,
		},
	}
}
