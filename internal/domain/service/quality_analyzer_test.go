package service

import (
	"math"
	"testing"
	"time"

	"github.com/Ofr3d/FADA/internal/domain/entity"
	"github.com/Ofr3d/FADA/internal/domain/valueobject"
)

func fillChannel(t *testing.T, buffer *TelemetryBuffer, channel valueobject.Channel, values ...float64) {
	t.Helper()
	for _, v := range values {
		buffer.Record(mustSample(t, channel, v))
	}
}

func containsString(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}

func TestQualityAnalyzer_AnalyzeTemperature(t *testing.T) {
	analyzer := NewQualityAnalyzer()

	t.Run("stable in-band temperature", func(t *testing.T) {
		buffer := NewTelemetryBuffer()
		fillChannel(t, buffer, valueobject.Temperature, 200, 200, 200, 200)

		profile := analyzer.AnalyzeTemperature(buffer)
		if profile.Stability != 100 {
			t.Errorf("Stability = %v, want 100", profile.Stability)
		}
		if len(profile.Issues) != 0 {
			t.Errorf("Issues = %v, want none", profile.Issues)
		}
	})

	t.Run("fluctuating temperature floors at zero", func(t *testing.T) {
		buffer := NewTelemetryBuffer()
		fillChannel(t, buffer, valueobject.Temperature, 190, 210, 190, 210)

		profile := analyzer.AnalyzeTemperature(buffer)
		if profile.Stability != 0 {
			t.Errorf("Stability = %v, want 0 for stddev of 10", profile.Stability)
		}
		if !containsString(profile.Issues, "temperature fluctuations detected") {
			t.Errorf("Issues = %v, want fluctuation issue", profile.Issues)
		}
	})

	t.Run("average outside material band", func(t *testing.T) {
		buffer := NewTelemetryBuffer()
		fillChannel(t, buffer, valueobject.Temperature, 160, 160)

		profile := analyzer.AnalyzeTemperature(buffer)
		if profile.Stability != 100 {
			t.Errorf("Stability = %v, want 100 for stable readings", profile.Stability)
		}
		if !containsString(profile.Issues, "average temperature outside material range") {
			t.Errorf("Issues = %v, want out-of-band issue", profile.Issues)
		}
	})
}

func TestQualityAnalyzer_AnalyzeVibration(t *testing.T) {
	analyzer := NewQualityAnalyzer()

	t.Run("low vibration", func(t *testing.T) {
		buffer := NewTelemetryBuffer()
		fillChannel(t, buffer, valueobject.Vibration, 10, 10)

		profile := analyzer.AnalyzeVibration(buffer)
		if profile.Score != 90 {
			t.Errorf("Score = %v, want 90", profile.Score)
		}
		if len(profile.Issues) != 0 {
			t.Errorf("Issues = %v, want none", profile.Issues)
		}
	})

	t.Run("excessive average", func(t *testing.T) {
		buffer := NewTelemetryBuffer()
		fillChannel(t, buffer, valueobject.Vibration, 60, 60)

		profile := analyzer.AnalyzeVibration(buffer)
		if !containsString(profile.Issues, "excessive vibration level") {
			t.Errorf("Issues = %v, want excessive vibration issue", profile.Issues)
		}
	})

	t.Run("oscillation pattern", func(t *testing.T) {
		buffer := NewTelemetryBuffer()
		fillChannel(t, buffer, valueobject.Vibration, 0, 20, 0, 20, 0)

		profile := analyzer.AnalyzeVibration(buffer)
		if !containsString(profile.Issues, "periodic vibration pattern detected") {
			t.Errorf("Issues = %v, want oscillation issue", profile.Issues)
		}
	})
}

func TestHasOscillationPattern(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   bool
	}{
		{"too short", []float64{5}, false},
		{"smooth", []float64{0, 5, 0, 5, 0}, false},
		{"alternating spikes", []float64{0, 20, 0, 20, 0}, true},
		{"single spike below fraction", []float64{5, 5, 5, 5, 5, 5, 5, 5, 5, 20}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := hasOscillationPattern(tt.values); got != tt.want {
				t.Errorf("hasOscillationPattern(%v) = %v, want %v", tt.values, got, tt.want)
			}
		})
	}
}

func TestQualityAnalyzer_AnalyzeLayerQuality(t *testing.T) {
	analyzer := NewQualityAnalyzer()

	t.Run("no data keeps full score", func(t *testing.T) {
		buffer := NewTelemetryBuffer()

		profile := analyzer.AnalyzeLayerQuality(buffer)
		if profile.Score != 100 {
			t.Errorf("Score = %v, want 100", profile.Score)
		}
	})

	t.Run("inconsistent layer heights and unstable flow", func(t *testing.T) {
		buffer := NewTelemetryBuffer()
		// Переходы слоев 0.2 и 0.4 мм: stddev 0.1 > 0.05
		for i, z := range []float64{0.2, 0.4, 0.8, 1.0, 1.4} {
			buffer.RecordPosition(entity.NewPositionSample(0, 0, z, time.Now().Add(time.Duration(i)*time.Second)))
		}
		fillChannel(t, buffer, valueobject.MaterialFlow, 100, 130)

		profile := analyzer.AnalyzeLayerQuality(buffer)
		if profile.Score != 65 {
			t.Errorf("Score = %v, want 65 after both deductions", profile.Score)
		}
		if !containsString(profile.Issues, "inconsistent layer heights") {
			t.Errorf("Issues = %v, want layer height issue", profile.Issues)
		}
		if !containsString(profile.Issues, "unstable material flow") {
			t.Errorf("Issues = %v, want flow issue", profile.Issues)
		}
	})
}

func TestQualityAnalyzer_ScanCommonIssues(t *testing.T) {
	analyzer := NewQualityAnalyzer()

	t.Run("under-extrusion", func(t *testing.T) {
		buffer := NewTelemetryBuffer()
		fillChannel(t, buffer, valueobject.Temperature, 190)
		fillChannel(t, buffer, valueobject.MaterialFlow, 300)

		issues, _ := analyzer.ScanCommonIssues(buffer, Environment{})
		if !containsString(issues, "possible under-extrusion") {
			t.Errorf("issues = %v, want under-extrusion", issues)
		}
	})

	t.Run("over-extrusion", func(t *testing.T) {
		buffer := NewTelemetryBuffer()
		fillChannel(t, buffer, valueobject.MaterialFlow, 900)

		issues, _ := analyzer.ScanCommonIssues(buffer, Environment{})
		if !containsString(issues, "possible over-extrusion") {
			t.Errorf("issues = %v, want over-extrusion", issues)
		}
	})

	t.Run("warping requires both environment readings", func(t *testing.T) {
		buffer := NewTelemetryBuffer()

		issues, _ := analyzer.ScanCommonIssues(buffer, Environment{
			BedTemperature:     40,
			AmbientTemperature: 15,
			HasBed:             true,
			HasAmbient:         true,
		})
		if !containsString(issues, "warping risk: cold bed and ambient") {
			t.Errorf("issues = %v, want warping risk", issues)
		}

		issues, _ = analyzer.ScanCommonIssues(buffer, Environment{
			BedTemperature: 40,
			HasBed:         true,
		})
		if containsString(issues, "warping risk: cold bed and ambient") {
			t.Errorf("issues = %v, want no warping risk without ambient reading", issues)
		}
	})

	t.Run("stringing on high humidity", func(t *testing.T) {
		buffer := NewTelemetryBuffer()
		fillChannel(t, buffer, valueobject.Humidity, 70)

		issues, recommendations := analyzer.ScanCommonIssues(buffer, Environment{})
		if !containsString(issues, "stringing risk: high humidity") {
			t.Errorf("issues = %v, want stringing risk", issues)
		}
		if !containsString(recommendations, "dry the filament before printing") {
			t.Errorf("recommendations = %v, want drying advice", recommendations)
		}
	})

	t.Run("clean telemetry", func(t *testing.T) {
		buffer := NewTelemetryBuffer()
		fillChannel(t, buffer, valueobject.Temperature, 210)
		fillChannel(t, buffer, valueobject.MaterialFlow, 500)
		fillChannel(t, buffer, valueobject.Humidity, 40)

		issues, recommendations := analyzer.ScanCommonIssues(buffer, Environment{})
		if len(issues) != 0 || len(recommendations) != 0 {
			t.Errorf("ScanCommonIssues() = (%v, %v), want empty", issues, recommendations)
		}
	})
}

func TestQualityAnalyzer_BuildReport(t *testing.T) {
	analyzer := NewQualityAnalyzer()
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	t.Run("empty buffer scores perfect", func(t *testing.T) {
		buffer := NewTelemetryBuffer()

		report := analyzer.BuildReport(buffer, Environment{}, now)
		if report.OverallScore != 100 {
			t.Errorf("OverallScore = %v, want 100", report.OverallScore)
		}
		if report.Grade != valueobject.GradeExcellent {
			t.Errorf("Grade = %v, want %v", report.Grade, valueobject.GradeExcellent)
		}
		if !report.Timestamp.Equal(now) {
			t.Errorf("Timestamp = %v, want %v", report.Timestamp, now)
		}
	})

	t.Run("averages sub-scores and rounds", func(t *testing.T) {
		buffer := NewTelemetryBuffer()
		fillChannel(t, buffer, valueobject.Temperature, 190, 210, 190, 210)
		fillChannel(t, buffer, valueobject.Vibration, 10, 10)

		report := analyzer.BuildReport(buffer, Environment{}, now)

		// stability 0, vibration 90, layers 100 -> round(190/3) = 63
		if report.OverallScore != 63 {
			t.Errorf("OverallScore = %v, want 63", report.OverallScore)
		}
		if report.Grade != valueobject.GradePoor {
			t.Errorf("Grade = %v, want %v", report.Grade, valueobject.GradePoor)
		}
		if math.Abs(report.Metrics.TemperatureStability) > 1e-9 {
			t.Errorf("TemperatureStability = %v, want 0", report.Metrics.TemperatureStability)
		}
		if report.Metrics.VibrationLevel != 90 {
			t.Errorf("VibrationLevel = %v, want 90", report.Metrics.VibrationLevel)
		}
		if !containsString(report.Issues, "temperature fluctuations detected") {
			t.Errorf("Issues = %v, want temperature issue carried over", report.Issues)
		}
	})
}
