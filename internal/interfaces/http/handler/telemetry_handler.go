package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Ofr3d/FADA/internal/application/usecase"
	"github.com/Ofr3d/FADA/internal/domain/entity"
	"github.com/Ofr3d/FADA/internal/metrics"
	"github.com/Ofr3d/FADA/pkg/logger"
)

// TelemetryHandler обрабатывает входящие потоки телеметрии:
// наблюдения шлюза сенсоров, обновления device-communication,
// структурные метаданные и визуальные сигналы
type TelemetryHandler struct {
	sensorUC     *usecase.IngestSensorSampleUseCase
	printerUC    *usecase.IngestPrinterTelemetryUseCase
	structuralUC *usecase.RegisterStructuralSnapshotUseCase
	visualUC     *usecase.PushVisualSignalUseCase
	metrics      *metrics.Metrics
	logger       *logger.Logger
}

type sensorSampleRequest struct {
	Channel   string  `json:"channel"`
	Value     float64 `json:"value"`
	Timestamp string  `json:"timestamp,omitempty"`
}

type printerTelemetryRequest struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z"`
	HotendTemp float64 `json:"hotend_temp"`
	BedTemp    float64 `json:"bed_temp"`
	Timestamp  string  `json:"timestamp,omitempty"`
}

type structuralSnapshotRequest struct {
	Layer              int     `json:"layer"`
	OverhangCount      int     `json:"overhang_count"`
	BridgeCount        int     `json:"bridge_count"`
	SmallFeatureCount  int     `json:"small_feature_count"`
	SolidInfillFrac    float64 `json:"solid_infill_frac"`
	HasSupportMaterial bool    `json:"has_support_material"`
}

type visualSignalRequest struct {
	Confidence float64  `json:"confidence"`
	Patterns   []string `json:"patterns,omitempty"`
}

// NewTelemetryHandler создает новый handler
func NewTelemetryHandler(
	sensorUC *usecase.IngestSensorSampleUseCase,
	printerUC *usecase.IngestPrinterTelemetryUseCase,
	structuralUC *usecase.RegisterStructuralSnapshotUseCase,
	visualUC *usecase.PushVisualSignalUseCase,
	metrics *metrics.Metrics,
	logger *logger.Logger,
) *TelemetryHandler {
	return &TelemetryHandler{
		sensorUC:     sensorUC,
		printerUC:    printerUC,
		structuralUC: structuralUC,
		visualUC:     visualUC,
		metrics:      metrics,
		logger:       logger,
	}
}

// IngestSensor принимает одно наблюдение шлюза сенсоров
func (h *TelemetryHandler) IngestSensor(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	defer r.Body.Close()
	var req sensorSampleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	timestamp, err := parseTimestamp(req.Timestamp)
	if err != nil {
		http.Error(w, "Invalid timestamp format", http.StatusBadRequest)
		return
	}

	result, err := h.sensorUC.Execute(r.Context(), usecase.IngestSensorSampleCommand{
		Channel:   req.Channel,
		Value:     req.Value,
		Timestamp: timestamp,
	})
	if err != nil {
		http.Error(w, "Unknown sensor channel", http.StatusBadRequest)
		return
	}

	if h.metrics != nil && result.Recorded {
		h.metrics.SensorSamplesTotal.WithLabelValues(req.Channel).Inc()
		for _, alert := range result.Alerts {
			h.metrics.AlertsTotal.WithLabelValues(alert.Severity).Inc()
		}
	}

	writeJSON(w, http.StatusAccepted, result, h.logger)
}

// IngestPrinter принимает одно обновление телеметрии принтера
func (h *TelemetryHandler) IngestPrinter(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	defer r.Body.Close()
	var req printerTelemetryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	timestamp, err := parseTimestamp(req.Timestamp)
	if err != nil {
		http.Error(w, "Invalid timestamp format", http.StatusBadRequest)
		return
	}

	result, err := h.printerUC.Execute(r.Context(), usecase.IngestPrinterTelemetryCommand{
		X:          req.X,
		Y:          req.Y,
		Z:          req.Z,
		HotendTemp: req.HotendTemp,
		BedTemp:    req.BedTemp,
		Timestamp:  timestamp,
	})
	if err != nil {
		h.logger.Error("Failed to ingest printer telemetry", err)
		http.Error(w, "Failed to ingest telemetry", http.StatusInternalServerError)
		return
	}

	if h.metrics != nil && result.Recorded {
		h.metrics.PrinterUpdates.Inc()
		for _, alert := range result.Alerts {
			h.metrics.AlertsTotal.WithLabelValues(alert.Severity).Inc()
		}
		if result.Detection != nil {
			h.metrics.EvaluationsTotal.Inc()
			if result.Detection.Recommendation.Action == "immediate_intervention" {
				h.metrics.InterventionsTotal.Inc()
			}
		}
	}

	writeJSON(w, http.StatusAccepted, result, h.logger)
}

// RegisterStructural регистрирует структурные метаданные слоя
func (h *TelemetryHandler) RegisterStructural(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	defer r.Body.Close()
	var req structuralSnapshotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	err := h.structuralUC.Execute(usecase.RegisterStructuralSnapshotCommand{
		Layer: req.Layer,
		Snapshot: entity.StructuralSnapshot{
			OverhangCount:      req.OverhangCount,
			BridgeCount:        req.BridgeCount,
			SmallFeatureCount:  req.SmallFeatureCount,
			SolidInfillFrac:    req.SolidInfillFrac,
			HasSupportMaterial: req.HasSupportMaterial,
		},
	})
	if err != nil {
		http.Error(w, "Invalid layer index", http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// PushVisual принимает сигнал визуальной инспекции
func (h *TelemetryHandler) PushVisual(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	defer r.Body.Close()
	var req visualSignalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.visualUC.Execute(usecase.PushVisualSignalCommand{
		Confidence: req.Confidence,
		Patterns:   req.Patterns,
	}); err != nil {
		h.logger.Error("Failed to push visual signal", err)
		http.Error(w, "Failed to push visual signal", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// parseTimestamp разбирает опциональный RFC3339 timestamp.
// Пустое значение означает "сейчас".
func parseTimestamp(value string) (time.Time, error) {
	if value == "" {
		return time.Now(), nil
	}
	return time.Parse(time.RFC3339, value)
}
