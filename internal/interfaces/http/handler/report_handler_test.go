package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Ofr3d/FADA/internal/application/usecase"
	"github.com/Ofr3d/FADA/internal/domain/service"
	"github.com/Ofr3d/FADA/pkg/logger"
)

func newReportHandler(monitor *service.SessionMonitor) *ReportHandler {
	log := logger.New("error")
	return NewReportHandler(
		usecase.NewGetStatusUseCase(monitor, nil, nil, log),
		usecase.NewGetLiveReportUseCase(monitor, log),
		usecase.NewGetFinalReportUseCase(monitor, log),
		usecase.NewGetDetectionStatsUseCase(monitor.Detector(), log),
		log,
	)
}

func TestReportHandler_GetStatus(t *testing.T) {
	monitor := newTestSessionMonitor()
	h := newReportHandler(monitor)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
	w := httptest.NewRecorder()
	h.GetStatus(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var body struct {
		Monitoring bool `json:"monitoring"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Monitoring {
		t.Error("monitoring = true, want false for idle monitor")
	}
}

func TestReportHandler_GetLiveReportWithoutSession(t *testing.T) {
	h := newReportHandler(newTestSessionMonitor())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/report/live", nil)
	w := httptest.NewRecorder()
	h.GetLiveReport(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want %d", w.Code, http.StatusConflict)
	}
}

func TestReportHandler_GetFinalReport(t *testing.T) {
	monitor := newTestSessionMonitor()
	h := newReportHandler(monitor)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/report/final", nil)
	w := httptest.NewRecorder()
	h.GetFinalReport(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d before any completed session", w.Code, http.StatusNotFound)
	}

	if _, err := monitor.Start("benchy"); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if _, _, err := monitor.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}

	w = httptest.NewRecorder()
	h.GetFinalReport(w, httptest.NewRequest(http.MethodGet, "/api/v1/report/final", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var body struct {
		Grade string `json:"grade"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Grade == "" {
		t.Error("grade is empty")
	}
}

func TestReportHandler_GetDetectionStats(t *testing.T) {
	h := newReportHandler(newTestSessionMonitor())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/detections/stats", nil)
	w := httptest.NewRecorder()
	h.GetDetectionStats(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var body struct {
		TotalDetections int     `json:"total_detections"`
		Accuracy        float64 `json:"accuracy"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.TotalDetections != 0 {
		t.Errorf("total_detections = %d, want 0", body.TotalDetections)
	}
	if body.Accuracy != service.DefaultAccuracy {
		t.Errorf("accuracy = %v, want %v", body.Accuracy, service.DefaultAccuracy)
	}
}
