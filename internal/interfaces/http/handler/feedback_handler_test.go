package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Ofr3d/FADA/internal/application/usecase"
	"github.com/Ofr3d/FADA/internal/domain/entity"
	"github.com/Ofr3d/FADA/internal/domain/service"
	"github.com/Ofr3d/FADA/pkg/logger"
)

func newFeedbackHandler(detector *service.RiskDetector) *FeedbackHandler {
	log := logger.New("error")
	return NewFeedbackHandler(
		usecase.NewReportOutcomeUseCase(detector, log),
		usecase.NewResetFeedbackUseCase(detector, log),
		log,
	)
}

func TestFeedbackHandler_ReportOutcome(t *testing.T) {
	detector := service.NewRiskDetector(nil)
	detector.Evaluate(entity.StructuralSnapshot{}, service.NewTelemetryBuffer(), entity.VisualSignal{}, 10, time.Now())
	h := newFeedbackHandler(detector)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/feedback",
		strings.NewReader(`{"was_actual_failure":true}`))
	w := httptest.NewRecorder()
	h.ReportOutcome(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusNoContent, w.Body.String())
	}

	tp, fp := detector.Feedback().Counters()
	if tp != 1 || fp != 0 {
		t.Errorf("counters = (%d, %d), want (1, 0)", tp, fp)
	}
}

func TestFeedbackHandler_ReportOutcomeValidation(t *testing.T) {
	tests := []struct {
		name   string
		method string
		body   string
		want   int
	}{
		{"wrong method", http.MethodGet, "", http.StatusMethodNotAllowed},
		{"invalid json", http.MethodPost, "{", http.StatusBadRequest},
		{"missing field", http.MethodPost, `{}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newFeedbackHandler(service.NewRiskDetector(nil))

			req := httptest.NewRequest(tt.method, "/api/v1/feedback", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			h.ReportOutcome(w, req)

			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestFeedbackHandler_ReportOutcomeWithoutDetections(t *testing.T) {
	h := newFeedbackHandler(service.NewRiskDetector(nil))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/feedback",
		strings.NewReader(`{"was_actual_failure":false}`))
	w := httptest.NewRecorder()
	h.ReportOutcome(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want %d", w.Code, http.StatusConflict)
	}
}

func TestFeedbackHandler_Reset(t *testing.T) {
	detector := service.NewRiskDetector(nil)
	detector.Feedback().Report(false)
	h := newFeedbackHandler(detector)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/feedback/reset", nil)
	w := httptest.NewRecorder()
	h.Reset(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNoContent)
	}
	if got := detector.Feedback().Accuracy(); got != service.DefaultAccuracy {
		t.Errorf("Accuracy() = %v, want %v after reset", got, service.DefaultAccuracy)
	}
}
