package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Ofr3d/FADA/internal/application/usecase"
	"github.com/Ofr3d/FADA/internal/domain/service"
	"github.com/Ofr3d/FADA/pkg/logger"
)

// FeedbackHandler обрабатывает отзывы оператора об исходах detections
type FeedbackHandler struct {
	reportUC *usecase.ReportOutcomeUseCase
	resetUC  *usecase.ResetFeedbackUseCase
	logger   *logger.Logger
}

type reportOutcomeRequest struct {
	WasActualFailure *bool `json:"was_actual_failure"`
}

// NewFeedbackHandler создает новый handler
func NewFeedbackHandler(
	reportUC *usecase.ReportOutcomeUseCase,
	resetUC *usecase.ResetFeedbackUseCase,
	logger *logger.Logger,
) *FeedbackHandler {
	return &FeedbackHandler{
		reportUC: reportUC,
		resetUC:  resetUC,
		logger:   logger,
	}
}

// ReportOutcome фиксирует подтвержденный оператором исход
func (h *FeedbackHandler) ReportOutcome(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	defer r.Body.Close()
	var req reportOutcomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.WasActualFailure == nil {
		http.Error(w, "Missing required field: was_actual_failure", http.StatusBadRequest)
		return
	}

	err := h.reportUC.Execute(usecase.ReportOutcomeCommand{WasActualFailure: *req.WasActualFailure})
	if err != nil {
		if errors.Is(err, service.ErrNoDetections) {
			http.Error(w, "No detections to report on", http.StatusConflict)
			return
		}
		h.logger.Error("Failed to record feedback", err)
		http.Error(w, "Failed to record feedback", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Reset сбрасывает накопленную статистику отзывов
func (h *FeedbackHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	h.resetUC.Execute()
	w.WriteHeader(http.StatusNoContent)
}
