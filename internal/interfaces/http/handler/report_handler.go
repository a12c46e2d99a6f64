package handler

import (
	"errors"
	"net/http"

	"github.com/Ofr3d/FADA/internal/application/usecase"
	"github.com/Ofr3d/FADA/internal/domain/service"
	"github.com/Ofr3d/FADA/pkg/logger"
)

// ReportHandler обрабатывает запросы статуса, отчетов о качестве
// и статистики detections
type ReportHandler struct {
	statusUC      *usecase.GetStatusUseCase
	liveReportUC  *usecase.GetLiveReportUseCase
	finalReportUC *usecase.GetFinalReportUseCase
	statsUC       *usecase.GetDetectionStatsUseCase
	logger        *logger.Logger
}

// NewReportHandler создает новый handler
func NewReportHandler(
	statusUC *usecase.GetStatusUseCase,
	liveReportUC *usecase.GetLiveReportUseCase,
	finalReportUC *usecase.GetFinalReportUseCase,
	statsUC *usecase.GetDetectionStatsUseCase,
	logger *logger.Logger,
) *ReportHandler {
	return &ReportHandler{
		statusUC:      statusUC,
		liveReportUC:  liveReportUC,
		finalReportUC: finalReportUC,
		statsUC:       statsUC,
		logger:        logger,
	}
}

// GetStatus возвращает снимок состояния мониторинга
func (h *ReportHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	status, err := h.statusUC.Execute(r.Context())
	if err != nil {
		h.logger.Error("Failed to get status", err)
		http.Error(w, "Failed to get status", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, status, h.logger)
}

// GetLiveReport возвращает отчет по текущим данным активной сессии
func (h *ReportHandler) GetLiveReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	report, err := h.liveReportUC.Execute()
	if err != nil {
		if errors.Is(err, service.ErrNotMonitoring) {
			http.Error(w, "No active session", http.StatusConflict)
			return
		}
		h.logger.Error("Failed to build live report", err)
		http.Error(w, "Failed to build report", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, report, h.logger)
}

// GetFinalReport возвращает отчет последней завершенной сессии
func (h *ReportHandler) GetFinalReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	report, err := h.finalReportUC.Execute()
	if err != nil {
		if errors.Is(err, service.ErrNoCompletedSession) {
			http.Error(w, "No completed session", http.StatusNotFound)
			return
		}
		h.logger.Error("Failed to get final report", err)
		http.Error(w, "Failed to get report", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, report, h.logger)
}

// GetDetectionStats возвращает статистику обучающего цикла
func (h *ReportHandler) GetDetectionStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, h.statsUC.Execute(), h.logger)
}
