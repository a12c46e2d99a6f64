package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Ofr3d/FADA/internal/application/usecase"
	"github.com/Ofr3d/FADA/internal/domain/service"
	"github.com/Ofr3d/FADA/pkg/logger"
)

// SessionHandler обрабатывает запросы жизненного цикла сессии печати
type SessionHandler struct {
	startUC *usecase.StartMonitoringUseCase
	stopUC  *usecase.StopMonitoringUseCase
	logger  *logger.Logger
}

type startSessionRequest struct {
	Name string `json:"name"`
}

// NewSessionHandler создает новый handler
func NewSessionHandler(
	startUC *usecase.StartMonitoringUseCase,
	stopUC *usecase.StopMonitoringUseCase,
	logger *logger.Logger,
) *SessionHandler {
	return &SessionHandler{
		startUC: startUC,
		stopUC:  stopUC,
		logger:  logger,
	}
}

// Start запускает мониторинг новой сессии
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	defer r.Body.Close()
	var req startSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "Missing required field: name", http.StatusBadRequest)
		return
	}

	session, err := h.startUC.Execute(r.Context(), usecase.StartMonitoringCommand{Name: req.Name})
	if err != nil {
		if errors.Is(err, service.ErrSessionActive) {
			http.Error(w, "Session already active", http.StatusConflict)
			return
		}
		h.logger.Error("Failed to start monitoring", err)
		http.Error(w, "Failed to start monitoring", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, session, h.logger)
}

// Stop завершает активную сессию и возвращает итоговый отчет
func (h *SessionHandler) Stop(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	report, err := h.stopUC.Execute(r.Context())
	if err != nil {
		if errors.Is(err, service.ErrNotMonitoring) {
			http.Error(w, "No active session", http.StatusConflict)
			return
		}
		h.logger.Error("Failed to stop monitoring", err)
		http.Error(w, "Failed to stop monitoring", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, report, h.logger)
}

// writeJSON кодирует payload в ответ
func writeJSON(w http.ResponseWriter, status int, payload any, log *logger.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error("Failed to encode response", err)
	}
}
