package dto

import (
	"time"

	"github.com/Ofr3d/FADA/internal/domain/entity"
	"github.com/Ofr3d/FADA/internal/domain/service"
)

// SessionDTO представляет сессию печати для передачи между слоями
type SessionDTO struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	Status    string     `json:"status"`
	Progress  int        `json:"progress"`
}

// SessionFromEntity конвертирует Domain Entity в DTO
func SessionFromEntity(session *entity.PrintSession) *SessionDTO {
	if session == nil {
		return nil
	}

	dto := &SessionDTO{
		ID:        session.ID(),
		Name:      session.Name(),
		StartTime: session.StartTime(),
		Status:    session.Status().String(),
		Progress:  session.Progress(),
	}

	if end := session.EndTime(); !end.IsZero() {
		dto.EndTime = &end
	}

	return dto
}

// AlertDTO представляет alert для отправки клиентам
type AlertDTO struct {
	Type      string    `json:"type"`
	Severity  string    `json:"severity"`
	Message   string    `json:"message"`
	Value     float64   `json:"value"`
	Timestamp time.Time `json:"timestamp"`
}

// AlertFromEntity конвертирует alert в DTO
func AlertFromEntity(alert entity.Alert) *AlertDTO {
	return &AlertDTO{
		Type:      alert.Type(),
		Severity:  alert.Severity().String(),
		Message:   alert.Message(),
		Value:     alert.Value(),
		Timestamp: alert.Timestamp(),
	}
}

// ToAlertDTOs конвертирует слайс alerts в слайс DTO
func ToAlertDTOs(alerts []entity.Alert) []*AlertDTO {
	dtos := make([]*AlertDTO, len(alerts))
	for i, a := range alerts {
		dtos[i] = AlertFromEntity(a)
	}
	return dtos
}

// HostHealthDTO — самочувствие хоста evaluator
type HostHealthDTO struct {
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
}

// StatusDTO представляет снимок состояния мониторинга
type StatusDTO struct {
	Monitoring      bool           `json:"monitoring"`
	Session         *SessionDTO    `json:"session,omitempty"`
	RuntimeMs       int64          `json:"runtime_ms"`
	RecentAlerts    []*AlertDTO    `json:"recent_alerts"`
	DataPointCounts map[string]int `json:"data_point_counts"`
	Host            *HostHealthDTO `json:"host,omitempty"`
}

// StatusFromMonitor конвертирует снимок монитора в DTO
func StatusFromMonitor(status service.MonitorStatus) *StatusDTO {
	counts := make(map[string]int, len(status.DataPointCounts))
	for ch, n := range status.DataPointCounts {
		counts[ch.String()] = n
	}

	return &StatusDTO{
		Monitoring:      status.Monitoring,
		Session:         SessionFromEntity(status.Session),
		RuntimeMs:       status.Runtime.Milliseconds(),
		RecentAlerts:    ToAlertDTOs(status.RecentAlerts),
		DataPointCounts: counts,
	}
}
