package port

import "github.com/Ofr3d/FADA/internal/application/dto"

// NotificationService определяет интерфейс для отправки уведомлений (Port)
// Реализация будет в Infrastructure слое (WebSocket Hub)
type NotificationService interface {
	// BroadcastStatus отправляет снимок состояния всем подключенным клиентам
	BroadcastStatus(status *dto.StatusDTO)

	// BroadcastAlert отправляет alert всем подключенным клиентам
	BroadcastAlert(alert *dto.AlertDTO)

	// BroadcastDetection отправляет detection всем подключенным клиентам
	BroadcastDetection(detection *dto.DetectionDTO)

	// ClientCount возвращает количество подключенных клиентов
	ClientCount() int
}
