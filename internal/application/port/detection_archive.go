package port

import (
	"context"

	"github.com/Ofr3d/FADA/internal/domain/entity"
)

// DetectionArchive определяет интерфейс для архивации результатов
// мониторинга (Port). Ядро работает in-memory; архив — аудиторский след.
type DetectionArchive interface {
	// SaveSession сохраняет завершенную сессию
	SaveSession(ctx context.Context, session *entity.PrintSession) error

	// SaveDetections сохраняет пачку detections, привязанных к сессии
	SaveDetections(ctx context.Context, sessionID string, detections []*entity.Detection) error

	// RecentDetections возвращает последние limit архивных detections
	RecentDetections(ctx context.Context, limit int) ([]*entity.Detection, error)
}
