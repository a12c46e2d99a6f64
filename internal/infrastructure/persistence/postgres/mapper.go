package postgres

import (
	"time"

	"github.com/Ofr3d/FADA/internal/domain/entity"
	"github.com/Ofr3d/FADA/internal/domain/valueobject"
)

// SessionModel — строка таблицы sessions
type SessionModel struct {
	ID        string
	Name      string
	StartTime time.Time
	EndTime   *time.Time
	Status    string
	Progress  int
}

// DetectionModel — строка таблицы detections
type DetectionModel struct {
	ID         string
	SessionID  string
	Timestamp  time.Time
	Layer      int
	RiskScore  float64
	Confidence float64
	Action     string
	Urgency    string
}

// SessionToDBModel конвертирует Domain Entity в модель БД
func SessionToDBModel(session *entity.PrintSession) SessionModel {
	model := SessionModel{
		ID:        session.ID(),
		Name:      session.Name(),
		StartTime: session.StartTime(),
		Status:    session.Status().String(),
		Progress:  session.Progress(),
	}

	if end := session.EndTime(); !end.IsZero() {
		model.EndTime = &end
	}

	return model
}

// DetectionToDBModel конвертирует Detection в модель БД
func DetectionToDBModel(sessionID string, d *entity.Detection) DetectionModel {
	rec := d.Recommendation()

	return DetectionModel{
		ID:         d.ID(),
		SessionID:  sessionID,
		Timestamp:  d.Timestamp(),
		Layer:      d.Layer(),
		RiskScore:  d.RiskScore(),
		Confidence: d.Confidence(),
		Action:     rec.Action.String(),
		Urgency:    rec.Urgency.String(),
	}
}

// DetectionFromDBModel восстанавливает Detection из модели БД
func DetectionFromDBModel(model DetectionModel) *entity.Detection {
	return entity.ReconstructDetection(
		model.ID,
		model.Timestamp,
		model.Layer,
		model.RiskScore,
		model.Confidence,
		entity.Recommendation{
			Action:  valueobject.RecommendedAction(model.Action),
			Urgency: valueobject.Urgency(model.Urgency),
		},
	)
}
