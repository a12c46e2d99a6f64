package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Ofr3d/FADA/internal/domain/entity"
	_ "github.com/lib/pq"
)

// PostgresDetectionArchive реализует port.DetectionArchive для PostgreSQL
type PostgresDetectionArchive struct {
	db *sql.DB
}

// NewPostgresDetectionArchive создает новый PostgreSQL archive
func NewPostgresDetectionArchive(db *sql.DB) *PostgresDetectionArchive {
	return &PostgresDetectionArchive{
		db: db,
	}
}

// SaveSession сохраняет завершенную сессию
func (r *PostgresDetectionArchive) SaveSession(ctx context.Context, session *entity.PrintSession) error {
	model := SessionToDBModel(session)

	query := `
		INSERT INTO print_sessions (id, name, start_time, end_time, status, progress)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE
		SET end_time = EXCLUDED.end_time, status = EXCLUDED.status, progress = EXCLUDED.progress
	`

	_, err := r.db.ExecContext(ctx, query,
		model.ID,
		model.Name,
		model.StartTime,
		model.EndTime,
		model.Status,
		model.Progress,
	)

	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}

	return nil
}

// SaveDetections сохраняет пачку detections одной транзакцией
func (r *PostgresDetectionArchive) SaveDetections(ctx context.Context, sessionID string, detections []*entity.Detection) error {
	if len(detections) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO detections (id, session_id, detected_at, layer, risk_score, confidence, action, urgency)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO NOTHING
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, detection := range detections {
		model := DetectionToDBModel(sessionID, detection)

		_, err = stmt.ExecContext(ctx,
			model.ID,
			model.SessionID,
			model.Timestamp,
			model.Layer,
			model.RiskScore,
			model.Confidence,
			model.Action,
			model.Urgency,
		)
		if err != nil {
			return fmt.Errorf("failed to insert detection: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// RecentDetections возвращает последние limit архивных detections
func (r *PostgresDetectionArchive) RecentDetections(ctx context.Context, limit int) ([]*entity.Detection, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, session_id, detected_at, layer, risk_score, confidence, action, urgency
		FROM detections
		ORDER BY detected_at DESC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query detections: %w", err)
	}
	defer rows.Close()

	var detections []*entity.Detection
	for rows.Next() {
		var model DetectionModel
		if err := rows.Scan(
			&model.ID,
			&model.SessionID,
			&model.Timestamp,
			&model.Layer,
			&model.RiskScore,
			&model.Confidence,
			&model.Action,
			&model.Urgency,
		); err != nil {
			return nil, fmt.Errorf("failed to scan detection row: %w", err)
		}

		detections = append(detections, DetectionFromDBModel(model))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate detection rows: %w", err)
	}

	return detections, nil
}
