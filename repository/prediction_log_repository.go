package repository

import (
	"database/sql"
	"fmt"

	"sevadesk/models"
)

// PredictionLogRepository persists the compliance trail of AI predictions
type PredictionLogRepository struct {
	db *sql.DB
}

// NewPredictionLogRepository creates a new prediction log repository
func NewPredictionLogRepository(db *sql.DB) *PredictionLogRepository {
	return &PredictionLogRepository{db: db}
}

// AppendPrediction inserts one prediction record.
func (r *PredictionLogRepository) AppendPrediction(rec *models.PredictionLog) error {
	query := `
		INSERT INTO predictions_log (prediction_id, prediction_type, request_id, payload, used_fallback, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(
		query,
		rec.PredictionID,
		rec.PredictionType,
		rec.RequestID,
		rec.Payload,
		rec.UsedFallback,
		rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append prediction log: %w", err)
	}
	return nil
}
