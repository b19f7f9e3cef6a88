package repository

import (
	"database/sql"
	"fmt"

	"sevadesk/models"
)

// HealthRepository provides read-only access to health surveillance records
type HealthRepository struct {
	db *sql.DB
}

// NewHealthRepository creates a new health repository
func NewHealthRepository(db *sql.DB) *HealthRepository {
	return &HealthRepository{db: db}
}

// ListRecords retrieves all surveillance records, most recent first.
func (r *HealthRepository) ListRecords() ([]models.HealthRecord, error) {
	query := `
		SELECT record_id, disease_type, city, cases_reported, alert_level,
			trend, action_taken, date_reported
		FROM health_surveillance
		ORDER BY date_reported DESC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query health records: %w", err)
	}
	defer rows.Close()

	var records []models.HealthRecord
	for rows.Next() {
		var rec models.HealthRecord
		err := rows.Scan(
			&rec.RecordID, &rec.DiseaseType, &rec.City, &rec.CasesReported,
			&rec.AlertLevel, &rec.Trend, &rec.ActionTaken, &rec.DateReported,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan health record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate health records: %w", err)
	}

	return records, nil
}
