package repository

import (
	"database/sql"
	"fmt"

	"sevadesk/models"
)

// InfrastructureRepository provides read-only access to infrastructure assets
type InfrastructureRepository struct {
	db *sql.DB
}

// NewInfrastructureRepository creates a new infrastructure repository
func NewInfrastructureRepository(db *sql.DB) *InfrastructureRepository {
	return &InfrastructureRepository{db: db}
}

// ListAssets retrieves all assets ordered by risk score descending.
func (r *InfrastructureRepository) ListAssets() ([]models.InfrastructureAsset, error) {
	query := `
		SELECT asset_id, asset_type, location, asset_condition, risk_score, last_checked, notes
		FROM infrastructure_assets
		ORDER BY risk_score DESC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query infrastructure assets: %w", err)
	}
	defer rows.Close()

	var assets []models.InfrastructureAsset
	for rows.Next() {
		var asset models.InfrastructureAsset
		err := rows.Scan(
			&asset.AssetID, &asset.AssetType, &asset.Location, &asset.Condition,
			&asset.RiskScore, &asset.LastChecked, &asset.Notes,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan infrastructure asset: %w", err)
		}
		assets = append(assets, asset)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate infrastructure assets: %w", err)
	}

	return assets, nil
}
