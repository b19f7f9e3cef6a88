package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"sevadesk/models"
)

// AnalystRepository handles analyst account lookups
type AnalystRepository struct {
	db *sql.DB
}

// NewAnalystRepository creates a new analyst repository
func NewAnalystRepository(db *sql.DB) *AnalystRepository {
	return &AnalystRepository{db: db}
}

// GetByEmail retrieves an analyst by email. Returns models.ErrNotFound when
// no account exists.
func (r *AnalystRepository) GetByEmail(email string) (*models.Analyst, error) {
	query := `
		SELECT analyst_id, email, password_hash, display_name, is_admin, created_at, last_login_at
		FROM analysts
		WHERE email = ?
	`

	var a models.Analyst
	err := r.db.QueryRow(query, email).Scan(
		&a.AnalystID, &a.Email, &a.PasswordHash, &a.DisplayName,
		&a.IsAdmin, &a.CreatedAt, &a.LastLoginAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get analyst: %w", err)
	}
	return &a, nil
}

// GetByID retrieves an analyst by id.
func (r *AnalystRepository) GetByID(analystID int64) (*models.Analyst, error) {
	query := `
		SELECT analyst_id, email, password_hash, display_name, is_admin, created_at, last_login_at
		FROM analysts
		WHERE analyst_id = ?
	`

	var a models.Analyst
	err := r.db.QueryRow(query, analystID).Scan(
		&a.AnalystID, &a.Email, &a.PasswordHash, &a.DisplayName,
		&a.IsAdmin, &a.CreatedAt, &a.LastLoginAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get analyst: %w", err)
	}
	return &a, nil
}

// TouchLastLogin updates the last login timestamp. Best-effort.
func (r *AnalystRepository) TouchLastLogin(analystID int64) error {
	_, err := r.db.Exec(`UPDATE analysts SET last_login_at = ? WHERE analyst_id = ?`, time.Now().UTC(), analystID)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return nil
}
