package repository

import (
	"database/sql"
	"fmt"

	"sevadesk/models"
)

// AuditLogRepository handles the append-only audit trail
type AuditLogRepository struct {
	db *sql.DB
}

// NewAuditLogRepository creates a new audit log repository
func NewAuditLogRepository(db *sql.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

// AppendEntry inserts an audit entry. Entries are immutable: there are no
// update or delete paths.
func (r *AuditLogRepository) AppendEntry(entry *models.AuditLogEntry) error {
	query := `
		INSERT INTO audit_logs (log_id, user_role, action, data_accessed, timestamp, ip_hash, success)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(
		query,
		entry.LogID,
		entry.UserRole,
		entry.Action,
		entry.DataAccessed,
		entry.Timestamp,
		entry.IPHash,
		entry.Success,
	)
	if err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	return nil
}

// ListEntries retrieves the most recent audit entries, newest first.
func (r *AuditLogRepository) ListEntries(limit int) ([]models.AuditLogEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `
		SELECT log_id, user_role, action, data_accessed, timestamp, ip_hash, success
		FROM audit_logs
		ORDER BY timestamp DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit entries: %w", err)
	}
	defer rows.Close()

	var entries []models.AuditLogEntry
	for rows.Next() {
		var entry models.AuditLogEntry
		var role string
		err := rows.Scan(
			&entry.LogID, &role, &entry.Action, &entry.DataAccessed,
			&entry.Timestamp, &entry.IPHash, &entry.Success,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		entry.UserRole = models.UserRole(role)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate audit entries: %w", err)
	}

	return entries, nil
}
