package service

import (
	"fmt"
	"log"
	"time"

	"sevadesk/models"
	"sevadesk/utils"

	"github.com/google/uuid"
)

// AuditService records every triage/forecast/submission action as an
// immutable log entry. Entry creation always succeeds locally; persistence
// is best-effort and never blocks the triggering operation.
type AuditService struct {
	store AuditStore
}

// NewAuditService creates a new audit service
func NewAuditService(store AuditStore) *AuditService {
	return &AuditService{store: store}
}

// Record creates and persists one audit entry. subjectID is the request id
// the action touched, or empty for batch actions. The Success flag records
// that the action was logged, not whether any AI path succeeded.
func (s *AuditService) Record(action string, role models.UserRole, subjectID, clientIP string) *models.AuditLogEntry {
	if subjectID == "" {
		subjectID = "N/A"
	}

	now := time.Now().UTC()
	entry := &models.AuditLogEntry{
		// Timestamp plus a random component: concurrent calls in the same
		// second never collide.
		LogID:        fmt.Sprintf("LOG_%s_%s", now.Format("20060102150405"), uuid.New().String()[:8]),
		UserRole:     role,
		Action:       action,
		DataAccessed: subjectID,
		Timestamp:    now,
		IPHash:       utils.HashIP(clientIP),
		Success:      true,
	}

	if s.store != nil {
		if err := s.store.AppendEntry(entry); err != nil {
			// Best-effort: a failed persist must not fail the user-facing action.
			log.Printf("[audit] failed to persist entry %s: %v", entry.LogID, err)
		}
	}

	return entry
}
