package handler

import (
	"net/http"
	"strconv"

	"sevadesk/repository"
)

// AuditHandler exposes the audit trail to operators.
type AuditHandler struct {
	auditRepo *repository.AuditLogRepository
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(auditRepo *repository.AuditLogRepository) *AuditHandler {
	return &AuditHandler{auditRepo: auditRepo}
}

// ListEntries handles GET /api/v1/audit?limit=N
func (h *AuditHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	entries, err := h.auditRepo.ListEntries(limit)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to read audit trail")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(entries),
		"entries": entries,
	})
}
