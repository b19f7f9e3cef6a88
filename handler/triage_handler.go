package handler

import (
	"errors"
	"net/http"

	"sevadesk/middleware"
	"sevadesk/models"
	"sevadesk/service"

	"github.com/gorilla/mux"
)

// TriageHandler handles per-request AI triage.
type TriageHandler struct {
	requests *service.RequestService
	triage   *service.TriageService
}

// NewTriageHandler creates a new triage handler
func NewTriageHandler(requests *service.RequestService, triage *service.TriageService) *TriageHandler {
	return &TriageHandler{requests: requests, triage: triage}
}

// AnalyzeRequest handles POST /api/v1/requests/{id}/triage
// The response is always a structurally valid prediction: callers cannot
// tell an AI answer from a fallback answer by shape alone.
func (h *TriageHandler) AnalyzeRequest(w http.ResponseWriter, r *http.Request) {
	requestID := mux.Vars(r)["id"]
	if requestID == "" {
		respondWithError(w, http.StatusBadRequest, "Bad Request", "request id required")
		return
	}

	req, err := h.requests.Get(requestID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Not Found", "Request not found")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to look up request")
		return
	}

	prediction := h.triage.Analyze(r.Context(), req, actorRole(r), getClientIP(r))
	respondWithJSON(w, http.StatusOK, prediction)
}

// actorRole resolves the audited role from the authenticated analyst.
func actorRole(r *http.Request) models.UserRole {
	if analyst, ok := middleware.AnalystFromContext(r.Context()); ok {
		if analyst.IsAdmin {
			return models.RoleAdmin
		}
		return models.RoleAnalyst
	}
	return models.RoleAnalyst
}
