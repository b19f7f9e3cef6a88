package handler

import (
	"net/http"

	"sevadesk/service"
)

// StatsHandler handles dashboard aggregates and risk views.
type StatsHandler struct {
	stats *service.StatsService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(stats *service.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// GetSummary handles GET /api/v1/stats/summary
func (h *StatsHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.stats.Summarize()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to compute statistics")
		return
	}
	respondWithJSON(w, http.StatusOK, summary)
}

// GetRiskAssessment handles GET /api/v1/stats/risk
func (h *StatsHandler) GetRiskAssessment(w http.ResponseWriter, r *http.Request) {
	assessment, err := h.stats.RiskAssessment()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to read risk data")
		return
	}
	respondWithJSON(w, http.StatusOK, assessment)
}
