package handler

import (
	"log"
	"net/http"

	"sevadesk/service"
)

// ForecastHandler handles backlog-wide demand forecasting.
type ForecastHandler struct {
	requests *service.RequestService
	forecast *service.ForecastService
}

// NewForecastHandler creates a new forecast handler
func NewForecastHandler(requests *service.RequestService, forecast *service.ForecastService) *ForecastHandler {
	return &ForecastHandler{requests: requests, forecast: forecast}
}

// GenerateForecast handles POST /api/v1/forecast
// A backlog read failure degrades to an empty batch, which yields the
// deterministic fallback forecast rather than an error.
func (h *ForecastHandler) GenerateForecast(w http.ResponseWriter, r *http.Request) {
	backlog, err := h.requests.Backlog()
	if err != nil {
		log.Printf("[forecast] backlog read failed, forecasting from empty batch: %v", err)
		backlog = nil
	}

	forecast := h.forecast.Forecast(r.Context(), backlog, actorRole(r), getClientIP(r))
	respondWithJSON(w, http.StatusOK, forecast)
}
