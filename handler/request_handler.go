package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"sevadesk/models"
	"sevadesk/service"

	"github.com/gorilla/mux"
)

// RequestHandler handles HTTP requests for citizen submissions and the
// priority queue.
type RequestHandler struct {
	requests *service.RequestService
	priority *service.PriorityService
}

// NewRequestHandler creates a new request handler
func NewRequestHandler(requests *service.RequestService, priority *service.PriorityService) *RequestHandler {
	return &RequestHandler{requests: requests, priority: priority}
}

// SubmitRequest handles POST /api/v1/requests
func (h *RequestHandler) SubmitRequest(w http.ResponseWriter, r *http.Request) {
	var form models.SubmitRequestForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Failed to parse request body")
		return
	}

	req, err := h.requests.Submit(&form, getClientIP(r))
	if err != nil {
		if models.IsValidationError(err) {
			respondWithError(w, http.StatusBadRequest, "Validation error", err.Error())
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to submit request")
		return
	}

	respondWithJSON(w, http.StatusCreated, models.SubmitRequestResponse{
		RequestID:  req.RequestID,
		Department: req.Department,
		Status:     string(req.Status),
		Message:    "Complaint submitted successfully",
	})
}

// TrackRequest handles GET /api/v1/requests/{id}
func (h *RequestHandler) TrackRequest(w http.ResponseWriter, r *http.Request) {
	requestID := mux.Vars(r)["id"]
	if requestID == "" {
		respondWithError(w, http.StatusBadRequest, "Bad Request", "request id required")
		return
	}

	resp, err := h.requests.Track(requestID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Not Found", "Request not found")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to look up request")
		return
	}

	respondWithJSON(w, http.StatusOK, resp)
}

// GetPriorityQueue handles GET /api/v1/requests/priority
// The backlog read is a snapshot at call time; a store failure degrades to
// an empty queue so the dashboard renders a "no data" state.
func (h *RequestHandler) GetPriorityQueue(w http.ResponseWriter, r *http.Request) {
	backlog, err := h.requests.Backlog()
	if err != nil {
		log.Printf("[requests] backlog read failed, serving empty queue: %v", err)
		backlog = nil
	}

	ranked := h.priority.Rank(backlog, time.Now())
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"count":    len(ranked),
		"requests": ranked,
	})
}

// getClientIP resolves the client address, preferring proxy headers.
func getClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	return r.RemoteAddr
}

// respondWithJSON sends a JSON response
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

// respondWithError sends an error response
func respondWithError(w http.ResponseWriter, statusCode int, errorType, message string) {
	respondWithJSON(w, statusCode, models.ErrorResponse{
		Error:   errorType,
		Message: message,
		Code:    statusCode,
	})
}
