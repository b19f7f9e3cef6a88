package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"sevadesk/models"
	"sevadesk/service"
)

// AuthHandler handles analyst login.
type AuthHandler struct {
	analysts *service.AnalystService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(analysts *service.AnalystService) *AuthHandler {
	return &AuthHandler{analysts: analysts}
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Failed to parse request body")
		return
	}

	resp, err := h.analysts.Login(&req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondWithError(w, http.StatusUnauthorized, "Unauthorized", "Invalid email or password")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Internal Server Error", "Login failed")
		return
	}

	respondWithJSON(w, http.StatusOK, resp)
}
