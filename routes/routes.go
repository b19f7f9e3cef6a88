package routes

import (
	"net/http"

	"sevadesk/handler"
	"sevadesk/middleware"
	"sevadesk/repository"
	"sevadesk/service"

	"github.com/gorilla/mux"
)

// SetupRoutes configures all API routes
func SetupRoutes(
	requestService *service.RequestService,
	priorityService *service.PriorityService,
	triageService *service.TriageService,
	forecastService *service.ForecastService,
	statsService *service.StatsService,
	analystService *service.AnalystService,
	auditRepo *repository.AuditLogRepository,
	adminToken string,
) *mux.Router {
	router := mux.NewRouter()

	requestHandler := handler.NewRequestHandler(requestService, priorityService)
	triageHandler := handler.NewTriageHandler(requestService, triageService)
	forecastHandler := handler.NewForecastHandler(requestService, forecastService)
	statsHandler := handler.NewStatsHandler(statsService)
	auditHandler := handler.NewAuditHandler(auditRepo)
	authHandler := handler.NewAuthHandler(analystService)

	authMiddleware := middleware.NewAuthMiddleware(analystService)

	apiV1 := router.PathPrefix("/api/v1").Subrouter()

	// Citizen-facing routes (public)
	requests := apiV1.PathPrefix("/requests").Subrouter()

	// POST /api/v1/requests - submit a new complaint
	requests.HandleFunc("", requestHandler.SubmitRequest).Methods("POST")

	// GET /api/v1/requests/priority - ranked backlog (analyst dashboard)
	requests.Handle("/priority", authMiddleware.RequireAnalyst(http.HandlerFunc(requestHandler.GetPriorityQueue))).Methods("GET")

	// GET /api/v1/requests/{id} - track a request (citizen view, public)
	requests.HandleFunc("/{id}", requestHandler.TrackRequest).Methods("GET")

	// POST /api/v1/requests/{id}/triage - AI triage for one request (analyst)
	requests.Handle("/{id}/triage", authMiddleware.RequireAnalyst(http.HandlerFunc(triageHandler.AnalyzeRequest))).Methods("POST")

	// POST /api/v1/forecast - 7-day demand forecast over the backlog (analyst)
	apiV1.Handle("/forecast", authMiddleware.RequireAnalyst(http.HandlerFunc(forecastHandler.GenerateForecast))).Methods("POST")

	// Dashboard aggregates (analyst)
	stats := apiV1.PathPrefix("/stats").Subrouter()
	stats.Handle("/summary", authMiddleware.RequireAnalyst(http.HandlerFunc(statsHandler.GetSummary))).Methods("GET")
	stats.Handle("/risk", authMiddleware.RequireAnalyst(http.HandlerFunc(statsHandler.GetRiskAssessment))).Methods("GET")

	// Analyst login
	apiV1.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Audit trail (trusted internal operator only)
	apiV1.Handle("/audit", middleware.RequireAdmin(adminToken, http.HandlerFunc(auditHandler.ListEntries))).Methods("GET")

	return router
}
