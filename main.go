package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"time"

	"sevadesk/ai"
	"sevadesk/config"
	"sevadesk/repository"
	"sevadesk/routes"
	"sevadesk/schema"
	"sevadesk/service"
	"sevadesk/worker"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Load configuration
	cfg := config.LoadConfig()

	if cfg.AI.GeminiAPIKey == "" {
		log.Println("GEMINI_API_KEY not set: triage and forecast run in fallback-only mode")
	}

	// Initialize database connection (UTC for consistent timestamps)
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
	)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		log.Fatalf("Failed to open database connection: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	log.Println("Database connection established")

	// Ensure tables exist and required columns are present
	schema.InitializeDatabase(db)
	schema.ValidateRequiredColumns(db, nil)

	// Initialize repositories
	requestRepo := repository.NewRequestRepository(db)
	infraRepo := repository.NewInfrastructureRepository(db)
	healthRepo := repository.NewHealthRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)
	predictionRepo := repository.NewPredictionLogRepository(db)
	analystRepo := repository.NewAnalystRepository(db)

	// External model client; injected so tests can substitute fakes
	aiTimeout := time.Duration(cfg.AI.TimeoutSeconds) * time.Second
	model := ai.NewGeminiClient(cfg.AI.GeminiAPIKey, cfg.AI.Model, aiTimeout)
	genConfig := ai.GenerationConfig{
		Temperature:     cfg.AI.Temperature,
		TopP:            0.95,
		TopK:            40,
		MaxOutputTokens: cfg.AI.MaxOutputTokens,
	}

	// Initialize services
	auditService := service.NewAuditService(auditRepo)
	priorityService := service.NewPriorityService()
	requestService := service.NewRequestService(requestRepo, auditService)
	triageService := service.NewTriageService(model, auditService, predictionRepo, genConfig, aiTimeout)
	forecastService := service.NewForecastService(model, auditService, predictionRepo, genConfig, aiTimeout)
	statsService := service.NewStatsService(requestRepo, infraRepo, healthRepo)
	analystService := service.NewAnalystService(analystRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenExpiryHours)

	// Optional forecast snapshot worker (FORECAST_WORKER_INTERVAL_SECONDS > 0)
	if cfg.Worker.ForecastIntervalSeconds > 0 {
		forecastWorker := worker.NewForecastWorker(
			requestService,
			forecastService,
			time.Duration(cfg.Worker.ForecastIntervalSeconds)*time.Second,
		)
		forecastWorker.Start()
	}

	// Setup routes
	router := routes.SetupRoutes(
		requestService,
		priorityService,
		triageService,
		forecastService,
		statsService,
		analystService,
		auditRepo,
		cfg.Auth.AdminToken,
	)

	// Add CORS middleware
	corsHandler := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Max-Age", "3600")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}

	handler := corsHandler(router)

	// Start server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server starting on %s", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}
