package config

import (
	"os"
	"strconv"
)

// Config holds application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	AI       AIConfig
	Auth     AuthConfig
	Worker   WorkerConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Host string
}

// AIConfig holds the external model configuration.
// Generation parameters are fixed at values that keep numeric fields
// plausible while allowing varied phrasing.
type AIConfig struct {
	GeminiAPIKey    string  // GEMINI_API_KEY: empty disables the AI path entirely (fallback only)
	Model           string  // GEMINI_MODEL
	TimeoutSeconds  int     // AI_TIMEOUT_SECONDS: per-call deadline for model invocations
	Temperature     float64 // AI_TEMPERATURE
	MaxOutputTokens int     // AI_MAX_OUTPUT_TOKENS
}

// AuthConfig holds analyst/admin auth configuration
type AuthConfig struct {
	JWTSecret       string // JWT_SECRET: signs analyst tokens
	TokenExpiryHours int   // JWT_EXPIRY_HOURS
	AdminToken      string // ADMIN_TOKEN: static bearer token for operator endpoints
}

// WorkerConfig holds background worker configuration
type WorkerConfig struct {
	ForecastIntervalSeconds int // FORECAST_WORKER_INTERVAL_SECONDS: 0 disables the snapshot worker
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "127.0.0.1"),
			Port:     getEnv("DB_PORT", "3306"),
			User:     getEnv("DB_USER", "root"),
			Password: os.Getenv("DB_PASSWORD"),
			DBName:   getEnv("DB_NAME", "sevadesk"),
		},
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("PORT", getEnv("SERVER_PORT", "8080")),
		},
		AI: AIConfig{
			GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
			Model:           getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
			TimeoutSeconds:  getEnvInt("AI_TIMEOUT_SECONDS", 30),
			Temperature:     getEnvFloat("AI_TEMPERATURE", 0.7),
			MaxOutputTokens: getEnvInt("AI_MAX_OUTPUT_TOKENS", 2048),
		},
		Auth: AuthConfig{
			JWTSecret:        getEnv("JWT_SECRET", "pilot-secret-key-change-in-production"),
			TokenExpiryHours: getEnvInt("JWT_EXPIRY_HOURS", 24),
			AdminToken:       os.Getenv("ADMIN_TOKEN"),
		},
		Worker: WorkerConfig{
			ForecastIntervalSeconds: getEnvInt("FORECAST_WORKER_INTERVAL_SECONDS", 0),
		},
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvFloat gets a float environment variable or returns a default value
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}
