package service

import "sevadesk/models"

// Narrow store contracts consumed by the services. The MySQL repositories
// satisfy them in production; tests substitute fakes without any
// process-wide state.

// RequestStore is the read/write contract for citizen service requests.
type RequestStore interface {
	ListRequests() ([]models.ServiceRequest, error)
	GetRequestByID(requestID string) (*models.ServiceRequest, error)
	InsertRequest(req *models.ServiceRequest) error
	GenerateRequestID() string
}

// AuditStore appends immutable audit entries.
type AuditStore interface {
	AppendEntry(entry *models.AuditLogEntry) error
}

// PredictionStore appends prediction records for the compliance trail.
type PredictionStore interface {
	AppendPrediction(rec *models.PredictionLog) error
}

// AssetStore reads infrastructure assets.
type AssetStore interface {
	ListAssets() ([]models.InfrastructureAsset, error)
}

// HealthStore reads health surveillance records.
type HealthStore interface {
	ListRecords() ([]models.HealthRecord, error)
}

// AnalystStore reads analyst accounts.
type AnalystStore interface {
	GetByEmail(email string) (*models.Analyst, error)
	GetByID(analystID int64) (*models.Analyst, error)
	TouchLastLogin(analystID int64) error
}
