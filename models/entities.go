package models

import (
	"database/sql"
	"time"
)

// Severity is the ordered urgency classification of a service request.
type Severity string

const (
	SeverityLow      Severity = "Low"
	SeverityMedium   Severity = "Medium"
	SeverityHigh     Severity = "High"
	SeverityCritical Severity = "Critical"
)

// ParseSeverity maps free-form input to a known severity.
// Unknown values default to Medium so scoring stays total.
func ParseSeverity(s string) Severity {
	switch Severity(s) {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return Severity(s)
	default:
		return SeverityMedium
	}
}

// IsValidSeverity reports whether s is one of the four known severity levels.
func IsValidSeverity(s string) bool {
	switch Severity(s) {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// RequestStatus represents the lifecycle state of a service request.
// Transitions move forward only: Open -> In Progress -> Resolved.
type RequestStatus string

const (
	StatusOpen       RequestStatus = "Open"
	StatusInProgress RequestStatus = "In Progress"
	StatusResolved   RequestStatus = "Resolved"
)

// UserRole identifies who performed an audited action.
type UserRole string

const (
	RoleCitizen UserRole = "Citizen"
	RoleAnalyst UserRole = "Analyst"
	RoleAdmin   UserRole = "Admin"
	RoleSystem  UserRole = "System"
)

// ServiceRequest represents a citizen complaint.
// Name and phone are stored only as one-way hashes; the plaintext is
// discarded at submission time and never reaches this struct.
type ServiceRequest struct {
	RequestID       string          `db:"request_id" json:"request_id"`
	CitizenNameHash string          `db:"citizen_name_hash" json:"citizen_name_hash"`
	PhoneHash       string          `db:"phone_hash" json:"phone_hash"`
	Email           sql.NullString  `db:"email" json:"email,omitempty"`
	ComplaintType   string          `db:"complaint_type" json:"complaint_type"`
	Description     string          `db:"description" json:"description"`
	City            string          `db:"city" json:"city"`
	Ward            string          `db:"ward" json:"ward"`
	District        string          `db:"district" json:"district"`
	Severity        Severity        `db:"severity" json:"severity"`
	Status          RequestStatus   `db:"status" json:"status"`
	AffectedCount   int             `db:"affected_count" json:"affected_count"`
	Department      string          `db:"department" json:"department"`
	DateSubmitted   time.Time       `db:"date_submitted" json:"date_submitted"`
	PriorityScore   sql.NullFloat64 `db:"priority_score" json:"priority_score,omitempty"`
	ResolvedDate    sql.NullTime    `db:"resolved_date" json:"resolved_date,omitempty"`
}

// DaysOpen returns whole days between date_submitted and now, clamped to >= 0.
// A derived view recomputed on every read, never stored as authoritative.
func (r *ServiceRequest) DaysOpen(now time.Time) int {
	days := int(now.Sub(r.DateSubmitted).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// InfrastructureAsset is a read-only record consumed for risk display.
type InfrastructureAsset struct {
	AssetID     string         `db:"asset_id" json:"asset_id"`
	AssetType   string         `db:"asset_type" json:"asset_type"`
	Location    string         `db:"location" json:"location"`
	Condition   string         `db:"condition" json:"condition"`
	RiskScore   float64        `db:"risk_score" json:"risk_score"`
	LastChecked sql.NullTime   `db:"last_checked" json:"last_checked,omitempty"`
	Notes       sql.NullString `db:"notes" json:"notes,omitempty"`
}

// HealthRecord is a read-only disease surveillance record.
type HealthRecord struct {
	RecordID      string    `db:"record_id" json:"record_id"`
	DiseaseType   string    `db:"disease_type" json:"disease_type"`
	City          string    `db:"city" json:"city"`
	CasesReported int       `db:"cases_reported" json:"cases_reported"`
	AlertLevel    string    `db:"alert_level" json:"alert_level"`
	Trend         string    `db:"trend" json:"trend"`
	ActionTaken   string    `db:"action_taken" json:"action_taken"`
	DateReported  time.Time `db:"date_reported" json:"date_reported"`
}

// AuditLogEntry is an append-only record of a user-facing action.
// Entries are never mutated or deleted.
type AuditLogEntry struct {
	LogID        string    `db:"log_id" json:"log_id"`
	UserRole     UserRole  `db:"user_role" json:"user_role"`
	Action       string    `db:"action" json:"action"`
	DataAccessed string    `db:"data_accessed" json:"data_accessed"`
	Timestamp    time.Time `db:"timestamp" json:"timestamp"`
	IPHash       string    `db:"ip_hash" json:"ip_hash"`
	Success      bool      `db:"success" json:"success"`
}

// PredictionLog records each AI (or fallback) prediction for the compliance trail.
type PredictionLog struct {
	PredictionID   string    `db:"prediction_id" json:"prediction_id"`
	PredictionType string    `db:"prediction_type" json:"prediction_type"` // triage | forecast
	RequestID      string    `db:"request_id" json:"request_id"`           // "N/A" for batch forecasts
	Payload        string    `db:"payload" json:"payload"`                 // JSON
	UsedFallback   bool      `db:"used_fallback" json:"used_fallback"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// Analyst is a dashboard user allowed to trigger triage/forecast operations.
type Analyst struct {
	AnalystID    int64        `db:"analyst_id" json:"analyst_id"`
	Email        string       `db:"email" json:"email"`
	PasswordHash string       `db:"password_hash" json:"-"`
	DisplayName  string       `db:"display_name" json:"display_name"`
	IsAdmin      bool         `db:"is_admin" json:"is_admin"`
	CreatedAt    time.Time    `db:"created_at" json:"created_at"`
	LastLoginAt  sql.NullTime `db:"last_login_at" json:"last_login_at,omitempty"`
}
