package models

import "time"

// SubmitRequestForm is the citizen-facing submission payload.
// Name and phone are consumed for hashing only and are never echoed back,
// logged, or persisted in plaintext.
type SubmitRequestForm struct {
	Name          string  `json:"name"`
	Phone         string  `json:"phone"`
	Email         *string `json:"email,omitempty"`
	City          string  `json:"city"`
	Ward          string  `json:"ward"`
	ComplaintType string  `json:"complaint_type"`
	Description   string  `json:"description"`
	AffectedCount *int    `json:"affected_count,omitempty"`
	Severity      *string `json:"severity,omitempty"`
}

// SubmitRequestResponse is returned after a successful submission.
type SubmitRequestResponse struct {
	RequestID  string `json:"request_id"`
	Department string `json:"department"`
	Status     string `json:"status"`
	Message    string `json:"message"`
}

// TrackRequestResponse is the citizen view of a single request.
// Whitelist only: no hashes, no internal fields.
type TrackRequestResponse struct {
	RequestID     string     `json:"request_id"`
	ComplaintType string     `json:"complaint_type"`
	Description   string     `json:"description"`
	City          string     `json:"city"`
	Ward          string     `json:"ward"`
	Severity      string     `json:"severity"`
	Status        string     `json:"status"`
	Department    string     `json:"department"`
	DateSubmitted time.Time  `json:"date_submitted"`
	ResolvedDate  *time.Time `json:"resolved_date,omitempty"`
}

// RankedRequest is one row of the priority queue.
type RankedRequest struct {
	RequestID     string  `json:"request_id"`
	ComplaintType string  `json:"complaint_type"`
	City          string  `json:"city"`
	Severity      string  `json:"severity"`
	AffectedCount int     `json:"affected_count"`
	DaysOpen      int     `json:"days_open"`
	Department    string  `json:"department"`
	PriorityScore float64 `json:"priority_score"`
}

// StatisticsSummary aggregates the current backlog for the dashboard header.
type StatisticsSummary struct {
	TotalRequests    int    `json:"total_requests"`
	OpenRequests     int    `json:"open_requests"`
	CriticalRequests int    `json:"critical_requests"`
	TotalAffected    int    `json:"total_affected"`
	AvgAffected      int    `json:"avg_affected"`
	MostCommonType   string `json:"most_common_type"`
	MostAffectedCity string `json:"most_affected_city"`
}

// RiskAssessment bundles the read-only risk views: assets above the risk
// threshold and health records at Orange/Red alert.
type RiskAssessment struct {
	HighRiskAssets []InfrastructureAsset `json:"high_risk_assets"`
	HealthAlerts   []HealthRecord        `json:"health_alerts"`
}

// LoginRequest is the analyst login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the signed analyst token.
type LoginResponse struct {
	Token       string `json:"token"`
	DisplayName string `json:"display_name"`
	IsAdmin     bool   `json:"is_admin"`
	ExpiresIn   int    `json:"expires_in_hours"`
}

// ErrorResponse is the standard error envelope for all endpoints.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
