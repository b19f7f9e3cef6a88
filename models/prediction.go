package models

// TriagePrediction is the structured output of a single-request AI analysis.
// It is transient: returned to the caller and logged, never written back onto
// the request itself.
type TriagePrediction struct {
	UrgencyScore            float64 `json:"urgency_score"`
	EscalationRiskPercent   int     `json:"escalation_risk_percent"`
	PredictedPriority       string  `json:"predicted_priority"`
	RecommendedAction       string  `json:"recommended_action"`
	EstimatedResolutionDays int     `json:"estimated_resolution_days"`
	ResourceRequirements    string  `json:"resource_requirements"`
	SimilarPatterns         string  `json:"similar_patterns"`
	PreventionMeasures      string  `json:"prevention_measures"`
	ImpactAnalysis          string  `json:"impact_analysis"`
	Reasoning               string  `json:"reasoning"`
}

// Trend labels used in category forecasts.
const (
	TrendIncreasing = "Increasing"
	TrendDecreasing = "Decreasing"
	TrendStable     = "Stable"
)

// CategoryForecast is the 7-day outlook for one service category.
type CategoryForecast struct {
	PredictedRequests int     `json:"predicted_requests"`
	ChangePercent     float64 `json:"change_percent"`
	Confidence        int     `json:"confidence"`
	Trend             string  `json:"trend"`
}

// Bottleneck flags a department predicted to be overloaded.
type Bottleneck struct {
	Department      string `json:"department"`
	OverloadPercent int    `json:"overload_percent"`
	Urgency         string `json:"urgency"`
	Recommendation  string `json:"recommendation"`
}

// ResourceAllocation summarizes predicted staffing and budget needs.
type ResourceAllocation struct {
	AdditionalStaffNeeded int      `json:"additional_staff_needed"`
	BudgetRequiredLakhs   float64  `json:"budget_required_lakhs"`
	PriorityAreas         []string `json:"priority_areas"`
}

// RiskZone flags a location with elevated predicted risk.
type RiskZone struct {
	Location     string `json:"location"`
	RiskType     string `json:"risk_type"`
	Severity     int    `json:"severity"`
	ActionNeeded string `json:"action_needed"`
}

// ForecastCategoryKeys are the service categories every demand forecast must
// cover, AI-generated or fallback alike.
var ForecastCategoryKeys = []string{"water_supply", "healthcare", "infrastructure", "electricity"}

// DemandForecast is the transient 7-day service demand outlook for the
// whole backlog.
type DemandForecast struct {
	ForecastDate       string                      `json:"forecast_date"`
	DemandForecast     map[string]CategoryForecast `json:"demand_forecast"`
	Bottlenecks        []Bottleneck                `json:"bottlenecks"`
	ResourceAllocation ResourceAllocation          `json:"resource_allocation"`
	RiskZones          []RiskZone                  `json:"risk_zones"`
	Insights           string                      `json:"insights"`
}
