package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"sevadesk/ai"
	"sevadesk/models"

	"github.com/google/uuid"
)

// ForecastService produces a 7-day service demand outlook from the current
// backlog. Like triage, it never fails outwardly: any model failure yields
// the deterministic fallback forecast. There is no partial merge of AI and
// fallback data — the result is all-AI or all-fallback so its provenance
// stays unambiguous.
type ForecastService struct {
	model       ai.Generator
	audit       *AuditService
	predictions PredictionStore
	genConfig   ai.GenerationConfig
	timeout     time.Duration
}

// NewForecastService creates a new forecast service
func NewForecastService(
	model ai.Generator,
	audit *AuditService,
	predictions PredictionStore,
	genConfig ai.GenerationConfig,
	timeout time.Duration,
) *ForecastService {
	return &ForecastService{
		model:       model,
		audit:       audit,
		predictions: predictions,
		genConfig:   genConfig,
		timeout:     timeout,
	}
}

// backlogAggregates summarizes a request batch for the forecast prompt.
type backlogAggregates struct {
	Total          int
	TypeCounts     map[string]int
	CityCounts     map[string]int
	SeverityCounts map[string]int
	AvgAffected    int
}

// Forecast returns a structurally valid DemandForecast for the batch. An
// empty batch short-circuits to the fallback without any model call — the
// model is never asked to extrapolate from nothing.
func (s *ForecastService) Forecast(ctx context.Context, batch []models.ServiceRequest, role models.UserRole, clientIP string) *models.DemandForecast {
	forecast, usedFallback := s.forecast(ctx, batch)

	if s.audit != nil {
		s.audit.Record("Demand Forecast Generated", role, "", clientIP)
	}
	s.logForecast(forecast, usedFallback)

	return forecast
}

func (s *ForecastService) forecast(ctx context.Context, batch []models.ServiceRequest) (*models.DemandForecast, bool) {
	if len(batch) == 0 || s.model == nil {
		return FallbackDemandForecast(time.Now()), true
	}

	agg := aggregateBacklog(batch)

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.model.GenerateContent(callCtx, buildForecastPrompt(agg), s.genConfig)
	if err != nil {
		log.Printf("[forecast] model call failed, using fallback: %v", err)
		return FallbackDemandForecast(time.Now()), true
	}

	forecast, err := parseDemandForecast(raw)
	if err != nil {
		log.Printf("[forecast] invalid model output, using fallback: %v", err)
		return FallbackDemandForecast(time.Now()), true
	}

	return forecast, false
}

func (s *ForecastService) logForecast(forecast *models.DemandForecast, usedFallback bool) {
	if s.predictions == nil {
		return
	}
	body, err := json.Marshal(forecast)
	if err != nil {
		return
	}
	rec := &models.PredictionLog{
		PredictionID:   fmt.Sprintf("PRED_%s_%s", time.Now().UTC().Format("20060102150405"), uuid.New().String()[:8]),
		PredictionType: "forecast",
		RequestID:      "N/A",
		Payload:        string(body),
		UsedFallback:   usedFallback,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.predictions.AppendPrediction(rec); err != nil {
		log.Printf("[forecast] failed to persist prediction log: %v", err)
	}
}

func aggregateBacklog(batch []models.ServiceRequest) backlogAggregates {
	agg := backlogAggregates{
		Total:          len(batch),
		TypeCounts:     make(map[string]int),
		CityCounts:     make(map[string]int),
		SeverityCounts: make(map[string]int),
	}
	totalAffected := 0
	for i := range batch {
		agg.TypeCounts[batch[i].ComplaintType]++
		agg.CityCounts[batch[i].City]++
		agg.SeverityCounts[string(batch[i].Severity)]++
		totalAffected += batch[i].AffectedCount
	}
	if len(batch) > 0 {
		agg.AvgAffected = totalAffected / len(batch)
	}
	return agg
}

func buildForecastPrompt(agg backlogAggregates) string {
	var b strings.Builder
	b.WriteString("You are a predictive analytics AI for a state government.\n\n")
	b.WriteString("Analyze this historical citizen service request data and forecast demand for the next 7 days:\n\n")
	fmt.Fprintf(&b, "Current Data Summary:\n")
	fmt.Fprintf(&b, "- Total Active Requests: %d\n", agg.Total)
	fmt.Fprintf(&b, "- Requests by Type: %s\n", formatCounts(agg.TypeCounts))
	fmt.Fprintf(&b, "- Requests by City: %s\n", formatCounts(agg.CityCounts))
	fmt.Fprintf(&b, "- Severity Distribution: %s\n", formatCounts(agg.SeverityCounts))
	fmt.Fprintf(&b, "- Average Citizens Affected: %d\n\n", agg.AvgAffected)
	b.WriteString("Provide a 7-day forecast in this EXACT JSON format:\n\n")
	fmt.Fprintf(&b, `{
  "forecast_date": "%s",
  "demand_forecast": {
    "water_supply": {"predicted_requests": <integer>, "change_percent": <float>, "confidence": <integer 0-100>, "trend": "<Increasing/Decreasing/Stable>"},
    "healthcare": {"predicted_requests": <integer>, "change_percent": <float>, "confidence": <integer 0-100>, "trend": "<Increasing/Decreasing/Stable>"},
    "infrastructure": {"predicted_requests": <integer>, "change_percent": <float>, "confidence": <integer 0-100>, "trend": "<Increasing/Decreasing/Stable>"},
    "electricity": {"predicted_requests": <integer>, "change_percent": <float>, "confidence": <integer 0-100>, "trend": "<Increasing/Decreasing/Stable>"}
  },
  "bottlenecks": [{"department": "<name>", "overload_percent": <integer>, "urgency": "<High/Medium/Low>", "recommendation": "<specific action needed>"}],
  "resource_allocation": {"additional_staff_needed": <integer>, "budget_required_lakhs": <float>, "priority_areas": ["<area1>", "<area2>", "<area3>"]},
  "risk_zones": [{"location": "<city/district>", "risk_type": "<type of risk>", "severity": <integer 1-10>, "action_needed": "<specific action>"}],
  "insights": "<2-3 sentences summarizing key findings and recommendations>"
}`, time.Now().Format("2006-01-02"))
	b.WriteString("\n\nResponse must be valid JSON only.")
	return b.String()
}

// formatCounts renders a count map with deterministic key order, so the
// same backlog always produces the same prompt.
func formatCounts(counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, counts[k]))
	}
	return strings.Join(parts, ", ")
}

// forecastResponse mirrors DemandForecast with pointer fields so missing
// keys are detectable before any field is trusted.
type forecastResponse struct {
	ForecastDate   *string                              `json:"forecast_date"`
	DemandForecast map[string]*categoryForecastResponse `json:"demand_forecast"`
	Bottlenecks    []models.Bottleneck                  `json:"bottlenecks"`
	ResourceAlloc  *models.ResourceAllocation           `json:"resource_allocation"`
	RiskZones      []models.RiskZone                    `json:"risk_zones"`
	Insights       *string                              `json:"insights"`
}

type categoryForecastResponse struct {
	PredictedRequests *int     `json:"predicted_requests"`
	ChangePercent     *float64 `json:"change_percent"`
	Confidence        *int     `json:"confidence"`
	Trend             *string  `json:"trend"`
}

func parseDemandForecast(raw string) (*models.DemandForecast, error) {
	clean := StripCodeFences(raw)

	var resp forecastResponse
	if err := json.Unmarshal([]byte(clean), &resp); err != nil {
		return nil, fmt.Errorf("response is not valid JSON: %w", err)
	}

	if resp.ForecastDate == nil || strings.TrimSpace(*resp.ForecastDate) == "" {
		return nil, fmt.Errorf("response missing forecast_date")
	}
	if resp.Insights == nil || strings.TrimSpace(*resp.Insights) == "" {
		return nil, fmt.Errorf("response missing insights")
	}
	if resp.ResourceAlloc == nil {
		return nil, fmt.Errorf("response missing resource_allocation")
	}
	if resp.ResourceAlloc.AdditionalStaffNeeded < 0 || resp.ResourceAlloc.BudgetRequiredLakhs < 0 {
		return nil, fmt.Errorf("resource_allocation values must be non-negative")
	}

	demand := make(map[string]models.CategoryForecast, len(models.ForecastCategoryKeys))
	for _, key := range models.ForecastCategoryKeys {
		cat, ok := resp.DemandForecast[key]
		if !ok || cat == nil {
			return nil, fmt.Errorf("demand_forecast missing category %q", key)
		}
		validated, err := validateCategory(key, cat)
		if err != nil {
			return nil, err
		}
		demand[key] = validated
	}

	for i, bn := range resp.Bottlenecks {
		if bn.Department == "" {
			return nil, fmt.Errorf("bottlenecks[%d] missing department", i)
		}
		if bn.Urgency != "High" && bn.Urgency != "Medium" && bn.Urgency != "Low" {
			return nil, fmt.Errorf("bottlenecks[%d] urgency %q not in High/Medium/Low", i, bn.Urgency)
		}
		if bn.OverloadPercent < 0 {
			return nil, fmt.Errorf("bottlenecks[%d] overload_percent must be non-negative", i)
		}
	}
	for i, rz := range resp.RiskZones {
		if rz.Location == "" {
			return nil, fmt.Errorf("risk_zones[%d] missing location", i)
		}
		if rz.Severity < 1 || rz.Severity > 10 {
			return nil, fmt.Errorf("risk_zones[%d] severity %d out of range [1,10]", i, rz.Severity)
		}
	}

	// Lists may be empty but never nil in the validated result.
	bottlenecks := resp.Bottlenecks
	if bottlenecks == nil {
		bottlenecks = []models.Bottleneck{}
	}
	riskZones := resp.RiskZones
	if riskZones == nil {
		riskZones = []models.RiskZone{}
	}

	return &models.DemandForecast{
		ForecastDate:       *resp.ForecastDate,
		DemandForecast:     demand,
		Bottlenecks:        bottlenecks,
		ResourceAllocation: *resp.ResourceAlloc,
		RiskZones:          riskZones,
		Insights:           *resp.Insights,
	}, nil
}

func validateCategory(key string, cat *categoryForecastResponse) (models.CategoryForecast, error) {
	var zero models.CategoryForecast
	if cat.PredictedRequests == nil || cat.ChangePercent == nil || cat.Confidence == nil || cat.Trend == nil {
		return zero, fmt.Errorf("demand_forecast[%s] has missing fields", key)
	}
	if *cat.PredictedRequests < 0 {
		return zero, fmt.Errorf("demand_forecast[%s] predicted_requests must be non-negative", key)
	}
	if *cat.Confidence < 0 || *cat.Confidence > 100 {
		return zero, fmt.Errorf("demand_forecast[%s] confidence %d out of range [0,100]", key, *cat.Confidence)
	}
	switch *cat.Trend {
	case models.TrendIncreasing, models.TrendDecreasing, models.TrendStable:
	default:
		return zero, fmt.Errorf("demand_forecast[%s] trend %q unknown", key, *cat.Trend)
	}
	return models.CategoryForecast{
		PredictedRequests: *cat.PredictedRequests,
		ChangePercent:     *cat.ChangePercent,
		Confidence:        *cat.Confidence,
		Trend:             *cat.Trend,
	}, nil
}

// FallbackDemandForecast is the deterministic forecast used when the model
// path fails or the backlog is empty. Values are fixed rather than derived
// from the aggregates, keeping fallback output independent of external state.
func FallbackDemandForecast(now time.Time) *models.DemandForecast {
	return &models.DemandForecast{
		ForecastDate: now.Format("2006-01-02"),
		DemandForecast: map[string]models.CategoryForecast{
			"water_supply":   {PredictedRequests: 15, ChangePercent: 15.0, Confidence: 75, Trend: models.TrendIncreasing},
			"healthcare":     {PredictedRequests: 11, ChangePercent: 10.0, Confidence: 70, Trend: models.TrendStable},
			"infrastructure": {PredictedRequests: 16, ChangePercent: 12.0, Confidence: 80, Trend: models.TrendIncreasing},
			"electricity":    {PredictedRequests: 9, ChangePercent: 8.0, Confidence: 72, Trend: models.TrendStable},
		},
		Bottlenecks: []models.Bottleneck{
			{
				Department:      "Water Department",
				OverloadPercent: 65,
				Urgency:         "High",
				Recommendation:  "Add 10 additional staff members and allocate emergency budget",
			},
		},
		ResourceAllocation: models.ResourceAllocation{
			AdditionalStaffNeeded: 25,
			BudgetRequiredLakhs:   15.5,
			PriorityAreas:         []string{"Water Supply", "Road Infrastructure", "Healthcare"},
		},
		RiskZones: []models.RiskZone{
			{
				Location:     "Mumbai",
				RiskType:     "Service Overload",
				Severity:     7,
				ActionNeeded: "Pre-emptive resource deployment in high-demand areas",
			},
		},
		Insights: "Based on historical patterns, expecting 15-20% increase in service requests. Water and infrastructure departments need immediate resource reinforcement.",
	}
}
