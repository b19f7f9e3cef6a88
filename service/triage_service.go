package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"sevadesk/ai"
	"sevadesk/models"

	"github.com/google/uuid"
)

// TriageService produces a structured prediction for a single request.
// It never fails outwardly: when the model call errors, times out, or
// returns malformed output, a rule-based estimate is returned instead.
// Triage must never block on the external dependency.
type TriageService struct {
	model       ai.Generator
	audit       *AuditService
	predictions PredictionStore
	genConfig   ai.GenerationConfig
	timeout     time.Duration
}

// NewTriageService creates a new triage service
func NewTriageService(
	model ai.Generator,
	audit *AuditService,
	predictions PredictionStore,
	genConfig ai.GenerationConfig,
	timeout time.Duration,
) *TriageService {
	return &TriageService{
		model:       model,
		audit:       audit,
		predictions: predictions,
		genConfig:   genConfig,
		timeout:     timeout,
	}
}

// Analyze returns a structurally valid TriagePrediction for req, via the
// model when possible and the rule-based fallback otherwise. An audit entry
// is emitted regardless of which path produced the result.
func (s *TriageService) Analyze(ctx context.Context, req *models.ServiceRequest, role models.UserRole, clientIP string) *models.TriagePrediction {
	now := time.Now()
	pred, usedFallback := s.analyze(ctx, req, now)

	if s.audit != nil {
		s.audit.Record("AI Prediction Generated", role, req.RequestID, clientIP)
	}
	s.logPrediction("triage", req.RequestID, pred, usedFallback)

	return pred
}

func (s *TriageService) analyze(ctx context.Context, req *models.ServiceRequest, now time.Time) (*models.TriagePrediction, bool) {
	daysOpen := req.DaysOpen(now)

	if s.model == nil {
		return FallbackTriagePrediction(req, daysOpen), true
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.model.GenerateContent(callCtx, buildTriagePrompt(req, daysOpen), s.genConfig)
	if err != nil {
		log.Printf("[triage] model call failed for %s, using fallback: %v", req.RequestID, err)
		return FallbackTriagePrediction(req, daysOpen), true
	}

	pred, err := parseTriagePrediction(raw)
	if err != nil {
		log.Printf("[triage] invalid model output for %s, using fallback: %v", req.RequestID, err)
		return FallbackTriagePrediction(req, daysOpen), true
	}

	return pred, false
}

func (s *TriageService) logPrediction(kind, requestID string, payload interface{}, usedFallback bool) {
	if s.predictions == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return
	}
	rec := &models.PredictionLog{
		PredictionID:   fmt.Sprintf("PRED_%s_%s", time.Now().UTC().Format("20060102150405"), uuid.New().String()[:8]),
		PredictionType: kind,
		RequestID:      requestID,
		Payload:        string(body),
		UsedFallback:   usedFallback,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.predictions.AppendPrediction(rec); err != nil {
		log.Printf("[triage] failed to persist prediction log: %v", err)
	}
}

func buildTriagePrompt(req *models.ServiceRequest, daysOpen int) string {
	var b strings.Builder
	b.WriteString("You are an advanced AI system for a state government's predictive governance platform.\n\n")
	b.WriteString("Analyze this citizen service request comprehensively:\n\n")
	fmt.Fprintf(&b, "Request Details:\n")
	fmt.Fprintf(&b, "- ID: %s\n", req.RequestID)
	fmt.Fprintf(&b, "- Type: %s\n", req.ComplaintType)
	fmt.Fprintf(&b, "- Description: %s\n", req.Description)
	fmt.Fprintf(&b, "- Location: %s, %s\n", req.City, req.Ward)
	fmt.Fprintf(&b, "- Current Severity: %s\n", req.Severity)
	fmt.Fprintf(&b, "- Citizens Affected: %d\n", req.AffectedCount)
	fmt.Fprintf(&b, "- Department: %s\n", req.Department)
	fmt.Fprintf(&b, "- Days Open: %d\n", daysOpen)
	fmt.Fprintf(&b, "- Status: %s\n\n", req.Status)
	b.WriteString("Provide a predictive analysis in this EXACT JSON format:\n\n")
	b.WriteString(`{
  "urgency_score": <float 1.0-10.0>,
  "escalation_risk_percent": <integer 0-100>,
  "predicted_priority": "<Critical/High/Medium/Low>",
  "recommended_action": "<specific immediate action with department and timeline>",
  "estimated_resolution_days": <positive integer>,
  "resource_requirements": "<staff count, budget estimate, equipment needed>",
  "similar_patterns": "<any patterns identified from description>",
  "prevention_measures": "<how to prevent similar issues>",
  "impact_analysis": "<potential consequences if not resolved>",
  "reasoning": "<detailed 3-4 sentence explanation of your analysis>"
}`)
	b.WriteString("\n\nBe realistic and data-driven. Consider the number of citizens affected, the current severity level, and the days already open. Response must be valid JSON only, no extra text.")
	return b.String()
}

// triageResponse mirrors TriagePrediction with pointer fields so a missing
// key is distinguishable from a zero value. The model output is never read
// until it passes validation.
type triageResponse struct {
	UrgencyScore            *float64 `json:"urgency_score"`
	EscalationRiskPercent   *int     `json:"escalation_risk_percent"`
	PredictedPriority       *string  `json:"predicted_priority"`
	RecommendedAction       *string  `json:"recommended_action"`
	EstimatedResolutionDays *int     `json:"estimated_resolution_days"`
	ResourceRequirements    *string  `json:"resource_requirements"`
	SimilarPatterns         *string  `json:"similar_patterns"`
	PreventionMeasures      *string  `json:"prevention_measures"`
	ImpactAnalysis          *string  `json:"impact_analysis"`
	Reasoning               *string  `json:"reasoning"`
}

func parseTriagePrediction(raw string) (*models.TriagePrediction, error) {
	clean := StripCodeFences(raw)

	var resp triageResponse
	if err := json.Unmarshal([]byte(clean), &resp); err != nil {
		return nil, fmt.Errorf("response is not valid JSON: %w", err)
	}

	missing := []string{}
	requireString := func(name string, v *string) {
		if v == nil || strings.TrimSpace(*v) == "" {
			missing = append(missing, name)
		}
	}
	if resp.UrgencyScore == nil {
		missing = append(missing, "urgency_score")
	}
	if resp.EscalationRiskPercent == nil {
		missing = append(missing, "escalation_risk_percent")
	}
	if resp.EstimatedResolutionDays == nil {
		missing = append(missing, "estimated_resolution_days")
	}
	requireString("predicted_priority", resp.PredictedPriority)
	requireString("recommended_action", resp.RecommendedAction)
	requireString("resource_requirements", resp.ResourceRequirements)
	requireString("similar_patterns", resp.SimilarPatterns)
	requireString("prevention_measures", resp.PreventionMeasures)
	requireString("impact_analysis", resp.ImpactAnalysis)
	requireString("reasoning", resp.Reasoning)
	if len(missing) > 0 {
		return nil, fmt.Errorf("response missing fields: %s", strings.Join(missing, ", "))
	}

	if *resp.UrgencyScore < 1.0 || *resp.UrgencyScore > 10.0 {
		return nil, fmt.Errorf("urgency_score %.2f out of range [1,10]", *resp.UrgencyScore)
	}
	if *resp.EscalationRiskPercent < 0 || *resp.EscalationRiskPercent > 100 {
		return nil, fmt.Errorf("escalation_risk_percent %d out of range [0,100]", *resp.EscalationRiskPercent)
	}
	if !models.IsValidSeverity(*resp.PredictedPriority) {
		return nil, fmt.Errorf("predicted_priority %q is not a known severity", *resp.PredictedPriority)
	}
	if *resp.EstimatedResolutionDays <= 0 {
		return nil, fmt.Errorf("estimated_resolution_days %d must be positive", *resp.EstimatedResolutionDays)
	}

	return &models.TriagePrediction{
		UrgencyScore:            *resp.UrgencyScore,
		EscalationRiskPercent:   *resp.EscalationRiskPercent,
		PredictedPriority:       *resp.PredictedPriority,
		RecommendedAction:       *resp.RecommendedAction,
		EstimatedResolutionDays: *resp.EstimatedResolutionDays,
		ResourceRequirements:    *resp.ResourceRequirements,
		SimilarPatterns:         *resp.SimilarPatterns,
		PreventionMeasures:      *resp.PreventionMeasures,
		ImpactAnalysis:          *resp.ImpactAnalysis,
		Reasoning:               *resp.Reasoning,
	}, nil
}

// Fallback severity bases differ from the ranking weights: they anchor the
// urgency estimate to the same 1-10 scale the model is asked for.
var fallbackUrgencyBase = map[models.Severity]float64{
	models.SeverityCritical: 9.0,
	models.SeverityHigh:     7.0,
	models.SeverityMedium:   5.0,
	models.SeverityLow:      3.0,
}

var fallbackResolutionDays = map[models.Severity]int{
	models.SeverityCritical: 2,
	models.SeverityHigh:     5,
	models.SeverityMedium:   7,
	models.SeverityLow:      10,
}

// FallbackTriagePrediction is the deterministic rule-based estimate used
// whenever the model path fails. It satisfies the same schema validation as
// a real model response; the fallback never attempts to reclassify severity.
func FallbackTriagePrediction(req *models.ServiceRequest, daysOpen int) *models.TriagePrediction {
	severity := req.Severity
	base, ok := fallbackUrgencyBase[severity]
	if !ok {
		severity = models.SeverityMedium
		base = fallbackUrgencyBase[models.SeverityMedium]
	}
	affected := float64(req.AffectedCount)

	urgency := math.Min(base+affected/200+float64(daysOpen)*0.1, 10.0)
	escalation := int(math.Min(40+float64(daysOpen)*2+affected/20, 95))

	resolutionDays := fallbackResolutionDays[severity]
	teams := 1
	if severity == models.SeverityCritical {
		teams = 2
	}

	return &models.TriagePrediction{
		UrgencyScore:            math.Round(urgency*10) / 10,
		EscalationRiskPercent:   escalation,
		PredictedPriority:       string(severity),
		RecommendedAction:       fmt.Sprintf("Assign to %s immediately. Target resolution: %d days.", req.Department, resolutionDays),
		EstimatedResolutionDays: resolutionDays,
		ResourceRequirements:    fmt.Sprintf("Deploy %d team(s) with standard equipment and budget allocation.", teams),
		SimilarPatterns:         "Analysis based on severity level, affected population, and response time.",
		PreventionMeasures:      "Regular infrastructure maintenance and proactive monitoring recommended.",
		ImpactAnalysis:          fmt.Sprintf("Affects %d citizens. Delayed resolution may increase public dissatisfaction.", req.AffectedCount),
		Reasoning:               fmt.Sprintf("Based on %s severity level, %d affected citizens, and %d days already open. Rule-based analysis applied.", severity, req.AffectedCount, daysOpen),
	}
}

// StripCodeFences removes markdown code-fence wrapping the model tends to
// put around JSON output.
func StripCodeFences(raw string) string {
	clean := strings.ReplaceAll(raw, "```json", "")
	clean = strings.ReplaceAll(clean, "```", "")
	return strings.TrimSpace(clean)
}
