package service

import (
	"math"
	"sort"
	"time"

	"sevadesk/models"
)

// Severity weights for the deterministic score. Unknown severities fall back
// to the Medium weight so the function stays total.
var severityWeights = map[models.Severity]float64{
	models.SeverityCritical: 10,
	models.SeverityHigh:     7,
	models.SeverityMedium:   4,
	models.SeverityLow:      2,
}

const (
	citizenFactorCap = 5.0 // influence of very large affected counts saturates here
	timeFactorCap    = 3.0 // aging influence saturates here
)

// PriorityService computes deterministic priority scores and ranks the backlog.
type PriorityService struct{}

// NewPriorityService creates a new priority service
func NewPriorityService() *PriorityService {
	return &PriorityService{}
}

// Score maps a request's severity, affected count and age to a priority
// score. Pure and total: every request produces a finite score, with no
// error path.
//
// Scores are intentionally not normalized to a fixed ceiling. The raw sum
// keeps the function monotonic in each input and trivially explainable to
// department staff: base (severity) + up to 5 (citizens) + up to 3 (age).
func (s *PriorityService) Score(req *models.ServiceRequest, now time.Time) float64 {
	base, ok := severityWeights[req.Severity]
	if !ok {
		base = severityWeights[models.SeverityMedium]
	}

	citizenFactor := math.Min(float64(req.AffectedCount)/100, citizenFactorCap)
	timeFactor := math.Min(float64(req.DaysOpen(now))*0.5, timeFactorCap)

	return round2(base + citizenFactor + timeFactor)
}

// Rank returns the backlog as a priority queue: highest score first, ties
// broken by more recent date_submitted. The ordering is deterministic so
// repeated rankings of the same backlog are identical.
func (s *PriorityService) Rank(requests []models.ServiceRequest, now time.Time) []models.RankedRequest {
	ranked := make([]models.RankedRequest, 0, len(requests))
	submitted := make(map[string]time.Time, len(requests))

	for i := range requests {
		req := &requests[i]
		submitted[req.RequestID] = req.DateSubmitted
		ranked = append(ranked, models.RankedRequest{
			RequestID:     req.RequestID,
			ComplaintType: req.ComplaintType,
			City:          req.City,
			Severity:      string(req.Severity),
			AffectedCount: req.AffectedCount,
			DaysOpen:      req.DaysOpen(now),
			Department:    req.Department,
			PriorityScore: s.Score(req, now),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].PriorityScore != ranked[j].PriorityScore {
			return ranked[i].PriorityScore > ranked[j].PriorityScore
		}
		return submitted[ranked[i].RequestID].After(submitted[ranked[j].RequestID])
	})

	return ranked
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
