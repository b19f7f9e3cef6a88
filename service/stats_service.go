package service

import (
	"fmt"
	"sort"

	"sevadesk/models"
)

// Infrastructure assets above this risk score and health records at these
// alert levels surface in the risk assessment view.
const highRiskThreshold = 7.0

// StatsService produces backlog aggregates and the read-only risk views.
type StatsService struct {
	requests RequestStore
	assets   AssetStore
	health   HealthStore
}

// NewStatsService creates a new stats service
func NewStatsService(requests RequestStore, assets AssetStore, health HealthStore) *StatsService {
	return &StatsService{requests: requests, assets: assets, health: health}
}

// Summarize aggregates the current backlog for the dashboard header.
func (s *StatsService) Summarize() (*models.StatisticsSummary, error) {
	requests, err := s.requests.ListRequests()
	if err != nil {
		return nil, fmt.Errorf("failed to read backlog: %w", err)
	}

	summary := &models.StatisticsSummary{TotalRequests: len(requests)}
	if len(requests) == 0 {
		summary.MostCommonType = "N/A"
		summary.MostAffectedCity = "N/A"
		return summary, nil
	}

	typeCounts := make(map[string]int)
	cityCounts := make(map[string]int)
	for i := range requests {
		req := &requests[i]
		if req.Status == models.StatusOpen {
			summary.OpenRequests++
		}
		if req.Severity == models.SeverityCritical {
			summary.CriticalRequests++
		}
		summary.TotalAffected += req.AffectedCount
		typeCounts[req.ComplaintType]++
		cityCounts[req.City]++
	}
	summary.AvgAffected = summary.TotalAffected / len(requests)
	summary.MostCommonType = mode(typeCounts)
	summary.MostAffectedCity = mode(cityCounts)

	return summary, nil
}

// mode returns the most frequent key; ties break alphabetically so the
// summary is deterministic for a given backlog.
func mode(counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	best := ""
	bestCount := -1
	for _, k := range keys {
		if counts[k] > bestCount {
			best = k
			bestCount = counts[k]
		}
	}
	return best
}

// RiskAssessment returns the high-risk infrastructure assets and elevated
// health alerts for the risk display.
func (s *StatsService) RiskAssessment() (*models.RiskAssessment, error) {
	assets, err := s.assets.ListAssets()
	if err != nil {
		return nil, fmt.Errorf("failed to read infrastructure assets: %w", err)
	}
	records, err := s.health.ListRecords()
	if err != nil {
		return nil, fmt.Errorf("failed to read health records: %w", err)
	}

	assessment := &models.RiskAssessment{
		HighRiskAssets: []models.InfrastructureAsset{},
		HealthAlerts:   []models.HealthRecord{},
	}
	for _, asset := range assets {
		if asset.RiskScore > highRiskThreshold {
			assessment.HighRiskAssets = append(assessment.HighRiskAssets, asset)
		}
	}
	for _, rec := range records {
		if rec.AlertLevel == "Orange" || rec.AlertLevel == "Red" {
			assessment.HealthAlerts = append(assessment.HealthAlerts, rec)
		}
	}

	// Worst cases first.
	sort.SliceStable(assessment.HealthAlerts, func(i, j int) bool {
		return assessment.HealthAlerts[i].CasesReported > assessment.HealthAlerts[j].CasesReported
	})

	return assessment, nil
}
