package service

import (
	"testing"
	"time"

	"sevadesk/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRequest(severity models.Severity, affected int, daysOpen int, now time.Time) *models.ServiceRequest {
	return &models.ServiceRequest{
		RequestID:     "R-TEST-0001",
		ComplaintType: "Water Supply",
		City:          "Mumbai",
		Severity:      severity,
		Status:        models.StatusOpen,
		AffectedCount: affected,
		Department:    "Water Department",
		DateSubmitted: now.AddDate(0, 0, -daysOpen),
	}
}

func TestScoreSeverityBases(t *testing.T) {
	svc := NewPriorityService()
	now := time.Now().UTC()

	cases := []struct {
		severity models.Severity
		want     float64
	}{
		{models.SeverityCritical, 10.0},
		{models.SeverityHigh, 7.0},
		{models.SeverityMedium, 4.0},
		{models.SeverityLow, 2.0},
	}
	for _, tc := range cases {
		got := svc.Score(newRequest(tc.severity, 0, 0, now), now)
		assert.Equal(t, tc.want, got, "severity %s", tc.severity)
	}
}

func TestScoreCombinesFactors(t *testing.T) {
	svc := NewPriorityService()
	now := time.Now().UTC()

	// High (7) + 250/100 (2.5) + 4 days * 0.5 (2.0)
	got := svc.Score(newRequest(models.SeverityHigh, 250, 4, now), now)
	assert.Equal(t, 11.5, got)
}

func TestScoreSaturates(t *testing.T) {
	svc := NewPriorityService()
	now := time.Now().UTC()

	// Citizen factor caps at 5, time factor at 3: 10 + 5 + 3.
	got := svc.Score(newRequest(models.SeverityCritical, 1_000_000, 365, now), now)
	assert.Equal(t, 18.0, got)
}

func TestScoreMonotonicInAffectedCount(t *testing.T) {
	svc := NewPriorityService()
	now := time.Now().UTC()

	prev := svc.Score(newRequest(models.SeverityMedium, 0, 0, now), now)
	for affected := 50; affected <= 600; affected += 50 {
		cur := svc.Score(newRequest(models.SeverityMedium, affected, 0, now), now)
		assert.GreaterOrEqual(t, cur, prev, "affected=%d", affected)
		prev = cur
	}
}

func TestScoreMonotonicInAge(t *testing.T) {
	svc := NewPriorityService()
	now := time.Now().UTC()

	prev := svc.Score(newRequest(models.SeverityMedium, 10, 0, now), now)
	for days := 1; days <= 10; days++ {
		cur := svc.Score(newRequest(models.SeverityMedium, 10, days, now), now)
		assert.GreaterOrEqual(t, cur, prev, "days=%d", days)
		prev = cur
	}
}

func TestScoreUnknownSeverityUsesMediumWeight(t *testing.T) {
	svc := NewPriorityService()
	now := time.Now().UTC()

	req := newRequest("Catastrophic", 0, 0, now)
	assert.Equal(t, 4.0, svc.Score(req, now))
}

func TestRankOrdersByScoreDescending(t *testing.T) {
	svc := NewPriorityService()
	now := time.Now().UTC()

	backlog := []models.ServiceRequest{
		*newRequest(models.SeverityLow, 10, 1, now),
		*newRequest(models.SeverityCritical, 500, 5, now),
		*newRequest(models.SeverityMedium, 100, 2, now),
	}
	backlog[0].RequestID = "R-LOW"
	backlog[1].RequestID = "R-CRIT"
	backlog[2].RequestID = "R-MED"

	ranked := svc.Rank(backlog, now)
	require.Len(t, ranked, 3)
	assert.Equal(t, "R-CRIT", ranked[0].RequestID)
	assert.Equal(t, "R-MED", ranked[1].RequestID)
	assert.Equal(t, "R-LOW", ranked[2].RequestID)
	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].PriorityScore, ranked[i].PriorityScore)
	}
}

func TestRankTieBreaksByMostRecentSubmission(t *testing.T) {
	svc := NewPriorityService()
	now := time.Now().UTC()

	older := *newRequest(models.SeverityHigh, 100, 0, now)
	older.RequestID = "R-OLDER"
	older.DateSubmitted = now.Add(-10 * time.Hour)

	newer := *newRequest(models.SeverityHigh, 100, 0, now)
	newer.RequestID = "R-NEWER"
	newer.DateSubmitted = now.Add(-1 * time.Hour)

	ranked := svc.Rank([]models.ServiceRequest{older, newer}, now)
	require.Len(t, ranked, 2)
	assert.Equal(t, ranked[0].PriorityScore, ranked[1].PriorityScore)
	assert.Equal(t, "R-NEWER", ranked[0].RequestID)
}

func TestRankIsDeterministic(t *testing.T) {
	svc := NewPriorityService()
	now := time.Now().UTC()

	backlog := []models.ServiceRequest{
		*newRequest(models.SeverityHigh, 300, 3, now),
		*newRequest(models.SeverityCritical, 50, 0, now),
		*newRequest(models.SeverityLow, 900, 20, now),
		*newRequest(models.SeverityMedium, 120, 6, now),
	}
	for i := range backlog {
		backlog[i].RequestID = string(rune('A' + i))
	}

	first := svc.Rank(backlog, now)
	second := svc.Rank(backlog, now)
	assert.Equal(t, first, second)
}
