package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"sevadesk/ai"
	"sevadesk/models"
	"sevadesk/routes"
	"sevadesk/service"
	"sevadesk/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory stores backing a full router, so the tests cover routing,
// auth middleware, and handlers together without a database.

type memRequestStore struct {
	requests []models.ServiceRequest
	nextID   int
}

func (m *memRequestStore) ListRequests() ([]models.ServiceRequest, error) {
	out := make([]models.ServiceRequest, len(m.requests))
	copy(out, m.requests)
	return out, nil
}

func (m *memRequestStore) GetRequestByID(requestID string) (*models.ServiceRequest, error) {
	for i := range m.requests {
		if m.requests[i].RequestID == requestID {
			req := m.requests[i]
			return &req, nil
		}
	}
	return nil, models.ErrNotFound
}

func (m *memRequestStore) InsertRequest(req *models.ServiceRequest) error {
	m.requests = append(m.requests, *req)
	return nil
}

func (m *memRequestStore) GenerateRequestID() string {
	m.nextID++
	return fmt.Sprintf("R-HTTP-%04d", m.nextID)
}

type memAuditStore struct {
	entries []models.AuditLogEntry
}

func (m *memAuditStore) AppendEntry(entry *models.AuditLogEntry) error {
	m.entries = append(m.entries, *entry)
	return nil
}

type memPredictionStore struct {
	records []models.PredictionLog
}

func (m *memPredictionStore) AppendPrediction(rec *models.PredictionLog) error {
	m.records = append(m.records, *rec)
	return nil
}

type memAssetStore struct{}

func (memAssetStore) ListAssets() ([]models.InfrastructureAsset, error) {
	return []models.InfrastructureAsset{{AssetID: "INF001", RiskScore: 8.1, Condition: "Poor"}}, nil
}

type memHealthStore struct{}

func (memHealthStore) ListRecords() ([]models.HealthRecord, error) {
	return []models.HealthRecord{{RecordID: "H001", AlertLevel: "Red", CasesReported: 150}}, nil
}

type memAnalystStore struct {
	analysts []models.Analyst
}

func (m *memAnalystStore) GetByEmail(email string) (*models.Analyst, error) {
	for i := range m.analysts {
		if m.analysts[i].Email == email {
			a := m.analysts[i]
			return &a, nil
		}
	}
	return nil, models.ErrNotFound
}

func (m *memAnalystStore) GetByID(analystID int64) (*models.Analyst, error) {
	for i := range m.analysts {
		if m.analysts[i].AnalystID == analystID {
			a := m.analysts[i]
			return &a, nil
		}
	}
	return nil, models.ErrNotFound
}

func (m *memAnalystStore) TouchLastLogin(int64) error { return nil }

type testEnv struct {
	router   http.Handler
	requests *memRequestStore
	audit    *memAuditStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	requestStore := &memRequestStore{}
	auditStore := &memAuditStore{}
	predictionStore := &memPredictionStore{}

	hash, err := utils.HashAnalystPassword("test-password")
	require.NoError(t, err)
	analystStore := &memAnalystStore{analysts: []models.Analyst{
		{AnalystID: 1, Email: "analyst@example.com", PasswordHash: hash, DisplayName: "Analyst", IsAdmin: false},
	}}

	auditService := service.NewAuditService(auditStore)
	requestService := service.NewRequestService(requestStore, auditService)
	priorityService := service.NewPriorityService()
	// nil model: triage and forecast run on the rule-based path
	triageService := service.NewTriageService(nil, auditService, predictionStore, ai.GenerationConfig{}, time.Second)
	forecastService := service.NewForecastService(nil, auditService, predictionStore, ai.GenerationConfig{}, time.Second)
	statsService := service.NewStatsService(requestStore, memAssetStore{}, memHealthStore{})
	analystService := service.NewAnalystService(analystStore, "test-secret", 24)

	router := routes.SetupRoutes(
		requestService, priorityService, triageService, forecastService,
		statsService, analystService, nil, "",
	)

	return &testEnv{router: router, requests: requestStore, audit: auditStore}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) login(t *testing.T) string {
	t.Helper()
	rec := e.do(t, "POST", "/api/v1/auth/login", "", models.LoginRequest{
		Email: "analyst@example.com", Password: "test-password",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Token
}

func submitPayload() map[string]interface{} {
	return map[string]interface{}{
		"name":           "Shrinivas Kulkarni",
		"phone":          "9876543210",
		"city":           "Mumbai",
		"ward":           "Ward 12",
		"complaint_type": "Water Supply",
		"description":    "No water supply for 3 days.",
		"severity":       "High",
		"affected_count": 300,
	}
}

func TestSubmitRequestEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, "POST", "/api/v1/requests", "", submitPayload())
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp models.SubmitRequestResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.RequestID)
	assert.Equal(t, "Water Department", resp.Department)
	assert.Equal(t, "Open", resp.Status)

	// Submission is audited; plaintext identity never reaches the response.
	require.Len(t, env.audit.entries, 1)
	assert.NotContains(t, rec.Body.String(), "Shrinivas")
	assert.NotContains(t, rec.Body.String(), "9876543210")
}

func TestSubmitRequestValidationErrors(t *testing.T) {
	env := newTestEnv(t)

	payload := submitPayload()
	delete(payload, "name")
	delete(payload, "description")

	rec := env.do(t, "POST", "/api/v1/requests", "", payload)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Message, "name")
	assert.Contains(t, resp.Message, "description")
	assert.Empty(t, env.requests.requests)
}

func TestSubmitRequestMalformedBody(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest("POST", "/api/v1/requests", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTrackRequestEndpoint(t *testing.T) {
	env := newTestEnv(t)

	created := env.do(t, "POST", "/api/v1/requests", "", submitPayload())
	var submitResp models.SubmitRequestResponse
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &submitResp))

	rec := env.do(t, "GET", "/api/v1/requests/"+submitResp.RequestID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var view models.TrackRequestResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, submitResp.RequestID, view.RequestID)
	assert.Equal(t, "High", view.Severity)
	assert.NotContains(t, rec.Body.String(), "hash")
}

func TestTrackRequestNotFound(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, "GET", "/api/v1/requests/R-MISSING", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPriorityQueueRequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, "GET", "/api/v1/requests/priority", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, "GET", "/api/v1/requests/priority", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPriorityQueueRanksBacklog(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	low := submitPayload()
	low["severity"] = "Low"
	low["affected_count"] = 10
	env.do(t, "POST", "/api/v1/requests", "", low)

	critical := submitPayload()
	critical["severity"] = "Critical"
	critical["affected_count"] = 800
	env.do(t, "POST", "/api/v1/requests", "", critical)

	rec := env.do(t, "GET", "/api/v1/requests/priority", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Count    int                    `json:"count"`
		Requests []models.RankedRequest `json:"requests"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 2, resp.Count)
	assert.Equal(t, "Critical", resp.Requests[0].Severity)
	assert.Greater(t, resp.Requests[0].PriorityScore, resp.Requests[1].PriorityScore)
}

func TestTriageEndpointFallsBackWithoutModel(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	created := env.do(t, "POST", "/api/v1/requests", "", submitPayload())
	var submitResp models.SubmitRequestResponse
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &submitResp))

	rec := env.do(t, "POST", "/api/v1/requests/"+submitResp.RequestID+"/triage", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var pred models.TriagePrediction
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pred))
	// High base 7.0 + 300/200 = 8.5, zero days open.
	assert.Equal(t, 8.5, pred.UrgencyScore)
	assert.Equal(t, "High", pred.PredictedPriority)
}

func TestTriageEndpointUnknownRequest(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	rec := env.do(t, "POST", "/api/v1/requests/R-MISSING/triage", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestForecastEndpoint(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	rec := env.do(t, "POST", "/api/v1/forecast", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var forecast models.DemandForecast
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &forecast))
	assert.Len(t, forecast.DemandForecast, 4)
	assert.NotEmpty(t, forecast.Insights)
}

func TestStatsEndpoints(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	env.do(t, "POST", "/api/v1/requests", "", submitPayload())

	rec := env.do(t, "GET", "/api/v1/stats/summary", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var summary models.StatisticsSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, 1, summary.TotalRequests)
	assert.Equal(t, "Water Supply", summary.MostCommonType)

	rec = env.do(t, "GET", "/api/v1/stats/risk", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var risk models.RiskAssessment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &risk))
	assert.Len(t, risk.HighRiskAssets, 1)
	assert.Len(t, risk.HealthAlerts, 1)
}

func TestAuditEndpointRequiresAdminToken(t *testing.T) {
	env := newTestEnv(t)

	// Admin token unset: the endpoint is disabled outright.
	rec := env.do(t, "GET", "/api/v1/audit", "anything", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, "POST", "/api/v1/auth/login", "", models.LoginRequest{
		Email: "analyst@example.com", Password: "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
