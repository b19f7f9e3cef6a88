package service

import (
	"context"
	"errors"
	"fmt"

	"sevadesk/ai"
	"sevadesk/models"
)

// In-memory store fakes. They satisfy the narrow store contracts so the
// services under test never touch a database.

type fakeRequestStore struct {
	requests  []models.ServiceRequest
	nextID    int
	listErr   error
	insertErr error
}

func (f *fakeRequestStore) ListRequests() ([]models.ServiceRequest, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.ServiceRequest, len(f.requests))
	copy(out, f.requests)
	return out, nil
}

func (f *fakeRequestStore) GetRequestByID(requestID string) (*models.ServiceRequest, error) {
	for i := range f.requests {
		if f.requests[i].RequestID == requestID {
			req := f.requests[i]
			return &req, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeRequestStore) InsertRequest(req *models.ServiceRequest) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.requests = append(f.requests, *req)
	return nil
}

func (f *fakeRequestStore) GenerateRequestID() string {
	f.nextID++
	return fmt.Sprintf("R-TEST-%04d", f.nextID)
}

type fakeAuditStore struct {
	entries   []models.AuditLogEntry
	appendErr error
}

func (f *fakeAuditStore) AppendEntry(entry *models.AuditLogEntry) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.entries = append(f.entries, *entry)
	return nil
}

type fakePredictionStore struct {
	records []models.PredictionLog
}

func (f *fakePredictionStore) AppendPrediction(rec *models.PredictionLog) error {
	f.records = append(f.records, *rec)
	return nil
}

type fakeAssetStore struct {
	assets []models.InfrastructureAsset
}

func (f *fakeAssetStore) ListAssets() ([]models.InfrastructureAsset, error) {
	return f.assets, nil
}

type fakeHealthStore struct {
	records []models.HealthRecord
}

func (f *fakeHealthStore) ListRecords() ([]models.HealthRecord, error) {
	return f.records, nil
}

type fakeAnalystStore struct {
	analysts []models.Analyst
	touched  []int64
}

func (f *fakeAnalystStore) GetByEmail(email string) (*models.Analyst, error) {
	for i := range f.analysts {
		if f.analysts[i].Email == email {
			a := f.analysts[i]
			return &a, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeAnalystStore) GetByID(analystID int64) (*models.Analyst, error) {
	for i := range f.analysts {
		if f.analysts[i].AnalystID == analystID {
			a := f.analysts[i]
			return &a, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeAnalystStore) TouchLastLogin(analystID int64) error {
	f.touched = append(f.touched, analystID)
	return nil
}

// fakeGenerator scripts the model side of triage/forecast. Calls counts
// invocations so tests can assert the model was (not) consulted.
type fakeGenerator struct {
	response string
	err      error
	calls    int
	prompts  []string
}

func (f *fakeGenerator) GenerateContent(_ context.Context, prompt string, _ ai.GenerationConfig) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

var errStoreDown = errors.New("store unavailable")
