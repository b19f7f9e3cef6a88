package service

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"sevadesk/models"
	"sevadesk/utils"
)

// departmentRouting maps complaint types to the responsible department.
// Unmapped types route to the general department, never an error.
var departmentRouting = map[string]string{
	"Water Supply":       "Water Department",
	"Electricity":        "MSEDCL",
	"Road Repair":        "PWD",
	"Healthcare":         "Health Department",
	"Garbage Collection": "Sanitation Department",
	"Street Lights":      "Municipal Corporation",
	"Drainage":           "PWD",
	"Public Transport":   "Transport Department",
}

const defaultDepartment = "General Department"

// RouteDepartment returns the department responsible for a complaint type.
func RouteDepartment(complaintType string) string {
	if dept, ok := departmentRouting[complaintType]; ok {
		return dept
	}
	return defaultDepartment
}

// RequestService handles citizen submissions and request lookups.
type RequestService struct {
	store RequestStore
	audit *AuditService
}

// NewRequestService creates a new request service
func NewRequestService(store RequestStore, audit *AuditService) *RequestService {
	return &RequestService{store: store, audit: audit}
}

// Submit validates and persists a new citizen request.
//
// Name and phone are hashed before the request object is constructed and the
// plaintext is discarded here — it is never logged, never returned, never
// persisted. Submission is all-or-nothing: on a persistence failure nothing
// is audited and no partial state remains.
func (s *RequestService) Submit(form *models.SubmitRequestForm, clientIP string) (*models.ServiceRequest, error) {
	if err := validateForm(form); err != nil {
		return nil, err
	}

	nameToken, phoneToken := utils.AnonymizeCitizen(form.Name, form.Phone)

	affected := 1
	if form.AffectedCount != nil {
		affected = *form.AffectedCount
	}

	severity := models.SeverityMedium
	if form.Severity != nil {
		severity = models.Severity(*form.Severity)
	}

	req := &models.ServiceRequest{
		RequestID:       s.store.GenerateRequestID(),
		CitizenNameHash: nameToken,
		PhoneHash:       phoneToken,
		ComplaintType:   form.ComplaintType,
		Description:     form.Description,
		City:            form.City,
		Ward:            form.Ward,
		District:        form.City,
		Severity:        severity,
		Status:          models.StatusOpen,
		AffectedCount:   affected,
		Department:      RouteDepartment(form.ComplaintType),
		DateSubmitted:   time.Now().UTC(),
	}
	if form.Email != nil && *form.Email != "" {
		req.Email = sql.NullString{String: *form.Email, Valid: true}
	}

	if err := s.store.InsertRequest(req); err != nil {
		return nil, fmt.Errorf("failed to persist request: %w", err)
	}
	log.Printf("[ingest] request %s created, routed to %s", req.RequestID, req.Department)

	if s.audit != nil {
		s.audit.Record("New Complaint Submitted", models.RoleCitizen, req.RequestID, clientIP)
	}

	return req, nil
}

// validateForm checks the required fields and value constraints, naming
// every offending field rather than failing on the first.
func validateForm(form *models.SubmitRequestForm) error {
	var fields []string
	if form.Name == "" {
		fields = append(fields, "name")
	}
	if form.Phone == "" {
		fields = append(fields, "phone")
	}
	if form.City == "" {
		fields = append(fields, "city")
	}
	if form.Ward == "" {
		fields = append(fields, "ward")
	}
	if form.ComplaintType == "" {
		fields = append(fields, "complaint_type")
	}
	if form.Description == "" {
		fields = append(fields, "description")
	}
	// Absent affected_count defaults to 1; a present non-positive value is
	// a caller mistake, never silently clamped.
	if form.AffectedCount != nil && *form.AffectedCount < 1 {
		fields = append(fields, "affected_count")
	}
	if form.Severity != nil && !models.IsValidSeverity(*form.Severity) {
		fields = append(fields, "severity")
	}

	if len(fields) > 0 {
		return &models.ValidationError{Fields: fields}
	}
	return nil
}

// Get returns the full request entity.
func (s *RequestService) Get(requestID string) (*models.ServiceRequest, error) {
	return s.store.GetRequestByID(requestID)
}

// Track returns the citizen view of a single request.
func (s *RequestService) Track(requestID string) (*models.TrackRequestResponse, error) {
	req, err := s.store.GetRequestByID(requestID)
	if err != nil {
		return nil, err
	}

	resp := &models.TrackRequestResponse{
		RequestID:     req.RequestID,
		ComplaintType: req.ComplaintType,
		Description:   req.Description,
		City:          req.City,
		Ward:          req.Ward,
		Severity:      string(req.Severity),
		Status:        string(req.Status),
		Department:    req.Department,
		DateSubmitted: req.DateSubmitted,
	}
	if req.ResolvedDate.Valid {
		resolved := req.ResolvedDate.Time
		resp.ResolvedDate = &resolved
	}
	return resp, nil
}

// Backlog returns the full current request set, newest first. The read is a
// snapshot at call time.
func (s *RequestService) Backlog() ([]models.ServiceRequest, error) {
	requests, err := s.store.ListRequests()
	if err != nil {
		return nil, fmt.Errorf("failed to read backlog: %w", err)
	}
	return requests, nil
}
