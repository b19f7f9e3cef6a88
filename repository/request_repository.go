package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"sevadesk/models"

	"github.com/google/uuid"
)

// RequestRepository handles database operations for citizen service requests
type RequestRepository struct {
	db *sql.DB
}

// NewRequestRepository creates a new request repository
func NewRequestRepository(db *sql.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

// GenerateRequestID generates a unique request identifier.
// Format: R-YYYYMMDD-{UUID}. The random component keeps concurrent
// submissions collision-free without a serializing counter.
func (r *RequestRepository) GenerateRequestID() string {
	datePrefix := time.Now().UTC().Format("20060102")
	uniqueID := uuid.New().String()[:8]
	return fmt.Sprintf("R-%s-%s", datePrefix, uniqueID)
}

const requestColumns = `
	request_id, citizen_name_hash, phone_hash, email, complaint_type,
	description, city, ward, district, severity, status, affected_count,
	department, date_submitted, priority_score, resolved_date`

// ListRequests retrieves the full backlog ordered by date_submitted descending.
func (r *RequestRepository) ListRequests() ([]models.ServiceRequest, error) {
	query := `
		SELECT` + requestColumns + `
		FROM citizen_requests
		ORDER BY date_submitted DESC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query requests: %w", err)
	}
	defer rows.Close()

	var requests []models.ServiceRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate requests: %w", err)
	}

	return requests, nil
}

// GetRequestByID retrieves a single request. Returns models.ErrNotFound
// when the id matches no row.
func (r *RequestRepository) GetRequestByID(requestID string) (*models.ServiceRequest, error) {
	query := `
		SELECT` + requestColumns + `
		FROM citizen_requests
		WHERE request_id = ?
	`

	row := r.db.QueryRow(query, requestID)
	req, err := scanRequest(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return req, nil
}

// InsertRequest persists a new request. All-or-nothing: on error no partial
// state is left behind.
func (r *RequestRepository) InsertRequest(req *models.ServiceRequest) error {
	query := `
		INSERT INTO citizen_requests (` + requestColumns + `
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(
		query,
		req.RequestID,
		req.CitizenNameHash,
		req.PhoneHash,
		req.Email,
		req.ComplaintType,
		req.Description,
		req.City,
		req.Ward,
		req.District,
		req.Severity,
		req.Status,
		req.AffectedCount,
		req.Department,
		req.DateSubmitted,
		req.PriorityScore,
		req.ResolvedDate,
	)
	if err != nil {
		return fmt.Errorf("failed to insert request: %w", err)
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRequest(s scanner) (*models.ServiceRequest, error) {
	var req models.ServiceRequest
	var severity, status string

	err := s.Scan(
		&req.RequestID, &req.CitizenNameHash, &req.PhoneHash, &req.Email,
		&req.ComplaintType, &req.Description, &req.City, &req.Ward,
		&req.District, &severity, &status, &req.AffectedCount,
		&req.Department, &req.DateSubmitted, &req.PriorityScore, &req.ResolvedDate,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan request: %w", err)
	}

	req.Severity = models.ParseSeverity(severity)
	req.Status = models.RequestStatus(status)
	return &req, nil
}
