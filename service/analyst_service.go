package service

import (
	"errors"
	"fmt"
	"log"

	"sevadesk/models"
	"sevadesk/utils"
)

// ErrInvalidCredentials is returned for any login failure. Deliberately
// generic: it never reveals whether the account exists.
var ErrInvalidCredentials = errors.New("invalid email or password")

// AnalystService authenticates dashboard analysts.
type AnalystService struct {
	store            AnalystStore
	jwtSecret        []byte
	tokenExpiryHours int
}

// NewAnalystService creates a new analyst service
func NewAnalystService(store AnalystStore, jwtSecret string, tokenExpiryHours int) *AnalystService {
	return &AnalystService{
		store:            store,
		jwtSecret:        []byte(jwtSecret),
		tokenExpiryHours: tokenExpiryHours,
	}
}

// Login verifies credentials and returns a signed token.
func (s *AnalystService) Login(req *models.LoginRequest) (*models.LoginResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, ErrInvalidCredentials
	}

	analyst, err := s.store.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up analyst: %w", err)
	}

	if err := utils.CheckAnalystPassword(req.Password, analyst.PasswordHash); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateAnalystJWT(analyst.AnalystID, analyst.IsAdmin, s.jwtSecret, s.tokenExpiryHours)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	if err := s.store.TouchLastLogin(analyst.AnalystID); err != nil {
		log.Printf("[auth] failed to record last login for analyst %d: %v", analyst.AnalystID, err)
	}

	return &models.LoginResponse{
		Token:       token,
		DisplayName: analyst.DisplayName,
		IsAdmin:     analyst.IsAdmin,
		ExpiresIn:   s.tokenExpiryHours,
	}, nil
}

// Verify parses a token and returns the authenticated analyst.
func (s *AnalystService) Verify(token string) (*models.Analyst, error) {
	analystID, _, err := utils.ParseAnalystJWT(token, s.jwtSecret)
	if err != nil {
		return nil, err
	}
	return s.store.GetByID(analystID)
}
