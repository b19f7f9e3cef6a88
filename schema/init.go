// Package schema: safe database initialization — create only missing tables, never drop or overwrite.

package schema

import (
	"database/sql"
	"log"
)

var coreTables = []string{
	"citizen_requests",
	"infrastructure_assets",
	"health_surveillance",
	"audit_logs",
	"predictions_log",
	"analysts",
}

// InitializeDatabase ensures core tables exist. Checks INFORMATION_SCHEMA.TABLES
// and creates only the missing ones. Does not drop or recreate tables; does not
// remove data.
func InitializeDatabase(db *sql.DB) {
	creators := map[string]func(*sql.DB){
		"citizen_requests":      createCitizenRequestsTable,
		"infrastructure_assets": createInfrastructureAssetsTable,
		"health_surveillance":   createHealthSurveillanceTable,
		"audit_logs":            createAuditLogsTable,
		"predictions_log":       createPredictionsLogTable,
		"analysts":              createAnalystsTable,
	}

	for _, table := range coreTables {
		exists, err := tableExists(db, table)
		if err != nil {
			log.Fatalf("[SCHEMA] Failed to check if table %s exists: %v", table, err)
		}
		if exists {
			log.Printf("[SCHEMA] %s table exists", table)
			continue
		}
		creators[table](db)
		log.Printf("[SCHEMA] created %s table", table)
	}
}

func tableExists(db *sql.DB, table string) (bool, error) {
	var count int
	err := db.QueryRow(
		`SELECT COUNT(*) FROM information_schema.TABLES
		 WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = ?`,
		table,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func createCitizenRequestsTable(db *sql.DB) {
	q := `
	CREATE TABLE citizen_requests (
		request_id VARCHAR(32) PRIMARY KEY,
		citizen_name_hash VARCHAR(32) NOT NULL,
		phone_hash VARCHAR(32) NOT NULL,
		email VARCHAR(255) NULL,
		complaint_type VARCHAR(64) NOT NULL,
		description TEXT NOT NULL,
		city VARCHAR(64) NOT NULL,
		ward VARCHAR(64) NOT NULL,
		district VARCHAR(64) NOT NULL,
		severity VARCHAR(16) NOT NULL DEFAULT 'Medium',
		status VARCHAR(16) NOT NULL DEFAULT 'Open',
		affected_count INT NOT NULL DEFAULT 1,
		department VARCHAR(64) NOT NULL,
		date_submitted DATETIME NOT NULL,
		priority_score DOUBLE NULL,
		resolved_date DATETIME NULL,
		INDEX idx_date_submitted (date_submitted),
		INDEX idx_status (status),
		INDEX idx_severity (severity)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`
	if _, err := db.Exec(q); err != nil {
		log.Fatalf("[SCHEMA] Failed to create citizen_requests: %v", err)
	}
}

func createInfrastructureAssetsTable(db *sql.DB) {
	q := `
	CREATE TABLE infrastructure_assets (
		asset_id VARCHAR(32) PRIMARY KEY,
		asset_type VARCHAR(64) NOT NULL,
		location VARCHAR(128) NOT NULL,
		asset_condition VARCHAR(32) NOT NULL,
		risk_score DOUBLE NOT NULL DEFAULT 0,
		last_checked DATETIME NULL,
		notes TEXT NULL,
		INDEX idx_risk_score (risk_score)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`
	if _, err := db.Exec(q); err != nil {
		log.Fatalf("[SCHEMA] Failed to create infrastructure_assets: %v", err)
	}
}

func createHealthSurveillanceTable(db *sql.DB) {
	q := `
	CREATE TABLE health_surveillance (
		record_id VARCHAR(32) PRIMARY KEY,
		disease_type VARCHAR(64) NOT NULL,
		city VARCHAR(64) NOT NULL,
		cases_reported INT NOT NULL DEFAULT 0,
		alert_level VARCHAR(16) NOT NULL,
		trend VARCHAR(16) NOT NULL,
		action_taken TEXT NOT NULL,
		date_reported DATETIME NOT NULL,
		INDEX idx_date_reported (date_reported)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`
	if _, err := db.Exec(q); err != nil {
		log.Fatalf("[SCHEMA] Failed to create health_surveillance: %v", err)
	}
}

func createAuditLogsTable(db *sql.DB) {
	q := `
	CREATE TABLE audit_logs (
		log_id VARCHAR(48) PRIMARY KEY,
		user_role VARCHAR(16) NOT NULL,
		action VARCHAR(128) NOT NULL,
		data_accessed VARCHAR(64) NOT NULL DEFAULT 'N/A',
		timestamp DATETIME NOT NULL,
		ip_hash VARCHAR(32) NOT NULL,
		success BOOLEAN NOT NULL DEFAULT TRUE,
		INDEX idx_timestamp (timestamp)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`
	if _, err := db.Exec(q); err != nil {
		log.Fatalf("[SCHEMA] Failed to create audit_logs: %v", err)
	}
}

func createPredictionsLogTable(db *sql.DB) {
	q := `
	CREATE TABLE predictions_log (
		prediction_id VARCHAR(48) PRIMARY KEY,
		prediction_type VARCHAR(16) NOT NULL,
		request_id VARCHAR(32) NOT NULL DEFAULT 'N/A',
		payload JSON NOT NULL,
		used_fallback BOOLEAN NOT NULL DEFAULT FALSE,
		created_at DATETIME NOT NULL,
		INDEX idx_created_at (created_at)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`
	if _, err := db.Exec(q); err != nil {
		log.Fatalf("[SCHEMA] Failed to create predictions_log: %v", err)
	}
}

func createAnalystsTable(db *sql.DB) {
	q := `
	CREATE TABLE analysts (
		analyst_id BIGINT AUTO_INCREMENT PRIMARY KEY,
		email VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(128) NOT NULL,
		display_name VARCHAR(128) NOT NULL,
		is_admin BOOLEAN NOT NULL DEFAULT FALSE,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		last_login_at DATETIME NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`
	if _, err := db.Exec(q); err != nil {
		log.Fatalf("[SCHEMA] Failed to create analysts: %v", err)
	}
}
