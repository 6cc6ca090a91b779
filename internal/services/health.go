package services

import (
	"fmt"
	"log"

	"github.com/therapick/therapick-api/internal/config"
	"github.com/therapick/therapick-api/internal/directory"
	"github.com/therapick/therapick-api/internal/utils"
	"gorm.io/gorm"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Database     string            `json:"database"`
	Directory    string            `json:"directory"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// HealthCheck performs a health check of the service and its collaborators
func HealthCheck(cfg *config.Config, db *gorm.DB, dir directory.Client) HealthCheckResult {
	result := HealthCheckResult{
		Status:  "healthy",
		Details: make(map[string]string),
	}

	// Check database connectivity
	sqlDB, err := db.DB()
	if err != nil {
		result.Status = "unhealthy"
		result.Database = "error"
		result.Details["database_error"] = err.Error()
		result.ErrorMessage = fmt.Sprintf("Database connection error: %v", err)
		log.Printf("Health check failed - database connection: %v", err)
	} else if err := sqlDB.Ping(); err != nil {
		result.Status = "unhealthy"
		result.Database = "unreachable"
		result.Details["database_ping_error"] = err.Error()
		result.ErrorMessage = fmt.Sprintf("Database ping failed: %v", err)
		log.Printf("Health check failed - database ping: %v", err)
	} else {
		result.Database = "ok"
		result.Details["database_type"] = cfg.DBType
		result.Details["database_name"] = cfg.DBDatabase
	}

	// Check directory provider reachability. The static demo directory is
	// in-process and always reachable.
	result.Details["directory_mode"] = dir.Mode()
	if dir.Mode() == "static" {
		result.Directory = "ok"
	} else if err := utils.PingDirectory(cfg.TherapAPIBaseURL); err != nil {
		result.Status = "unhealthy"
		result.Directory = "unreachable"
		result.Details["directory_error"] = err.Error()
		if result.ErrorMessage == "" {
			result.ErrorMessage = fmt.Sprintf("Directory ping failed: %v", err)
		} else {
			result.ErrorMessage += fmt.Sprintf("; directory ping failed: %v", err)
		}
		log.Printf("Health check failed - directory ping: %v", err)
	} else {
		result.Directory = "ok"
		result.Details["directory_url"] = cfg.TherapAPIBaseURL
	}

	return result
}
