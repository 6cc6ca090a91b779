package services

import (
	"context"
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/therapick/therapick-api/internal/models"
	"github.com/therapick/therapick-api/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "test-secret"

// setupDB opens a fresh in-memory database per test. A single connection
// keeps the pure-Go sqlite driver from handing each pool connection its
// own empty memory database.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("test database pool: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	err = db.AutoMigrate(
		&models.User{},
		&models.Appointment{},
		&models.MoodEntry{},
		&models.SavedTherapist{},
	)
	if err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}

// registerTestUser creates a user through the real service and returns
// their ID.
func registerTestUser(t *testing.T, db *gorm.DB) string {
	t.Helper()
	svc := NewAuthService(db, testSecret)
	user, _, err := svc.Register("Test User", "test@example.com", "password1")
	if err != nil {
		t.Fatalf("register test user: %v", err)
	}
	return user.ID
}

// wantAppError asserts err is an AppError with the given status and type.
func wantAppError(t *testing.T, err error, code int, errType string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %d, got nil", code)
	}
	var appErr *types.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %T: %v", err, err)
	}
	if appErr.Code != code {
		t.Errorf("code = %d, want %d (%s)", appErr.Code, code, appErr.Message)
	}
	if errType != "" && appErr.Type != errType {
		t.Errorf("type = %q, want %q", appErr.Type, errType)
	}
}

var testCtx = context.Background()
