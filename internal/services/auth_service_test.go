package services

import (
	"strings"
	"testing"

	"github.com/therapick/therapick-api/internal/auth"
	"github.com/therapick/therapick-api/internal/models"
)

func TestRegisterAndLogin(t *testing.T) {
	db := setupDB(t)
	svc := NewAuthService(db, testSecret)

	user, token, err := svc.Register("Ada", "Ada@Example.com", "password1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Email != "ada@example.com" {
		t.Errorf("email = %q, want lowercased", user.Email)
	}
	if user.Role != models.RoleUser {
		t.Errorf("role = %q, want %q", user.Role, models.RoleUser)
	}
	if token == "" {
		t.Fatal("register must issue a token")
	}
	claims, err := auth.ParseToken(token, testSecret)
	if err != nil || claims.UserID != user.ID {
		t.Fatalf("register token does not identify the user: %v", err)
	}

	loggedIn, _, err := svc.Login("ada@example.com", "password1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if loggedIn.ID != user.ID {
		t.Error("login returned a different user")
	}
	if loggedIn.LastLogin == nil {
		t.Error("login must stamp last_login")
	}
}

func TestRegisterValidation(t *testing.T) {
	db := setupDB(t)
	svc := NewAuthService(db, testSecret)

	_, _, err := svc.Register("", "a@b.com", "password1")
	wantAppError(t, err, 400, "validation")

	_, _, err = svc.Register("Ada", "a@b.com", "short")
	wantAppError(t, err, 400, "validation")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := setupDB(t)
	svc := NewAuthService(db, testSecret)

	if _, _, err := svc.Register("Ada", "ada@example.com", "password1"); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, _, err := svc.Register("Other", "ADA@example.com", "password2")
	wantAppError(t, err, 400, "validation")
}

func TestLoginInvalidCredentials(t *testing.T) {
	db := setupDB(t)
	svc := NewAuthService(db, testSecret)

	if _, _, err := svc.Register("Ada", "ada@example.com", "password1"); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, _, err := svc.Login("ada@example.com", "wrong-password")
	wantAppError(t, err, 401, "authentication")

	// Unknown email must not be distinguishable from a bad password
	_, _, err = svc.Login("nobody@example.com", "password1")
	wantAppError(t, err, 401, "authentication")
}

func TestLoginDeactivatedAccount(t *testing.T) {
	db := setupDB(t)
	svc := NewAuthService(db, testSecret)

	user, _, err := svc.Register("Ada", "ada@example.com", "password1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := db.Model(&models.User{}).Where("id = ?", user.ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	_, _, err = svc.Login("ada@example.com", "password1")
	wantAppError(t, err, 403, "authorization")
}

func TestGuestSession(t *testing.T) {
	db := setupDB(t)
	svc := NewAuthService(db, testSecret)

	user, token, err := svc.Guest()
	if err != nil {
		t.Fatalf("guest: %v", err)
	}
	if user.Role != models.RoleGuest {
		t.Errorf("role = %q, want %q", user.Role, models.RoleGuest)
	}
	if !strings.HasPrefix(user.Email, "guest-") {
		t.Errorf("guest email = %q", user.Email)
	}
	if token == "" {
		t.Fatal("guest must issue a token")
	}

	// Two guests never collide
	second, _, err := svc.Guest()
	if err != nil {
		t.Fatalf("second guest: %v", err)
	}
	if second.Email == user.Email {
		t.Error("guest emails must be unique")
	}
}

func TestChangePassword(t *testing.T) {
	db := setupDB(t)
	svc := NewAuthService(db, testSecret)

	user, _, err := svc.Register("Ada", "ada@example.com", "password1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	err = svc.ChangePassword(user.ID, "wrong", "password2")
	wantAppError(t, err, 401, "authentication")

	if err := svc.ChangePassword(user.ID, "password1", "password2"); err != nil {
		t.Fatalf("change password: %v", err)
	}
	if _, _, err := svc.Login("ada@example.com", "password1"); err == nil {
		t.Error("old password still accepted after change")
	}
	if _, _, err := svc.Login("ada@example.com", "password2"); err != nil {
		t.Errorf("new password rejected: %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	db := setupDB(t)
	svc := NewAuthService(db, testSecret)

	user, _, err := svc.Register("Ada", "ada@example.com", "password1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	updated, err := svc.UpdateProfile(user.ID, "  Ada Lovelace  ")
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if updated.Name != "Ada Lovelace" {
		t.Errorf("name = %q, want trimmed", updated.Name)
	}

	// Blank name leaves the profile untouched
	unchanged, err := svc.UpdateProfile(user.ID, "   ")
	if err != nil {
		t.Fatalf("update profile blank: %v", err)
	}
	if unchanged.Name != "Ada Lovelace" {
		t.Errorf("blank update changed name to %q", unchanged.Name)
	}
}
