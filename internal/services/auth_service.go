package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/therapick/therapick-api/internal/auth"
	"github.com/therapick/therapick-api/internal/models"
	"github.com/therapick/therapick-api/internal/types"
	"gorm.io/gorm"
)

const minPasswordLength = 6

// AuthService owns registration, login, guest sessions, and profile
// management, issuing bearer tokens for all of them.
type AuthService interface {
	Register(name, email, password string) (*models.User, string, error)
	Login(email, password string) (*models.User, string, error)
	Guest() (*models.User, string, error)
	GetUser(userID string) (*models.User, error)
	UpdateProfile(userID, name string) (*models.User, error)
	ChangePassword(userID, currentPassword, newPassword string) error
}

type authService struct {
	db     *gorm.DB
	secret string
}

// NewAuthService builds the GORM-backed auth service.
func NewAuthService(db *gorm.DB, secret string) AuthService {
	return &authService{db: db, secret: secret}
}

func (s *authService) Register(name, email, password string) (*models.User, string, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return nil, "", types.BadRequest("Please provide name, email and password")
	}
	if len(password) < minPasswordLength {
		return nil, "", types.BadRequest("Password must be at least 6 characters")
	}

	var existing models.User
	err := s.db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, "", types.BadRequest("User already exists with this email")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", types.Internal("Could not register user")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", types.Internal("Could not register user")
	}

	now := time.Now().UTC()
	user := models.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleUser,
		IsActive:     true,
		LastLogin:    &now,
	}
	if err := s.db.Create(&user).Error; err != nil {
		// The unique index backstops a register race on the same email.
		if isDuplicateKey(err) {
			return nil, "", types.BadRequest("User already exists with this email")
		}
		log.Printf("register: create user: %v", err)
		return nil, "", types.Internal("Could not register user")
	}

	token, err := auth.MakeToken(user.ID, s.secret)
	if err != nil {
		return nil, "", types.Internal("Could not issue token")
	}
	return &user, token, nil
}

func (s *authService) Login(email, password string) (*models.User, string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, "", types.BadRequest("Please provide email and password")
	}

	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", types.Unauthorized("Invalid credentials")
		}
		return nil, "", types.Internal("Could not log in")
	}
	if !user.IsActive {
		return nil, "", types.Forbidden("Your account has been deactivated")
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, "", types.Unauthorized("Invalid credentials")
	}

	now := time.Now().UTC()
	user.LastLogin = &now
	if err := s.db.Model(&user).Update("last_login", now).Error; err != nil {
		log.Printf("login: update last_login: %v", err)
	}

	token, err := auth.MakeToken(user.ID, s.secret)
	if err != nil {
		return nil, "", types.Internal("Could not issue token")
	}
	return &user, token, nil
}

func (s *authService) Guest() (*models.User, string, error) {
	// A guest is a throwaway account: unguessable email, random
	// password, normal token. Saved data survives for the token TTL.
	id := uuid.NewString()
	hash, err := auth.HashPassword(uuid.NewString())
	if err != nil {
		return nil, "", types.Internal("Could not create guest session")
	}

	now := time.Now().UTC()
	user := models.User{
		ID:           id,
		Name:         "Guest",
		Email:        fmt.Sprintf("guest-%s@therapick.local", id),
		PasswordHash: hash,
		Role:         models.RoleGuest,
		IsActive:     true,
		LastLogin:    &now,
	}
	if err := s.db.Create(&user).Error; err != nil {
		log.Printf("guest: create user: %v", err)
		return nil, "", types.Internal("Could not create guest session")
	}

	token, err := auth.MakeToken(user.ID, s.secret)
	if err != nil {
		return nil, "", types.Internal("Could not issue token")
	}
	return &user, token, nil
}

func (s *authService) GetUser(userID string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NotFound("User not found")
		}
		return nil, types.Internal("Could not load user")
	}
	return &user, nil
}

func (s *authService) UpdateProfile(userID, name string) (*models.User, error) {
	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return user, nil
	}
	user.Name = name
	if err := s.db.Model(user).Update("name", name).Error; err != nil {
		return nil, types.Internal("Could not update profile")
	}
	return user, nil
}

func (s *authService) ChangePassword(userID, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return types.BadRequest("Please provide current and new password")
	}
	if len(newPassword) < minPasswordLength {
		return types.BadRequest("Password must be at least 6 characters")
	}

	user, err := s.GetUser(userID)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(user.PasswordHash, currentPassword) {
		return types.Unauthorized("Current password is incorrect")
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return types.Internal("Could not change password")
	}
	if err := s.db.Model(user).Update("password_hash", hash).Error; err != nil {
		return types.Internal("Could not change password")
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}
