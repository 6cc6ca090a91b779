package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/therapick/therapick-api/internal/auth"
	"github.com/therapick/therapick-api/internal/models"
	"github.com/therapick/therapick-api/internal/types"
	"gorm.io/gorm"
)

// Locals keys set by the auth middleware.
const (
	UserKey   = "user"
	UserIDKey = "userID"
)

// Protect requires a valid bearer token and an existing, active account.
func Protect(db *gorm.DB, secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractToken(c)
		if token == "" {
			return types.Unauthorized("Not authorized to access this route")
		}

		claims, err := auth.ParseToken(token, secret)
		if err != nil {
			return types.Unauthorized("Not authorized to access this route")
		}

		var user models.User
		if err := db.First(&user, "id = ?", claims.UserID).Error; err != nil {
			return types.NotFound("User not found")
		}
		if !user.IsActive {
			return types.Forbidden("User account is inactive")
		}

		c.Locals(UserKey, &user)
		c.Locals(UserIDKey, user.ID)
		return c.Next()
	}
}

// OptionalAuth attaches the user when a valid token is present and
// continues silently otherwise.
func OptionalAuth(db *gorm.DB, secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractToken(c)
		if token != "" {
			if claims, err := auth.ParseToken(token, secret); err == nil {
				var user models.User
				if err := db.First(&user, "id = ?", claims.UserID).Error; err == nil && user.IsActive {
					c.Locals(UserKey, &user)
					c.Locals(UserIDKey, user.ID)
				}
			}
		}
		return c.Next()
	}
}

func extractToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return ""
	}
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}
