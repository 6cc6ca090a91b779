package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/therapick/therapick-api/internal/services"
	"github.com/therapick/therapick-api/internal/types"
	"github.com/therapick/therapick-api/internal/utils"
)

// AuthHandler handles the /api/auth routes
type AuthHandler struct {
	Service services.AuthService
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return types.BadRequest("Invalid request body")
	}

	user, token, err := h.Service.Register(req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, "User registered successfully", fiber.Map{
		"token": token,
		"user":  user,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return types.BadRequest("Invalid request body")
	}

	user, token, err := h.Service.Login(req.Email, req.Password)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Login successful", fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Guest handles POST /api/auth/guest
func (h *AuthHandler) Guest(c *fiber.Ctx) error {
	user, token, err := h.Service.Guest()
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, "Guest session created", fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}
	user, err := h.Service.GetUser(userID)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "User retrieved successfully", fiber.Map{
		"user": user,
	})
}

type profileRequest struct {
	Name string `json:"name"`
}

// UpdateProfile handles PUT /api/auth/profile
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}
	var req profileRequest
	if err := c.BodyParser(&req); err != nil {
		return types.BadRequest("Invalid request body")
	}
	user, err := h.Service.UpdateProfile(userID, req.Name)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Profile updated successfully", fiber.Map{
		"user": user,
	})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ChangePassword handles PUT /api/auth/change-password
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}
	var req changePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return types.BadRequest("Invalid request body")
	}
	if err := h.Service.ChangePassword(userID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Password changed successfully", nil)
}
