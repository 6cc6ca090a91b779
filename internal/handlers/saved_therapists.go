package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/therapick/therapick-api/internal/services"
	"github.com/therapick/therapick-api/internal/types"
	"github.com/therapick/therapick-api/internal/utils"
)

// SavedTherapistHandler handles the /api/saved-therapists routes
type SavedTherapistHandler struct {
	Service services.SavedTherapistService
}

// Save handles POST /api/saved-therapists
func (h *SavedTherapistHandler) Save(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}
	var in services.SavedTherapistInput
	if err := c.BodyParser(&in); err != nil {
		return types.BadRequest("Invalid request body")
	}
	saved, created, err := h.Service.Save(c.UserContext(), userID, in)
	if err != nil {
		return err
	}
	if created {
		return utils.SuccessResponse(c, fiber.StatusCreated, "Therapist saved successfully", fiber.Map{
			"savedTherapist": saved,
		})
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Saved therapist updated successfully", fiber.Map{
		"savedTherapist": saved,
	})
}

// List handles GET /api/saved-therapists
func (h *SavedTherapistHandler) List(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}
	saved, err := h.Service.List(userID)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Saved therapists retrieved successfully", fiber.Map{
		"savedTherapists": saved,
		"count":           len(saved),
	})
}

// Check handles GET /api/saved-therapists/check/:therapistId
func (h *SavedTherapistHandler) Check(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}
	saved, err := h.Service.Check(userID, c.Params("therapistId"))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Check completed", fiber.Map{
		"isSaved":        saved != nil,
		"savedTherapist": saved,
	})
}

// Remove handles DELETE /api/saved-therapists/:therapistId
func (h *SavedTherapistHandler) Remove(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}
	if err := h.Service.Remove(userID, c.Params("therapistId")); err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Therapist removed from saved list", nil)
}
