package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/therapick/therapick-api/internal/services"
	"github.com/therapick/therapick-api/internal/types"
	"github.com/therapick/therapick-api/internal/utils"
)

const defaultStatsWindow = 30 * 24 * time.Hour

// MoodHandler handles the /api/moods routes
type MoodHandler struct {
	Service services.MoodService
}

// Log handles POST /api/moods
func (h *MoodHandler) Log(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}
	var in services.MoodInput
	if err := c.BodyParser(&in); err != nil {
		return types.BadRequest("Invalid request body")
	}
	entry, created, err := h.Service.Log(userID, in)
	if err != nil {
		return err
	}
	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return utils.SuccessResponse(c, status, "Mood logged successfully", fiber.Map{
		"moodEntry": entry,
	})
}

// List handles GET /api/moods
func (h *MoodHandler) List(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}
	start, err := parseDateQuery(c, "startDate")
	if err != nil {
		return err
	}
	end, err := parseDateQuery(c, "endDate")
	if err != nil {
		return err
	}

	entries, err := h.Service.List(userID, start, end, c.QueryInt("limit", 0))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Mood entries retrieved successfully", fiber.Map{
		"moodEntries": entries,
		"count":       len(entries),
	})
}

// Stats handles GET /api/moods/stats
func (h *MoodHandler) Stats(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}
	startQ, err := parseDateQuery(c, "startDate")
	if err != nil {
		return err
	}
	endQ, err := parseDateQuery(c, "endDate")
	if err != nil {
		return err
	}

	end := time.Now().UTC()
	if endQ != nil {
		end = *endQ
	}
	start := end.Add(-defaultStatsWindow)
	if startQ != nil {
		start = *startQ
	}

	stats, err := h.Service.Stats(userID, start, end)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Mood statistics retrieved successfully", stats)
}

// Delete handles DELETE /api/moods/:id
func (h *MoodHandler) Delete(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}
	if err := h.Service.Delete(userID, c.Params("id")); err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Mood entry deleted successfully", nil)
}
