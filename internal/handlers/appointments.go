package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/therapick/therapick-api/internal/services"
	"github.com/therapick/therapick-api/internal/types"
	"github.com/therapick/therapick-api/internal/utils"
)

// AppointmentHandler handles the /api/appointments routes
type AppointmentHandler struct {
	Service services.AppointmentService
}

// Create handles POST /api/appointments
func (h *AppointmentHandler) Create(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}
	var in services.AppointmentInput
	if err := c.BodyParser(&in); err != nil {
		return types.BadRequest("Invalid request body")
	}
	appt, err := h.Service.Create(userID, in)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, "Appointment created successfully", fiber.Map{
		"appointment": appt,
	})
}

// List handles GET /api/appointments
func (h *AppointmentHandler) List(c *fiber.Ctx) error {
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

	appts, err := h.Service.List(userID, services.AppointmentFilter{
		Status:    c.Query("status"),
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Appointments retrieved successfully", fiber.Map{
		"appointments": appts,
		"count":        len(appts),
	})
}

// Upcoming handles GET /api/appointments/upcoming
func (h *AppointmentHandler) Upcoming(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}
	appts, err := h.Service.Upcoming(userID)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Upcoming appointments retrieved successfully", fiber.Map{
		"appointments": appts,
		"count":        len(appts),
	})
}

// Get handles GET /api/appointments/:id
func (h *AppointmentHandler) Get(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}
	appt, err := h.Service.Get(userID, c.Params("id"))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Appointment retrieved successfully", fiber.Map{
		"appointment": appt,
	})
}

// Update handles PUT /api/appointments/:id
func (h *AppointmentHandler) Update(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}
	var in services.AppointmentUpdate
	if err := c.BodyParser(&in); err != nil {
		return types.BadRequest("Invalid request body")
	}
	appt, err := h.Service.Update(userID, c.Params("id"), in)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Appointment updated successfully", fiber.Map{
		"appointment": appt,
	})
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

// Cancel handles DELETE /api/appointments/:id
func (h *AppointmentHandler) Cancel(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}
	// Body is optional on cancel
	var req cancelRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return types.BadRequest("Invalid request body")
		}
	}
	appt, err := h.Service.Cancel(userID, c.Params("id"), req.Reason)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Appointment cancelled successfully", fiber.Map{
		"appointment": appt,
	})
}
