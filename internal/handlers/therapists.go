package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/therapick/therapick-api/internal/directory"
	"github.com/therapick/therapick-api/internal/matching"
	"github.com/therapick/therapick-api/internal/types"
	"github.com/therapick/therapick-api/internal/utils"
)

const defaultSearchLocation = "New York, NY"

// TherapistHandler proxies the read-only therapist directory.
type TherapistHandler struct {
	Dir directory.Client
}

// Search handles GET /api/therapists/search
func (h *TherapistHandler) Search(c *fiber.Ctx) error {
	moods := parseMulti(c, "moods")
	specialties := matching.Expand(moods)

	params := types.SearchParams{
		Specialties: specialties,
		Insurance:   parseMulti(c, "insurance"),
		Gender:      c.Query("gender"),
		Language:    c.Query("language"),
		Radius:      c.QueryInt("radius", 0),
		Limit:       c.QueryInt("limit", 20),
		Offset:      c.QueryInt("offset", 0),
	}

	if location := c.Query("location"); location != "" {
		params.Location = location
	} else if latRaw, lngRaw := c.Query("latitude"), c.Query("longitude"); latRaw != "" && lngRaw != "" {
		lat, latErr := strconv.ParseFloat(latRaw, 64)
		lng, lngErr := strconv.ParseFloat(lngRaw, 64)
		if latErr != nil || lngErr != nil {
			return types.BadRequest("Invalid coordinates")
		}
		params.Latitude = &lat
		params.Longitude = &lng
	} else {
		params.Location = defaultSearchLocation
	}

	result, err := h.Dir.Search(c.UserContext(), params)
	if err != nil {
		return directoryError(err)
	}

	radius := params.Radius
	if radius <= 0 {
		radius = 25
	}
	// Coordinate searches carry no location, echoed as null
	var location interface{}
	if params.Location != "" {
		location = params.Location
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Therapists retrieved successfully", fiber.Map{
		"therapists": result.Therapists,
		"total":      result.Total,
		"hasMore":    result.HasMore,
		"filters": fiber.Map{
			"moods":       emptyIfNil(moods),
			"specialties": emptyIfNil(specialties),
			"location":    location,
			"radius":      radius,
		},
	})
}

// Specialties handles GET /api/therapists/specialties
func (h *TherapistHandler) Specialties(c *fiber.Ctx) error {
	specialties, err := h.Dir.Specialties(c.UserContext())
	if err != nil {
		return directoryError(err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Specialties retrieved successfully", fiber.Map{
		"specialties": specialties,
		"moodMap":     matching.MoodSpecialtyMap,
	})
}

// GetByID handles GET /api/therapists/:id
func (h *TherapistHandler) GetByID(c *fiber.Ctx) error {
	therapist, err := h.Dir.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return directoryError(err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Therapist retrieved successfully", fiber.Map{
		"therapist": therapist,
	})
}

// Reviews handles GET /api/therapists/:id/reviews
func (h *TherapistHandler) Reviews(c *fiber.Ctx) error {
	reviews, err := h.Dir.Reviews(c.UserContext(), c.Params("id"))
	if err != nil {
		return directoryError(err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Reviews retrieved successfully", fiber.Map{
		"reviews": reviews,
	})
}

// directoryError maps provider failures to the error taxonomy. Raw
// upstream errors never reach the caller.
func directoryError(err error) error {
	switch {
	case errors.Is(err, directory.ErrNotFound):
		return types.NotFound("Therapist not found")
	case errors.Is(err, directory.ErrUnavailable):
		return types.Unavailable("Therapist directory unavailable")
	default:
		var appErr *types.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return types.Unavailable("Therapist directory unavailable")
	}
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
