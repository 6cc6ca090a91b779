package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/therapick/therapick-api/internal/middleware"
	"github.com/therapick/therapick-api/internal/services"
	"github.com/therapick/therapick-api/internal/types"
)

// getUserID extracts the authenticated user id set by the auth middleware.
func getUserID(c *fiber.Ctx) (string, error) {
	id, ok := c.Locals(middleware.UserIDKey).(string)
	if !ok || id == "" {
		return "", types.Unauthorized("Not authorized to access this route")
	}
	return id, nil
}

// parseMulti collects query values for a key, supporting repeated keys,
// the bracketed array form, and comma-separated values. Order is
// preserved and duplicates collapse.
func parseMulti(c *fiber.Ctx, key string) []string {
	seen := make(map[string]struct{})
	var values []string

	args := c.Context().QueryArgs()
	args.VisitAll(func(k, v []byte) {
		name := string(k)
		if name != key && name != key+"[]" {
			return
		}
		for _, val := range strings.Split(string(v), ",") {
			val = strings.TrimSpace(val)
			if val == "" {
				continue
			}
			if _, ok := seen[val]; ok {
				continue
			}
			seen[val] = struct{}{}
			values = append(values, val)
		}
	})

	return values
}

// parseDateQuery parses an optional date query parameter.
func parseDateQuery(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	t, err := services.ParseFlexibleTime(raw)
	if err != nil {
		return nil, types.BadRequest("Invalid " + key)
	}
	return &t, nil
}
