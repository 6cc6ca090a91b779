package utils

import "github.com/gofiber/fiber/v2"

// SuccessResponse sends the standard success envelope. Data is omitted
// when nil.
func SuccessResponse(c *fiber.Ctx, status int, message string, data interface{}) error {
	body := fiber.Map{
		"success": true,
		"message": message,
	}
	if data != nil {
		body["data"] = data
	}
	return c.Status(status).JSON(body)
}

// ErrorResponse sends the standard error envelope.
func ErrorResponse(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
		"error":   true,
	})
}

// SuccessResponseStruct defines the schema for success envelopes.
type SuccessResponseStruct struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponseStruct defines the schema for error envelopes.
type ErrorResponseStruct struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   bool   `json:"error"`
}
