package presenters

import (
	"github.com/gofiber/fiber/v2"
)

// SuccessResponse writes the standard {success, message, ...payload} envelope.
// Keys in data are merged at the top level of the reply.
func SuccessResponse(c *fiber.Ctx, data fiber.Map, code int, message string) error {
	payload := fiber.Map{
		"success": true,
		"message": message,
	}
	for k, v := range data {
		payload[k] = v
	}
	return c.Status(code).JSON(payload)
}

// ErrorResponse writes the failure envelope. The error is surfaced as part of
// the message so clients always get a human-readable explanation; extras may
// carry diagnostic fields such as the raw upstream reply.
func ErrorResponse(c *fiber.Ctx, code int, message string, err error, extras ...fiber.Map) error {
	payload := fiber.Map{
		"success": false,
		"message": message,
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	for _, extra := range extras {
		for k, v := range extra {
			payload[k] = v
		}
	}
	return c.Status(code).JSON(payload)
}
