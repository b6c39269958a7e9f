package handlers

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// validationMessages flattens validator errors into a field-level map.
func validationMessages(err error) map[string]string {
	messages := make(map[string]string)
	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		for _, e := range errs {
			messages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
	}
	return messages
}

// badRequest rejects a malformed or invalid payload before any store access.
func badRequest(c *fiber.Ctx, message string, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": message,
		"errors":  validationMessages(err),
	})
}

// storeFailure terminates the request when the document store misbehaves.
// Nothing is retried; the failure is surfaced instead of swallowed.
func storeFailure(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"message": "Service unavailable",
		"error":   err.Error(),
	})
}
