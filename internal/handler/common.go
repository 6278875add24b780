package handler

import (
	"errors"

	"go-inventory-api/pkg/apperr"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// respondError maps a service error to its HTTP status.
func respondError(c *fiber.Ctx, err error) error {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return c.Status(appErr.HTTPStatus()).JSON(fiber.Map{"error": appErr.Message})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error"})
}

func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

// pagination reads the skip/limit query params with the original defaults.
func pagination(c *fiber.Ctx) (int, int) {
	skip := c.QueryInt("skip", 0)
	limit := c.QueryInt("limit", 100)
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = 100
	}
	return skip, limit
}
