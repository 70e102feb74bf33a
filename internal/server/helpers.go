package server

import (
	"errors"

	"cadence/internal/models"

	"github.com/gofiber/fiber/v2"
)

// currentUserID reads the authenticated user's ID from locals. The auth
// middleware guarantees it is set on every protected route.
func currentUserID(c *fiber.Ctx) uint {
	return c.Locals("userID").(uint)
}

// respondServiceError writes the response for an error returned by the
// service layer, mapping AppError codes to their HTTP status.
func respondServiceError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return models.RespondWithError(c, appErr.StatusCode(), appErr)
	}
	return models.RespondWithError(c, fiber.StatusInternalServerError,
		models.NewInternalError(err))
}
