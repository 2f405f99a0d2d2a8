package apiv1

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/pressroom/newshub/internal/pkg/workflow"
)

// writeError maps the domain error taxonomy onto HTTP status codes:
// validation 422, permission 403, illegal transitions and conflicts 409,
// missing rows 404, everything else 500.
func writeError(c *fiber.Ctx, err error) error {
	switch {
	case workflow.IsValidation(err):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":   "validation_failed",
			"message": err.Error(),
		})
	case workflow.IsPermission(err):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":   "forbidden",
			"message": err.Error(),
		})
	case workflow.IsState(err):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":   "invalid_state",
			"message": err.Error(),
		})
	case workflow.IsConflict(err):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":   workflow.ConflictReason(err),
			"message": err.Error(),
		})
	case errors.Is(err, gorm.ErrRecordNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "not_found",
			"message": "resource not found",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "internal_error",
			"message": "something went wrong",
		})
	}
}
