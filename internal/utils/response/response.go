package response

import (
	stderrors "errors"

	"mudra/internal/errors"

	"github.com/gofiber/fiber/v2"
)

func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(fiber.Map{
		"message": message,
		"data":    data,
	})
}

func Created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": message,
		"data":    data,
	})
}

func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

// Domain maps a service error onto its HTTP representation. Domain
// errors carry their own status and code; anything else is reported
// as an internal error without leaking details.
func Domain(c *fiber.Ctx, err error) error {
	var derr *errors.DomainError
	if stderrors.As(err, &derr) {
		// The outer error may carry more detail than the base domain
		// value, e.g. which side of an authorization check failed.
		return c.Status(derr.Status).JSON(fiber.Map{
			"error": err.Error(),
			"code":  derr.Code,
		})
	}
	return Error(c, fiber.StatusInternalServerError, "internal server error")
}

func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

func Unauthorized(c *fiber.Ctx) error {
	return Error(c, fiber.StatusUnauthorized, "Unauthorized")
}
