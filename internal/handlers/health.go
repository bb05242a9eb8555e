package handlers

import (
	"mudra/internal/repositories"

	"github.com/gofiber/fiber/v2"
)

// HealthCheck reports service liveness and database reachability.
func HealthCheck(c *fiber.Ctx) error {
	status := "ok"
	dbStatus := "ok"

	sqlDB, err := repositories.DB.DB()
	if err != nil || sqlDB.Ping() != nil {
		status = "degraded"
		dbStatus = "unreachable"
	}

	return c.JSON(fiber.Map{
		"status":   status,
		"database": dbStatus,
	})
}
