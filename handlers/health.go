package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sahilchouksey/college-directory/database"
)

// Banner is the plain-text body of GET /
const Banner = "Maharashtra Colleges API is running!"

// HandleRoot answers GET /
func HandleRoot(c *fiber.Ctx, store database.Storage) error {
	return c.SendString(Banner)
}

// HandleCheckHealth pings the database; 503 when it is unreachable
func HandleCheckHealth(c *fiber.Ctx, store database.Storage) error {
	if err := store.HealthCheck(); err != nil {
		log.Warnw("health check failed", "error", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
