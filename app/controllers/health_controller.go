package controllers

import (
	"github.com/gofiber/fiber/v2"
)

// HealthController reports liveness of the API and its database.
type HealthController struct {
	ping func() error
}

// NewHealthController creates a health controller using ping to probe the database.
func NewHealthController(ping func() error) *HealthController {
	return &HealthController{ping: ping}
}

func (hc *HealthController) HandleHealthz(c *fiber.Ctx) error {
	if hc.ping != nil {
		if err := hc.ping(); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable", "database": "down"})
		}
	}
	return c.JSON(fiber.Map{"status": "ok", "database": "up"})
}
