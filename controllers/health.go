package controllers

import (
	"umsjevari_go/services"

	"github.com/gofiber/fiber/v2"
)

type HealthController struct {
	HealthService *services.HealthService
}

// GetHealth reports overall service health. The service keeps answering in
// fallback mode, so a missing database yields "degraded", not an error.
func (hc *HealthController) GetHealth(c *fiber.Ctx) error {
	report := hc.HealthService.Check(c.Context())
	return c.JSON(report)
}
