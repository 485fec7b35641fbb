package api

import (
	"github.com/gofiber/fiber/v3"

	"skinscout/internal/models"
)

// ServiceName is reported by the health endpoint.
const ServiceName = "Skincare Ingredient Scout API"

// Health handles GET /api/health.
func Health(c fiber.Ctx) error {
	return c.JSON(models.ServiceHealthResponse{
		Status:  "healthy",
		Service: ServiceName,
	})
}
