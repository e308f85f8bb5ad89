package handlers

import (
	"jobdesk-api/internal/config"
	"jobdesk-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	db *gorm.DB
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Check reports service and database health
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} response.Response
// @Failure 503 {object} response.Response
// @Router /health [get]
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	if err := config.HealthCheck(h.db); err != nil {
		return response.Error(c, fiber.StatusServiceUnavailable, "Database unavailable")
	}

	return response.Success(c, "OK", fiber.Map{
		"status": "healthy",
	})
}
