package handlers

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/tenant"
	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	registry *tenant.Registry
}

func NewHealthHandler(registry *tenant.Registry) *HealthHandler {
	return &HealthHandler{registry: registry}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	status := "ok"
	dbStatus := "ok"
	if err := database.Ping(c.UserContext(), h.registry.Control()); err != nil {
		status = "degraded"
		dbStatus = "unhealthy: " + err.Error()
	}

	code := fiber.StatusOK
	if status != "ok" {
		code = fiber.StatusServiceUnavailable
	}
	return c.Status(code).JSON(dto.HealthResponse{
		Status:      status,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		DB:          dbStatus,
		TenantPools: h.registry.Len(),
	})
}
