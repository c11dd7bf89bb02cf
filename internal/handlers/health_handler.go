package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/zara-ai/backend/internal/dto"
)

type HealthHandler struct {
	pingDB func() error
}

func NewHealthHandler(pingDB func() error) *HealthHandler {
	return &HealthHandler{pingDB: pingDB}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "up"
	if h.pingDB != nil {
		if err := h.pingDB(); err != nil {
			dbStatus = "down"
		}
	}
	return c.JSON(dto.OK(fiber.Map{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"db":        dbStatus,
	}))
}
