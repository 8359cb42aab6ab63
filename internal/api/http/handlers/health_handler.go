package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// Pinger reports connectivity for a backing store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports liveness and readiness of optional backends.
type HealthHandler struct {
	postgres Pinger
	redis    Pinger
}

// NewHealthHandler constructs the handler. Either pinger may be nil when
// the backend is not configured.
func NewHealthHandler(postgres, redis Pinger) *HealthHandler {
	return &HealthHandler{postgres: postgres, redis: redis}
}

// Live responds to GET /health/live.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Ready responds to GET /health/ready, checking each configured backend.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	checks := fiber.Map{}
	ready := true
	if h.postgres != nil {
		up := ping(c.Context(), h.postgres)
		ready = ready && up
		checks["postgres"] = state(up)
	}
	if h.redis != nil {
		up := ping(c.Context(), h.redis)
		ready = ready && up
		checks["redis"] = state(up)
	}

	status := fiber.StatusOK
	overall := "ready"
	if !ready {
		status = fiber.StatusServiceUnavailable
		overall = "degraded"
	}
	return c.Status(status).JSON(fiber.Map{
		"status": overall,
		"checks": checks,
	})
}

func ping(ctx context.Context, p Pinger) bool {
	return p.Ping(ctx) == nil
}

func state(up bool) string {
	if up {
		return "up"
	}
	return "unreachable"
}
