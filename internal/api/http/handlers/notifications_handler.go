package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/turnkey-platform/turnkey-service/internal/notify"
	"github.com/turnkey-platform/turnkey-service/pkg/errorutil"
)

// NotificationsHandler exposes the in-app notification center.
type NotificationsHandler struct {
	center *notify.Center
}

// NewNotificationsHandler constructs the handler.
func NewNotificationsHandler(center *notify.Center) *NotificationsHandler {
	return &NotificationsHandler{center: center}
}

// List handles GET /notifications: notifications still inside their
// display window, oldest first.
func (h *NotificationsHandler) List(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.center.Active()})
}

// Dismiss handles DELETE /notifications/:id. Dismissing an expired or
// unknown id succeeds silently.
func (h *NotificationsHandler) Dismiss(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return errorutil.NewValidationError("invalid notification id", map[string]any{"id": c.Params("id")})
	}
	h.center.Dismiss(id)
	return c.JSON(fiber.Map{"data": fiber.Map{"id": id}})
}
