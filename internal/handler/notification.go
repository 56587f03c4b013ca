package handler

import (
	"github.com/ekodrix-collab/ekodrix-hrms-sub001/pkg/httpx"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func (h *Handler) ListNotifications(c *fiber.Ctx) error {
	unreadOnly := c.QueryBool("unread", false)

	notifications, err := h.notificationService.ListForUser(currentUserID(c), unreadOnly)
	if err != nil {
		return h.fail(c, err)
	}

	return httpx.Success(c, "notifications", notifications)
}

func (h *Handler) MarkNotificationRead(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return httpx.Error(c, fiber.StatusBadRequest, "invalid notification id")
	}

	if err := h.notificationService.MarkRead(id); err != nil {
		return h.fail(c, err)
	}

	return httpx.Success(c, "notification read", nil)
}
