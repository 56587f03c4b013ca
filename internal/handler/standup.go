package handler

import (
	"github.com/ekodrix-collab/ekodrix-hrms-sub001/pkg/httpx"

	"github.com/gofiber/fiber/v2"
)

type standupRequest struct {
	Yesterday string `json:"yesterday" validate:"max=2000"`
	Today     string `json:"today" validate:"required,max=2000"`
	Blockers  string `json:"blockers" validate:"max=2000"`
}

func (h *Handler) SubmitStandup(c *fiber.Ctx) error {
	var req standupRequest
	if err := c.BodyParser(&req); err != nil {
		return httpx.Error(c, fiber.StatusBadRequest, "invalid body")
	}
	if err := h.validate.Struct(&req); err != nil {
		return httpx.ValidationError(c, err)
	}

	entry, err := h.standupService.Submit(currentCompanyID(c), currentUserID(c), req.Yesterday, req.Today, req.Blockers)
	if err != nil {
		return h.fail(c, err)
	}

	return httpx.SuccessWithCode(c, fiber.StatusCreated, "standup saved", entry)
}

func (h *Handler) ListStandups(c *fiber.Ctx) error {
	entries, err := h.standupService.ForDate(currentCompanyID(c), c.Query("date"))
	if err != nil {
		return h.fail(c, err)
	}

	return httpx.Success(c, "standups", entries)
}
