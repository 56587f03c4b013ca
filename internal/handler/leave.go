package handler

import (
	"github.com/ekodrix-collab/ekodrix-hrms-sub001/pkg/httpx"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type leaveRequestBody struct {
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
	Type      string `json:"type" validate:"required,oneof=vacation sick_leave day_off"`
	Reason    string `json:"reason" validate:"max=500"`
}

type reviewLeaveRequest struct {
	Approve bool `json:"approve"`
}

func (h *Handler) RequestLeave(c *fiber.Ctx) error {
	var req leaveRequestBody
	if err := c.BodyParser(&req); err != nil {
		return httpx.Error(c, fiber.StatusBadRequest, "invalid body")
	}
	if err := h.validate.Struct(&req); err != nil {
		return httpx.ValidationError(c, err)
	}

	request, err := h.leaveService.Request(
		currentCompanyID(c), currentUserID(c), req.StartDate, req.EndDate, req.Type, req.Reason)
	if err != nil {
		return h.fail(c, err)
	}

	return httpx.SuccessWithCode(c, fiber.StatusCreated, "leave requested", request)
}

func (h *Handler) ListLeaves(c *fiber.Ctx) error {
	// Managers and admins see the whole company, filtered by ?status=.
	role, _ := c.Locals("role").(string)
	if role == "admin" || role == "manager" {
		requests, err := h.leaveService.ForCompany(currentCompanyID(c), c.Query("status"))
		if err != nil {
			return h.fail(c, err)
		}
		return httpx.Success(c, "leave requests", requests)
	}

	requests, err := h.leaveService.Mine(currentUserID(c))
	if err != nil {
		return h.fail(c, err)
	}

	return httpx.Success(c, "leave requests", requests)
}

func (h *Handler) ReviewLeave(c *fiber.Ctx) error {
	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return httpx.Error(c, fiber.StatusBadRequest, "invalid request id")
	}

	var req reviewLeaveRequest
	if err := c.BodyParser(&req); err != nil {
		return httpx.Error(c, fiber.StatusBadRequest, "invalid body")
	}

	request, err := h.leaveService.Review(currentUserID(c), requestID, req.Approve)
	if err != nil {
		return h.fail(c, err)
	}

	return httpx.Success(c, "leave reviewed", request)
}
