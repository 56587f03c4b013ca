package handler

import (
	"github.com/ekodrix-collab/ekodrix-hrms-sub001/pkg/httpx"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type createTaskRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Description string `json:"description"`
	Column      string `json:"column" validate:"omitempty,oneof=todo in_progress review done"`
	AssigneeID  string `json:"assignee_id" validate:"omitempty,uuid4"`
}

type updateTaskRequest struct {
	Title       string `json:"title" validate:"omitempty,min=1,max=200"`
	Description string `json:"description"`
	AssigneeID  string `json:"assignee_id" validate:"omitempty,uuid4"`
}

type moveTaskRequest struct {
	Column   string `json:"column" validate:"required,oneof=todo in_progress review done"`
	Position int    `json:"position" validate:"min=0"`
}

func parseAssignee(raw string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func (h *Handler) Board(c *fiber.Ctx) error {
	board, err := h.taskService.Board(currentCompanyID(c))
	if err != nil {
		return h.fail(c, err)
	}

	return httpx.Success(c, "board", board)
}

func (h *Handler) CreateTask(c *fiber.Ctx) error {
	var req createTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return httpx.Error(c, fiber.StatusBadRequest, "invalid body")
	}
	if err := h.validate.Struct(&req); err != nil {
		return httpx.ValidationError(c, err)
	}

	assigneeID, err := parseAssignee(req.AssigneeID)
	if err != nil {
		return httpx.Error(c, fiber.StatusBadRequest, "invalid assignee id")
	}

	task, err := h.taskService.Create(currentCompanyID(c), currentUserID(c), req.Title, req.Description, req.Column, assigneeID)
	if err != nil {
		return h.fail(c, err)
	}

	return httpx.SuccessWithCode(c, fiber.StatusCreated, "task created", task)
}

func (h *Handler) UpdateTask(c *fiber.Ctx) error {
	taskID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return httpx.Error(c, fiber.StatusBadRequest, "invalid task id")
	}

	var req updateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return httpx.Error(c, fiber.StatusBadRequest, "invalid body")
	}
	if err := h.validate.Struct(&req); err != nil {
		return httpx.ValidationError(c, err)
	}

	assigneeID, err := parseAssignee(req.AssigneeID)
	if err != nil {
		return httpx.Error(c, fiber.StatusBadRequest, "invalid assignee id")
	}

	task, err := h.taskService.Update(currentCompanyID(c), taskID, req.Title, req.Description, assigneeID)
	if err != nil {
		return h.fail(c, err)
	}

	return httpx.Success(c, "task updated", task)
}

func (h *Handler) MoveTask(c *fiber.Ctx) error {
	taskID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return httpx.Error(c, fiber.StatusBadRequest, "invalid task id")
	}

	var req moveTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return httpx.Error(c, fiber.StatusBadRequest, "invalid body")
	}
	if err := h.validate.Struct(&req); err != nil {
		return httpx.ValidationError(c, err)
	}

	task, err := h.taskService.Move(currentCompanyID(c), taskID, req.Column, req.Position)
	if err != nil {
		return h.fail(c, err)
	}

	return httpx.Success(c, "task moved", task)
}

func (h *Handler) DeleteTask(c *fiber.Ctx) error {
	taskID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return httpx.Error(c, fiber.StatusBadRequest, "invalid task id")
	}

	if err := h.taskService.Delete(currentCompanyID(c), taskID); err != nil {
		return h.fail(c, err)
	}

	return httpx.Success(c, "task deleted", nil)
}
