package handler

import (
	"strconv"

	"github.com/ekodrix-collab/ekodrix-hrms-sub001/internal/models"
	"github.com/ekodrix-collab/ekodrix-hrms-sub001/pkg/httpx"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type registerRequest struct {
	Company   string `json:"company" validate:"required,min=2"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *Handler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return httpx.Error(c, fiber.StatusBadRequest, "invalid body")
	}
	if err := h.validate.Struct(&req); err != nil {
		return httpx.ValidationError(c, err)
	}

	user, err := h.authService.Register(req.Company, req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		return h.fail(c, err)
	}

	return httpx.SuccessWithCode(c, fiber.StatusCreated, "registered", user)
}

func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return httpx.Error(c, fiber.StatusBadRequest, "invalid body")
	}
	if err := h.validate.Struct(&req); err != nil {
		return httpx.ValidationError(c, err)
	}

	token, user, redirect, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		return h.fail(c, err)
	}

	return httpx.Success(c, "logged in", fiber.Map{
		"token":    token,
		"user":     user,
		"redirect": redirect,
	})
}

func (h *Handler) ListUsers(c *fiber.Ctx) error {
	users, err := h.authService.ListCompanyUsers(currentCompanyID(c))
	if err != nil {
		return h.fail(c, err)
	}

	return httpx.Success(c, "users", users)
}

type linkTelegramRequest struct {
	ChatID int64 `json:"chat_id" validate:"required"`
}

func (h *Handler) LinkTelegram(c *fiber.Ctx) error {
	var req linkTelegramRequest
	if err := c.BodyParser(&req); err != nil {
		return httpx.Error(c, fiber.StatusBadRequest, "invalid body")
	}
	if err := h.validate.Struct(&req); err != nil {
		return httpx.ValidationError(c, err)
	}

	if err := h.authService.LinkTelegram(currentUserID(c), req.ChatID); err != nil {
		return h.fail(c, err)
	}

	return httpx.Success(c, "telegram linked", nil)
}

type updateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin manager employee"`
}

func (h *Handler) UpdateUserRole(c *fiber.Ctx) error {
	targetID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return httpx.Error(c, fiber.StatusBadRequest, "invalid user id")
	}

	var req updateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return httpx.Error(c, fiber.StatusBadRequest, "invalid body")
	}
	if err := h.validate.Struct(&req); err != nil {
		return httpx.ValidationError(c, err)
	}

	if err := h.authService.UpdateRole(currentUserID(c), targetID, models.Role(req.Role)); err != nil {
		return h.fail(c, err)
	}

	return httpx.Success(c, "role updated", nil)
}

type setSalaryRequest struct {
	Amount string `json:"amount" validate:"required"`
}

func (h *Handler) SetBaseSalary(c *fiber.Ctx) error {
	targetID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return httpx.Error(c, fiber.StatusBadRequest, "invalid user id")
	}

	var req setSalaryRequest
	if err := c.BodyParser(&req); err != nil {
		return httpx.Error(c, fiber.StatusBadRequest, "invalid body")
	}
	if err := h.validate.Struct(&req); err != nil {
		return httpx.ValidationError(c, err)
	}

	amount, err := strconv.ParseFloat(req.Amount, 64)
	if err != nil || amount < 0 {
		return httpx.Error(c, fiber.StatusBadRequest, "invalid amount")
	}

	if err := h.authService.SetBaseSalary(currentUserID(c), targetID, amount); err != nil {
		return h.fail(c, err)
	}

	return httpx.Success(c, "salary updated", nil)
}
