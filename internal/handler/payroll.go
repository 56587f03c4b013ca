package handler

import (
	"github.com/ekodrix-collab/ekodrix-hrms-sub001/pkg/httpx"

	"github.com/gofiber/fiber/v2"
)

type expenseRequest struct {
	Date     string  `json:"date" validate:"required,datetime=2006-01-02"`
	Category string  `json:"category" validate:"required,oneof=salary reimbursement bonus deduction"`
	Amount   float64 `json:"amount" validate:"required,gt=0"`
	Note     string  `json:"note" validate:"max=500"`
}

func (h *Handler) RecordExpense(c *fiber.Ctx) error {
	var req expenseRequest
	if err := c.BodyParser(&req); err != nil {
		return httpx.Error(c, fiber.StatusBadRequest, "invalid body")
	}
	if err := h.validate.Struct(&req); err != nil {
		return httpx.ValidationError(c, err)
	}

	entry, err := h.payrollService.RecordExpense(
		currentCompanyID(c), currentUserID(c), req.Date, req.Category, req.Amount, req.Note)
	if err != nil {
		return h.fail(c, err)
	}

	return httpx.SuccessWithCode(c, fiber.StatusCreated, "expense recorded", entry)
}

func (h *Handler) ListExpenses(c *fiber.Ctx) error {
	year, month, err := yearMonthQuery(c)
	if err != nil {
		return httpx.Error(c, fiber.StatusBadRequest, err.Error())
	}

	entries, err := h.payrollService.ListExpenses(currentUserID(c), year, month)
	if err != nil {
		return h.fail(c, err)
	}

	return httpx.Success(c, "expenses", entries)
}

func (h *Handler) PayrollSummary(c *fiber.Ctx) error {
	year, month, err := yearMonthQuery(c)
	if err != nil {
		return httpx.Error(c, fiber.StatusBadRequest, err.Error())
	}

	summary, err := h.payrollService.Summary(currentUserID(c), year, month)
	if err != nil {
		return h.fail(c, err)
	}

	return httpx.Success(c, "payroll summary", summary)
}
