package handler

import (
	"strconv"
	"time"

	"github.com/ekodrix-collab/ekodrix-hrms-sub001/pkg/httpx"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) AttendanceStatus(c *fiber.Ctx) error {
	userID := currentUserID(c)

	status, err := h.attendanceService.LiveStatusForToday(userID)
	if err != nil {
		return h.fail(c, err)
	}

	session, err := h.attendanceService.TodaySession(userID)
	if err != nil {
		return h.fail(c, err)
	}

	return httpx.Success(c, "attendance status", fiber.Map{
		"status":  status,
		"session": session,
	})
}

type punchInRequest struct {
	WorkMode string `json:"work_mode" validate:"omitempty,oneof=office home"`
}

func (h *Handler) PunchIn(c *fiber.Ctx) error {
	var req punchInRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return httpx.Error(c, fiber.StatusBadRequest, "invalid body")
		}
		if err := h.validate.Struct(&req); err != nil {
			return httpx.ValidationError(c, err)
		}
	}

	session, err := h.attendanceService.PunchIn(currentUserID(c), req.WorkMode)
	if err != nil {
		return h.fail(c, err)
	}

	return httpx.SuccessWithCode(c, fiber.StatusCreated, "punched in", session)
}

func (h *Handler) PunchOut(c *fiber.Ctx) error {
	session, err := h.attendanceService.PunchOut(currentUserID(c))
	if err != nil {
		return h.fail(c, err)
	}

	return httpx.Success(c, "punched out", session)
}

func (h *Handler) ToggleBreak(c *fiber.Ctx) error {
	status, err := h.attendanceService.ToggleBreak(currentUserID(c))
	if err != nil {
		return h.fail(c, err)
	}

	return httpx.Success(c, "break toggled", fiber.Map{"status": status})
}

func (h *Handler) AttendanceHistory(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 30)
	if limit < 1 || limit > 366 {
		limit = 30
	}

	sessions, err := h.attendanceService.History(currentUserID(c), limit)
	if err != nil {
		return h.fail(c, err)
	}

	return httpx.Success(c, "attendance history", sessions)
}

func (h *Handler) AttendanceSummary(c *fiber.Ctx) error {
	year, month, err := yearMonthQuery(c)
	if err != nil {
		return httpx.Error(c, fiber.StatusBadRequest, err.Error())
	}

	sessions, err := h.attendanceService.MonthSessions(currentUserID(c), year, month)
	if err != nil {
		return h.fail(c, err)
	}

	return httpx.Success(c, "attendance summary", sessions)
}

func yearMonthQuery(c *fiber.Ctx) (int, int, error) {
	now := time.Now()

	year := now.Year()
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 2000 || parsed > 2200 {
			return 0, 0, fiber.NewError(fiber.StatusBadRequest, "invalid year")
		}
		year = parsed
	}

	month := int(now.Month())
	if raw := c.Query("month"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 12 {
			return 0, 0, fiber.NewError(fiber.StatusBadRequest, "invalid month")
		}
		month = parsed
	}

	return year, month, nil
}
