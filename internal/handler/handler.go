package handler

import (
	"errors"

	"github.com/ekodrix-collab/ekodrix-hrms-sub001/internal/repository"
	"github.com/ekodrix-collab/ekodrix-hrms-sub001/internal/service"
	"github.com/ekodrix-collab/ekodrix-hrms-sub001/pkg/httpx"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	authService         *service.AuthService
	attendanceService   *service.AttendanceService
	taskService         *service.TaskService
	standupService      *service.StandupService
	payrollService      *service.PayrollService
	leaveService        *service.LeaveService
	notificationService *service.NotificationService

	jwtSecret string
	validate  *validator.Validate
	logger    *logrus.Logger
}

func NewHandler(
	authService *service.AuthService,
	attendanceService *service.AttendanceService,
	taskService *service.TaskService,
	standupService *service.StandupService,
	payrollService *service.PayrollService,
	leaveService *service.LeaveService,
	notificationService *service.NotificationService,
	jwtSecret string,
) *Handler {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &Handler{
		authService:         authService,
		attendanceService:   attendanceService,
		taskService:         taskService,
		standupService:      standupService,
		payrollService:      payrollService,
		leaveService:        leaveService,
		notificationService: notificationService,
		jwtSecret:           jwtSecret,
		validate:            validator.New(),
		logger:              logger,
	}
}

func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", h.Register)
	auth.Post("/login", h.Login)

	authed := api.Group("", h.AuthRequired())

	attendance := authed.Group("/attendance")
	attendance.Get("/status", h.AttendanceStatus)
	attendance.Post("/punch-in", h.PunchIn)
	attendance.Post("/punch-out", h.PunchOut)
	attendance.Post("/break", h.ToggleBreak)
	attendance.Get("/history", h.AttendanceHistory)
	attendance.Get("/summary", h.AttendanceSummary)

	tasks := authed.Group("/tasks")
	tasks.Get("", h.Board)
	tasks.Post("", h.CreateTask)
	tasks.Put("/:id", h.UpdateTask)
	tasks.Post("/:id/move", h.MoveTask)
	tasks.Delete("/:id", h.DeleteTask)

	standups := authed.Group("/standups")
	standups.Get("", h.ListStandups)
	standups.Post("", h.SubmitStandup)

	expenses := authed.Group("/expenses")
	expenses.Get("", h.ListExpenses)
	expenses.Post("", h.RecordExpense)

	authed.Get("/payroll/summary", h.PayrollSummary)

	leaves := authed.Group("/leaves")
	leaves.Get("", h.ListLeaves)
	leaves.Post("", h.RequestLeave)
	leaves.Post("/:id/review", h.ReviewLeave)

	notifications := authed.Group("/notifications")
	notifications.Get("", h.ListNotifications)
	notifications.Post("/:id/read", h.MarkNotificationRead)

	users := authed.Group("/users")
	users.Get("", h.ListUsers)
	users.Post("/telegram", h.LinkTelegram)

	admin := authed.Group("/admin", h.RoleRequired("admin"))
	admin.Post("/users/:id/role", h.UpdateUserRole)
	admin.Post("/users/:id/salary", h.SetBaseSalary)
}

// fail maps domain errors to HTTP statuses; unknown errors stay internal.
func (h *Handler) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, repository.ErrSessionConflict):
		return httpx.Error(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, service.ErrNoOpenSession):
		return httpx.Error(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, repository.ErrNotFound):
		return httpx.Error(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		return httpx.Error(c, fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrEmailTaken), errors.Is(err, service.ErrAlreadyReviewed):
		return httpx.Error(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, service.ErrForbidden):
		return httpx.Error(c, fiber.StatusForbidden, err.Error())
	default:
		h.logger.WithError(err).Error("Request failed")
		return httpx.Error(c, fiber.StatusInternalServerError, "internal error")
	}
}
