package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ekodrix-collab/ekodrix-hrms-sub001/internal/clock"
	"github.com/ekodrix-collab/ekodrix-hrms-sub001/internal/config"
	"github.com/ekodrix-collab/ekodrix-hrms-sub001/internal/handler"
	"github.com/ekodrix-collab/ekodrix-hrms-sub001/internal/repository"
	"github.com/ekodrix-collab/ekodrix-hrms-sub001/internal/service"
	"github.com/ekodrix-collab/ekodrix-hrms-sub001/pkg/telegram"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	logrus.Info("Initializing config...")
	cfg := config.GetAppConfig()
	logrus.Info("Config initialized...")

	db, err := gorm.Open(sqlite.Open(cfg.DatabaseURL), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		logrus.Fatal("Failed to connect to database:", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		logrus.Fatal("Failed to get database instance:", err)
	}

	if _, err = sqlDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		logrus.Infof("Warning: Failed to enable foreign keys: %v", err)
	}

	resolver, err := clock.NewResolver(clock.SystemClock{}, cfg.Timezone)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load timezone")
	}

	companyRepo, err := repository.NewGormCompanyRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create company repository")
	}

	userRepo, err := repository.NewGormUserRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create user repository")
	}

	attendanceRepo, err := repository.NewGormAttendanceRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create attendance repository")
	}

	taskRepo, err := repository.NewGormTaskRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create task repository")
	}

	standupRepo, err := repository.NewGormStandupRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create standup repository")
	}

	expenseRepo, err := repository.NewGormExpenseRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create expense repository")
	}

	leaveRepo, err := repository.NewGormLeaveRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create leave repository")
	}

	notificationRepo, err := repository.NewGormNotificationRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create notification repository")
	}

	var telegramClient *telegram.Client
	if cfg.TelegramToken != "" {
		telegramClient, err = telegram.NewClient(cfg.TelegramToken)
		if err != nil {
			logrus.Infof("Warning: Failed to create Telegram client: %v", err)
			telegramClient = nil
		} else {
			logrus.Info("Telegram notifications enabled")
		}
	}

	notificationService := service.NewNotificationService(notificationRepo, userRepo, telegramClient)
	authService := service.NewAuthService(userRepo, companyRepo, cfg.JWTSecret)
	attendanceService := service.NewAttendanceService(attendanceRepo, resolver)
	taskService := service.NewTaskService(taskRepo, notificationService)
	standupService := service.NewStandupService(standupRepo, resolver)
	payrollService := service.NewPayrollService(expenseRepo, attendanceRepo, userRepo)
	leaveService := service.NewLeaveService(leaveRepo, userRepo, notificationService)

	if err := authService.InitializeAdmin(cfg.BaseAdminEmail); err != nil {
		logrus.Infof("Warning: Failed to initialize admin: %v", err)
	} else if cfg.BaseAdminEmail != "" {
		logrus.Infof("Admin initialized: %s", cfg.BaseAdminEmail)
	}

	watchdog := service.NewAutoCloseWatchdog(
		attendanceRepo,
		resolver,
		notificationService,
		cfg.AutoCloseHour,
		cfg.AutoCloseMinute,
		time.Duration(cfg.WatchdogIntervalSeconds)*time.Second,
	)
	watchdog.Start(context.Background())

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	h := handler.NewHandler(
		authService,
		attendanceService,
		taskService,
		standupService,
		payrollService,
		leaveService,
		notificationService,
		cfg.JWTSecret,
	)
	h.RegisterRoutes(app)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			logrus.WithError(err).Fatal("Server stopped")
		}
	}()

	logrus.Infof("Server started on port %s. Press Ctrl+C to stop.", cfg.Port)
	<-stop

	watchdog.Stop()

	if err := app.Shutdown(); err != nil {
		logrus.Infof("Error shutting down server: %v", err)
	}

	if err := sqlDB.Close(); err != nil {
		logrus.Infof("Error closing database: %v", err)
	}

	logrus.Info("Server stopped gracefully")
}
