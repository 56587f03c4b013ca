package service

import (
	"time"

	"github.com/ekodrix-collab/ekodrix-hrms-sub001/internal/models"
	"github.com/ekodrix-collab/ekodrix-hrms-sub001/internal/repository"
	"github.com/ekodrix-collab/ekodrix-hrms-sub001/pkg/telegram"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// NotificationService persists in-app notifications and, when a Telegram
// client is configured and the user linked a chat, pushes them out as well.
// Pushes are fire-and-forget.
type NotificationService struct {
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
	telegramClient   *telegram.Client // nil when no bot token configured
	logger           *logrus.Logger
}

func NewNotificationService(
	notificationRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	telegramClient *telegram.Client,
) *NotificationService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &NotificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		telegramClient:   telegramClient,
		logger:           logger,
	}
}

// Notify records a notification for the user and schedules the optional push.
func (s *NotificationService) Notify(userID uuid.UUID, kind, message string) error {
	notification := &models.Notification{
		UserID:  userID,
		Kind:    kind,
		Message: message,
	}

	if err := s.notificationRepo.Create(notification); err != nil {
		s.logger.WithError(err).Error("Failed to record notification")
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"user_id": userID,
		"kind":    kind,
	}).Info("Notification recorded")

	go s.push(userID, message)

	return nil
}

func (s *NotificationService) push(userID uuid.UUID, message string) {
	if s.telegramClient == nil {
		return
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil || user == nil || user.TelegramChatID == 0 {
		return
	}

	if err := s.telegramClient.SendMessage(user.TelegramChatID, message); err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Warn("Telegram push failed")
	}
}

// ListForUser returns the user's notifications, newest first.
func (s *NotificationService) ListForUser(userID uuid.UUID, unreadOnly bool) ([]*models.Notification, error) {
	return s.notificationRepo.ListByUser(userID, unreadOnly)
}

// MarkRead acknowledges a notification.
func (s *NotificationService) MarkRead(id uuid.UUID) error {
	return s.notificationRepo.MarkRead(id, time.Now())
}
