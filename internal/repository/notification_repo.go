package repository

import (
	"errors"
	"time"

	"github.com/ekodrix-collab/ekodrix-hrms-sub001/internal/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(notification *models.Notification) error
	ListByUser(userID uuid.UUID, unreadOnly bool) ([]*models.Notification, error)
	MarkRead(id uuid.UUID, at time.Time) error
}

type GormNotificationRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormNotificationRepository(db *gorm.DB) (*GormNotificationRepository, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if err := db.AutoMigrate(&models.Notification{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate notifications table")
		return nil, err
	}

	return &GormNotificationRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *GormNotificationRepository) Create(notification *models.Notification) error {
	result := r.db.Create(notification)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to create notification")
		return result.Error
	}

	return nil
}

func (r *GormNotificationRepository) ListByUser(userID uuid.UUID, unreadOnly bool) ([]*models.Notification, error) {
	var notifications []*models.Notification

	query := r.db.Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("read_at IS NULL")
	}

	result := query.Order("created_at DESC").Limit(100).Find(&notifications)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to list notifications")
		return nil, result.Error
	}

	return notifications, nil
}

// MarkRead is idempotent: marking an already-read notification keeps its
// original read timestamp.
func (r *GormNotificationRepository) MarkRead(id uuid.UUID, at time.Time) error {
	var notification models.Notification
	result := r.db.First(&notification, "id = ?", id)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get notification")
		return result.Error
	}

	if notification.ReadAt != nil {
		return nil
	}

	readAt := at
	notification.ReadAt = &readAt

	if err := r.db.Save(&notification).Error; err != nil {
		r.logger.WithError(err).Error("Failed to mark notification read")
		return err
	}

	return nil
}
