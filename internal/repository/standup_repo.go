package repository

import (
	"errors"

	"github.com/ekodrix-collab/ekodrix-hrms-sub001/internal/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type StandupRepository interface {
	Upsert(entry *models.StandupEntry) error
	GetByUserAndDate(userID uuid.UUID, date string) (*models.StandupEntry, error)
	ListByCompanyAndDate(companyID uuid.UUID, date string) ([]*models.StandupEntry, error)
}

type GormStandupRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormStandupRepository(db *gorm.DB) (*GormStandupRepository, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if err := db.AutoMigrate(&models.StandupEntry{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate standup_entries table")
		return nil, err
	}

	return &GormStandupRepository{
		db:     db,
		logger: logger,
	}, nil
}

// Upsert writes the user's entry for the day, overwriting any earlier
// submission for the same date.
func (r *GormStandupRepository) Upsert(entry *models.StandupEntry) error {
	if !entry.IsValid() {
		r.logger.WithField("user_id", entry.UserID).Warn("Invalid standup entry data")
		return errors.New("invalid standup entry data")
	}

	existing, err := r.GetByUserAndDate(entry.UserID, entry.Date)
	if err != nil {
		return err
	}

	if existing != nil {
		existing.Yesterday = entry.Yesterday
		existing.Today = entry.Today
		existing.Blockers = entry.Blockers

		if err := r.db.Save(existing).Error; err != nil {
			r.logger.WithError(err).Error("Failed to update standup entry")
			return err
		}

		*entry = *existing
		return nil
	}

	if err := r.db.Create(entry).Error; err != nil {
		r.logger.WithError(err).Error("Failed to create standup entry")
		return err
	}

	r.logger.WithFields(logrus.Fields{
		"user_id": entry.UserID,
		"date":    entry.Date,
	}).Info("Standup entry saved")

	return nil
}

func (r *GormStandupRepository) GetByUserAndDate(userID uuid.UUID, date string) (*models.StandupEntry, error) {
	var entry models.StandupEntry
	result := r.db.First(&entry, "user_id = ? AND date = ?", userID, date)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get standup entry")
		return nil, result.Error
	}

	return &entry, nil
}

func (r *GormStandupRepository) ListByCompanyAndDate(companyID uuid.UUID, date string) ([]*models.StandupEntry, error) {
	var entries []*models.StandupEntry
	result := r.db.
		Where("company_id = ? AND date = ?", companyID, date).
		Order("created_at ASC").
		Find(&entries)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to list standup entries")
		return nil, result.Error
	}

	return entries, nil
}
