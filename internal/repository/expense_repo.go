package repository

import (
	"errors"
	"time"

	"github.com/ekodrix-collab/ekodrix-hrms-sub001/internal/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ExpenseRepository interface {
	Create(entry *models.ExpenseEntry) error
	ListByUserAndMonth(userID uuid.UUID, year, month int) ([]*models.ExpenseEntry, error)
	ListByCompanyAndMonth(companyID uuid.UUID, year, month int) ([]*models.ExpenseEntry, error)
	MonthlyNet(userID uuid.UUID, year, month int) (float64, error)
}

type GormExpenseRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormExpenseRepository(db *gorm.DB) (*GormExpenseRepository, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if err := db.AutoMigrate(&models.ExpenseEntry{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate expense_entries table")
		return nil, err
	}

	return &GormExpenseRepository{
		db:     db,
		logger: logger,
	}, nil
}

// Create appends a ledger row. The ledger is append-only; there is no update
// or delete path.
func (r *GormExpenseRepository) Create(entry *models.ExpenseEntry) error {
	if !entry.IsValid() {
		r.logger.WithField("user_id", entry.UserID).Warn("Invalid expense entry data")
		return errors.New("invalid expense entry data")
	}

	result := r.db.Create(entry)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to create expense entry")
		return result.Error
	}

	r.logger.WithFields(logrus.Fields{
		"id":       entry.ID,
		"user_id":  entry.UserID,
		"category": entry.Category,
		"amount":   entry.Amount,
	}).Info("Expense entry recorded")

	return nil
}

func monthBounds(year, month int) (string, string) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return start.Format("2006-01-02"), end.Format("2006-01-02")
}

func (r *GormExpenseRepository) ListByUserAndMonth(userID uuid.UUID, year, month int) ([]*models.ExpenseEntry, error) {
	var entries []*models.ExpenseEntry
	start, end := monthBounds(year, month)

	result := r.db.
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, start, end).
		Order("date ASC").
		Find(&entries)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to list expense entries by user")
		return nil, result.Error
	}

	return entries, nil
}

func (r *GormExpenseRepository) ListByCompanyAndMonth(companyID uuid.UUID, year, month int) ([]*models.ExpenseEntry, error) {
	var entries []*models.ExpenseEntry
	start, end := monthBounds(year, month)

	result := r.db.
		Where("company_id = ? AND date BETWEEN ? AND ?", companyID, start, end).
		Order("date ASC").
		Find(&entries)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to list expense entries by company")
		return nil, result.Error
	}

	return entries, nil
}

// MonthlyNet sums the user's ledger for the month with deduction sign applied.
func (r *GormExpenseRepository) MonthlyNet(userID uuid.UUID, year, month int) (float64, error) {
	entries, err := r.ListByUserAndMonth(userID, year, month)
	if err != nil {
		return 0, err
	}

	var net float64
	for _, entry := range entries {
		net += entry.Signed()
	}

	return models.Round2(net), nil
}
