package repository

import (
	"errors"

	"github.com/ekodrix-collab/ekodrix-hrms-sub001/internal/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type LeaveRepository interface {
	Create(request *models.LeaveRequest) error
	Update(request *models.LeaveRequest) error
	GetByID(id uuid.UUID) (*models.LeaveRequest, error)
	ListByUser(userID uuid.UUID) ([]*models.LeaveRequest, error)
	ListByCompany(companyID uuid.UUID, status string) ([]*models.LeaveRequest, error)
}

type GormLeaveRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormLeaveRepository(db *gorm.DB) (*GormLeaveRepository, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if err := db.AutoMigrate(&models.LeaveRequest{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate leave_requests table")
		return nil, err
	}

	return &GormLeaveRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *GormLeaveRepository) Create(request *models.LeaveRequest) error {
	if !request.IsValid() {
		r.logger.WithField("user_id", request.UserID).Warn("Invalid leave request data")
		return errors.New("invalid leave request data")
	}

	result := r.db.Create(request)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to create leave request")
		return result.Error
	}

	r.logger.WithFields(logrus.Fields{
		"id":      request.ID,
		"user_id": request.UserID,
		"type":    request.Type,
	}).Info("Leave request created")

	return nil
}

func (r *GormLeaveRepository) Update(request *models.LeaveRequest) error {
	result := r.db.Save(request)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to update leave request")
		return result.Error
	}

	return nil
}

func (r *GormLeaveRepository) GetByID(id uuid.UUID) (*models.LeaveRequest, error) {
	var request models.LeaveRequest
	result := r.db.First(&request, "id = ?", id)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get leave request by ID")
		return nil, result.Error
	}

	return &request, nil
}

func (r *GormLeaveRepository) ListByUser(userID uuid.UUID) ([]*models.LeaveRequest, error) {
	var requests []*models.LeaveRequest
	result := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&requests)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to list leave requests by user")
		return nil, result.Error
	}

	return requests, nil
}

// ListByCompany returns the company's requests, optionally filtered by status.
func (r *GormLeaveRepository) ListByCompany(companyID uuid.UUID, status string) ([]*models.LeaveRequest, error) {
	var requests []*models.LeaveRequest

	query := r.db.Where("company_id = ?", companyID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	result := query.Order("created_at DESC").Find(&requests)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to list leave requests by company")
		return nil, result.Error
	}

	return requests, nil
}
