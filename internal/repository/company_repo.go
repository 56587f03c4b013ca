package repository

import (
	"errors"

	"github.com/ekodrix-collab/ekodrix-hrms-sub001/internal/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type CompanyRepository interface {
	Create(company *models.Company) error
	GetByID(id uuid.UUID) (*models.Company, error)
	GetByName(name string) (*models.Company, error)
}

type GormCompanyRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormCompanyRepository(db *gorm.DB) (*GormCompanyRepository, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if err := db.AutoMigrate(&models.Company{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate companies table")
		return nil, err
	}

	return &GormCompanyRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *GormCompanyRepository) Create(company *models.Company) error {
	result := r.db.Create(company)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to create company")
		return result.Error
	}

	return nil
}

func (r *GormCompanyRepository) GetByID(id uuid.UUID) (*models.Company, error) {
	var company models.Company
	result := r.db.First(&company, "id = ?", id)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get company by ID")
		return nil, result.Error
	}

	return &company, nil
}

func (r *GormCompanyRepository) GetByName(name string) (*models.Company, error) {
	var company models.Company
	result := r.db.First(&company, "name = ?", name)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get company by name")
		return nil, result.Error
	}

	return &company, nil
}
