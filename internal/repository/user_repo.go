package repository

import (
	"errors"

	"github.com/ekodrix-collab/ekodrix-hrms-sub001/internal/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *models.User) error
	Update(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	ListByCompany(companyID uuid.UUID) ([]*models.User, error)
	UpdateRole(id uuid.UUID, role models.Role) error
}

type GormUserRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormUserRepository(db *gorm.DB) (*GormUserRepository, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if err := db.AutoMigrate(&models.User{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate users table")
		return nil, err
	}

	logger.Info("User repository initialized")

	return &GormUserRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *GormUserRepository) Create(user *models.User) error {
	r.logger.WithField("email", user.Email).Info("Creating user")

	result := r.db.Create(user)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to create user")
		return result.Error
	}

	return nil
}

func (r *GormUserRepository) Update(user *models.User) error {
	result := r.db.Save(user)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to update user")
		return result.Error
	}

	return nil
}

func (r *GormUserRepository) GetByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	result := r.db.First(&user, "id = ?", id)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get user by ID")
		return nil, result.Error
	}

	return &user, nil
}

func (r *GormUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	result := r.db.First(&user, "email = ?", email)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		r.logger.WithField("email", email).Debug("User not found")
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get user by email")
		return nil, result.Error
	}

	return &user, nil
}

func (r *GormUserRepository) ListByCompany(companyID uuid.UUID) ([]*models.User, error) {
	var users []*models.User
	result := r.db.Where("company_id = ?", companyID).Order("first_name ASC").Find(&users)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to list users by company")
		return nil, result.Error
	}

	return users, nil
}

func (r *GormUserRepository) UpdateRole(id uuid.UUID, role models.Role) error {
	result := r.db.Model(&models.User{}).Where("id = ?", id).Update("role", string(role))
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to update user role")
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
