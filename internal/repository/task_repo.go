package repository

import (
	"errors"

	"github.com/ekodrix-collab/ekodrix-hrms-sub001/internal/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type TaskRepository interface {
	Create(task *models.Task) error
	Update(task *models.Task) error
	GetByID(id uuid.UUID) (*models.Task, error)
	ListByCompany(companyID uuid.UUID) ([]*models.Task, error)
	ListByColumn(companyID uuid.UUID, column string) ([]*models.Task, error)
	SaveAll(tasks []*models.Task) error
	Delete(id uuid.UUID) error
	NextPosition(companyID uuid.UUID, column string) (int, error)
}

type GormTaskRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormTaskRepository(db *gorm.DB) (*GormTaskRepository, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if err := db.AutoMigrate(&models.Task{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate tasks table")
		return nil, err
	}

	logger.Info("Task repository initialized")

	return &GormTaskRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *GormTaskRepository) Create(task *models.Task) error {
	if !task.IsValid() {
		r.logger.WithField("title", task.Title).Warn("Invalid task data")
		return errors.New("invalid task data")
	}

	result := r.db.Create(task)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to create task")
		return result.Error
	}

	r.logger.WithFields(logrus.Fields{
		"id":     task.ID,
		"column": task.Column,
	}).Info("Task created")

	return nil
}

func (r *GormTaskRepository) Update(task *models.Task) error {
	if !task.IsValid() {
		return errors.New("invalid task data")
	}

	result := r.db.Save(task)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to update task")
		return result.Error
	}

	return nil
}

func (r *GormTaskRepository) GetByID(id uuid.UUID) (*models.Task, error) {
	var task models.Task
	result := r.db.First(&task, "id = ?", id)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get task by ID")
		return nil, result.Error
	}

	return &task, nil
}

func (r *GormTaskRepository) ListByCompany(companyID uuid.UUID) ([]*models.Task, error) {
	var tasks []*models.Task
	result := r.db.
		Where("company_id = ?", companyID).
		Order("board_column ASC, position ASC").
		Find(&tasks)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to list tasks by company")
		return nil, result.Error
	}

	return tasks, nil
}

func (r *GormTaskRepository) ListByColumn(companyID uuid.UUID, column string) ([]*models.Task, error) {
	var tasks []*models.Task
	result := r.db.
		Where("company_id = ? AND board_column = ?", companyID, column).
		Order("position ASC").
		Find(&tasks)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to list tasks by column")
		return nil, result.Error
	}

	return tasks, nil
}

// SaveAll persists a batch of position updates after a kanban move.
func (r *GormTaskRepository) SaveAll(tasks []*models.Task) error {
	for _, task := range tasks {
		if err := r.db.Save(task).Error; err != nil {
			r.logger.WithError(err).Error("Failed to save task positions")
			return err
		}
	}

	return nil
}

func (r *GormTaskRepository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.Task{}, "id = ?", id)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to delete task")
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *GormTaskRepository) NextPosition(companyID uuid.UUID, column string) (int, error) {
	var count int64
	result := r.db.Model(&models.Task{}).
		Where("company_id = ? AND board_column = ?", companyID, column).
		Count(&count)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to count tasks in column")
		return 0, result.Error
	}

	return int(count), nil
}
