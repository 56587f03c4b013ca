package service

import (
	"fmt"

	"github.com/ekodrix-collab/ekodrix-hrms-sub001/internal/models"
	"github.com/ekodrix-collab/ekodrix-hrms-sub001/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// TaskService implements the kanban board: tasks live in ordered columns and
// moves renumber positions so each column stays contiguous from zero.
type TaskService struct {
	taskRepo repository.TaskRepository
	notifier Notifier
	logger   *logrus.Logger
}

func NewTaskService(taskRepo repository.TaskRepository, notifier Notifier) *TaskService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &TaskService{
		taskRepo: taskRepo,
		notifier: notifier,
		logger:   logger,
	}
}

// Create appends the task to the end of its column.
func (s *TaskService) Create(companyID, creatorID uuid.UUID, title, description, column string, assigneeID *uuid.UUID) (*models.Task, error) {
	if column == "" {
		column = models.ColumnTodo
	}
	if !models.ValidColumn(column) {
		return nil, fmt.Errorf("unknown column %q", column)
	}

	position, err := s.taskRepo.NextPosition(companyID, column)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		CompanyID:   companyID,
		CreatorID:   creatorID,
		Title:       title,
		Description: description,
		AssigneeID:  assigneeID,
		Column:      column,
		Position:    position,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, err
	}

	s.notifyAssignee(task)

	return task, nil
}

// Update edits title, description and assignee. Column moves go through Move.
func (s *TaskService) Update(companyID, taskID uuid.UUID, title, description string, assigneeID *uuid.UUID) (*models.Task, error) {
	task, err := s.getCompanyTask(companyID, taskID)
	if err != nil {
		return nil, err
	}

	assigneeChanged := false
	if assigneeID != nil && (task.AssigneeID == nil || *task.AssigneeID != *assigneeID) {
		assigneeChanged = true
	}

	if title != "" {
		task.Title = title
	}
	task.Description = description
	task.AssigneeID = assigneeID

	if err := s.taskRepo.Update(task); err != nil {
		return nil, err
	}

	if assigneeChanged {
		s.notifyAssignee(task)
	}

	return task, nil
}

// Move places the task at toPosition within toColumn and renumbers both the
// source and target columns.
func (s *TaskService) Move(companyID, taskID uuid.UUID, toColumn string, toPosition int) (*models.Task, error) {
	if !models.ValidColumn(toColumn) {
		return nil, fmt.Errorf("unknown column %q", toColumn)
	}

	task, err := s.getCompanyTask(companyID, taskID)
	if err != nil {
		return nil, err
	}

	fromColumn := task.Column

	source, err := s.taskRepo.ListByColumn(companyID, fromColumn)
	if err != nil {
		return nil, err
	}

	// Pull the task out of its current column.
	remaining := make([]*models.Task, 0, len(source))
	for _, t := range source {
		if t.ID != task.ID {
			remaining = append(remaining, t)
		}
	}

	var target []*models.Task
	if toColumn == fromColumn {
		target = remaining
	} else {
		target, err = s.taskRepo.ListByColumn(companyID, toColumn)
		if err != nil {
			return nil, err
		}
	}

	if toPosition < 0 {
		toPosition = 0
	}
	if toPosition > len(target) {
		toPosition = len(target)
	}

	// Splice the task into the target column at the requested slot.
	inserted := make([]*models.Task, 0, len(target)+1)
	inserted = append(inserted, target[:toPosition]...)
	inserted = append(inserted, task)
	inserted = append(inserted, target[toPosition:]...)

	task.Column = toColumn

	dirty := make([]*models.Task, 0, len(inserted)+len(remaining))
	for i, t := range inserted {
		if t.Position != i || t.ID == task.ID {
			t.Position = i
			dirty = append(dirty, t)
		}
	}

	if toColumn != fromColumn {
		for i, t := range remaining {
			if t.Position != i {
				t.Position = i
				dirty = append(dirty, t)
			}
		}
	}

	if err := s.taskRepo.SaveAll(dirty); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"id":   task.ID,
		"from": fromColumn,
		"to":   toColumn,
		"pos":  toPosition,
	}).Info("Task moved")

	return task, nil
}

// Board returns the company's tasks grouped by column, position order.
func (s *TaskService) Board(companyID uuid.UUID) (map[string][]*models.Task, error) {
	tasks, err := s.taskRepo.ListByCompany(companyID)
	if err != nil {
		return nil, err
	}

	board := map[string][]*models.Task{
		models.ColumnTodo:       {},
		models.ColumnInProgress: {},
		models.ColumnReview:     {},
		models.ColumnDone:       {},
	}

	for _, task := range tasks {
		board[task.Column] = append(board[task.Column], task)
	}

	return board, nil
}

// Delete removes a task and renumbers its column.
func (s *TaskService) Delete(companyID, taskID uuid.UUID) error {
	task, err := s.getCompanyTask(companyID, taskID)
	if err != nil {
		return err
	}

	if err := s.taskRepo.Delete(task.ID); err != nil {
		return err
	}

	column, err := s.taskRepo.ListByColumn(companyID, task.Column)
	if err != nil {
		return err
	}

	dirty := make([]*models.Task, 0, len(column))
	for i, t := range column {
		if t.Position != i {
			t.Position = i
			dirty = append(dirty, t)
		}
	}

	return s.taskRepo.SaveAll(dirty)
}

func (s *TaskService) getCompanyTask(companyID, taskID uuid.UUID) (*models.Task, error) {
	task, err := s.taskRepo.GetByID(taskID)
	if err != nil {
		return nil, err
	}

	if task == nil || task.CompanyID != companyID {
		return nil, repository.ErrNotFound
	}

	return task, nil
}

func (s *TaskService) notifyAssignee(task *models.Task) {
	if s.notifier == nil || task.AssigneeID == nil {
		return
	}

	if err := s.notifier.Notify(*task.AssigneeID, models.NotifyTaskAssigned,
		fmt.Sprintf("Task assigned to you: %s", task.Title)); err != nil {
		s.logger.WithError(err).Warn("Failed to notify assignee")
	}
}
