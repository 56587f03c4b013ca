package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Kanban columns
const (
	ColumnTodo       = "todo"
	ColumnInProgress = "in_progress"
	ColumnReview     = "review"
	ColumnDone       = "done"
)

type Task struct {
	ID          uuid.UUID  `gorm:"type:char(36);primarykey" json:"id"`
	CompanyID   uuid.UUID  `gorm:"type:char(36);not null;index" json:"company_id"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `json:"description"`
	AssigneeID  *uuid.UUID `gorm:"type:char(36);index" json:"assignee_id"`
	CreatorID   uuid.UUID  `gorm:"type:char(36);not null" json:"creator_id"`

	Column string `gorm:"column:board_column;type:varchar(20);not null;default:'todo';index" json:"column"`

	// Position within the column, contiguous from 0.
	Position int `gorm:"not null;default:0" json:"position"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Task) TableName() string {
	return "tasks"
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// ValidColumn reports whether name is a known kanban column.
func ValidColumn(name string) bool {
	switch name {
	case ColumnTodo, ColumnInProgress, ColumnReview, ColumnDone:
		return true
	}
	return false
}

// IsValid checks the task fields before persisting.
func (t *Task) IsValid() bool {
	if t.CompanyID == uuid.Nil {
		return false
	}
	if t.Title == "" {
		return false
	}
	if !ValidColumn(t.Column) {
		return false
	}
	if t.Position < 0 {
		return false
	}
	return true
}
