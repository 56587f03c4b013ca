package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	NotifyAutoPunchOut  = "auto_punch_out"
	NotifyTaskAssigned  = "task_assigned"
	NotifyLeaveReviewed = "leave_reviewed"
)

type Notification struct {
	ID      uuid.UUID  `gorm:"type:char(36);primarykey" json:"id"`
	UserID  uuid.UUID  `gorm:"type:char(36);not null;index" json:"user_id"`
	Kind    string     `gorm:"type:varchar(30);not null" json:"kind"`
	Message string     `gorm:"not null" json:"message"`
	ReadAt  *time.Time `json:"read_at"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

// IsRead reports whether the notification has been acknowledged.
func (n *Notification) IsRead() bool {
	return n.ReadAt != nil
}
