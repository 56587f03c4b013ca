package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StandupEntry is one user's daily standup note. At most one entry exists per
// (user, date); repeated submissions overwrite the same row.
type StandupEntry struct {
	ID        uuid.UUID `gorm:"type:char(36);primarykey" json:"id"`
	CompanyID uuid.UUID `gorm:"type:char(36);not null;index" json:"company_id"`
	UserID    uuid.UUID `gorm:"type:char(36);not null;index:idx_standup_user_date,unique" json:"user_id"`
	Date      string    `gorm:"type:varchar(10);not null;index:idx_standup_user_date,unique" json:"date"`

	Yesterday string `json:"yesterday"`
	Today     string `json:"today"`
	Blockers  string `json:"blockers"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (StandupEntry) TableName() string {
	return "standup_entries"
}

func (e *StandupEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

func (e *StandupEntry) IsValid() bool {
	if e.CompanyID == uuid.Nil || e.UserID == uuid.Nil {
		return false
	}
	if e.Date == "" {
		return false
	}
	return true
}
