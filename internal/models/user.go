package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleEmployee = "employee"
)

type User struct {
	ID           uuid.UUID `gorm:"type:char(36);primarykey" json:"id"`
	CompanyID    uuid.UUID `gorm:"type:char(36);not null;index" json:"company_id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	FirstName    string    `gorm:"not null" json:"first_name"`
	LastName     string    `json:"last_name"`
	Role         string    `gorm:"type:varchar(20);not null;default:'employee'" json:"role"`

	// Monthly base salary used by payroll accrual.
	BaseSalary float64 `gorm:"not null;default:0" json:"base_salary"`

	// Optional link for push notifications.
	TelegramChatID int64 `gorm:"default:0" json:"telegram_chat_id"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Company Company `gorm:"foreignKey:CompanyID" json:"-"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// IsAdmin reports whether the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanReview reports whether the user may approve or reject leave requests.
func (u *User) CanReview() bool {
	return u.Role == RoleAdmin || u.Role == RoleManager
}

func (u *User) SetRole(role Role) {
	u.Role = string(role)
}

// LandingPath is the post-login redirect hint for the web client.
func (u *User) LandingPath() string {
	if u.IsAdmin() {
		return "/admin"
	}
	return "/dashboard"
}
