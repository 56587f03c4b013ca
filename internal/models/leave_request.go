package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	LeaveTypeVacation  = "vacation"
	LeaveTypeSickLeave = "sick_leave"
	LeaveTypeDayOff    = "day_off"
)

const (
	LeavePending  = "pending"
	LeaveApproved = "approved"
	LeaveRejected = "rejected"
)

type LeaveRequest struct {
	ID        uuid.UUID `gorm:"type:char(36);primarykey" json:"id"`
	CompanyID uuid.UUID `gorm:"type:char(36);not null;index" json:"company_id"`
	UserID    uuid.UUID `gorm:"type:char(36);not null;index" json:"user_id"`

	StartDate string `gorm:"type:varchar(10);not null" json:"start_date"`
	EndDate   string `gorm:"type:varchar(10);not null" json:"end_date"`
	Type      string `gorm:"type:varchar(20);not null" json:"type"`
	Reason    string `json:"reason"`

	Status     string     `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	ReviewerID *uuid.UUID `gorm:"type:char(36)" json:"reviewer_id"`
	ReviewedAt *time.Time `json:"reviewed_at"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

func (l *LeaveRequest) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

func ValidLeaveType(t string) bool {
	switch t {
	case LeaveTypeVacation, LeaveTypeSickLeave, LeaveTypeDayOff:
		return true
	}
	return false
}

// IsPending reports whether the request still awaits review.
func (l *LeaveRequest) IsPending() bool {
	return l.Status == LeavePending
}

func (l *LeaveRequest) IsValid() bool {
	if l.CompanyID == uuid.Nil || l.UserID == uuid.Nil {
		return false
	}
	if l.StartDate == "" || l.EndDate == "" {
		return false
	}
	if l.EndDate < l.StartDate {
		return false
	}
	if !ValidLeaveType(l.Type) {
		return false
	}
	return true
}
