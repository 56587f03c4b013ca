package models

import (
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AttendanceSession struct {
	ID     uuid.UUID `gorm:"type:char(36);primarykey" json:"id"`
	UserID uuid.UUID `gorm:"type:char(36);not null;index" json:"user_id"`

	// Civil date in the configured timezone, the partition key for
	// "one open session per user per day".
	Date string `gorm:"type:varchar(10);not null;index" json:"date"`

	PunchIn  time.Time  `gorm:"not null" json:"punch_in"`
	PunchOut *time.Time `json:"punch_out"`

	WorkMode string `gorm:"type:varchar(10);not null;default:'office'" json:"work_mode"`

	// Set once at punch-out, rounded to one decimal.
	TotalHours float64 `gorm:"not null;default:0" json:"total_hours"`

	Status string `gorm:"type:varchar(20);not null;default:'absent';index" json:"status"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (AttendanceSession) TableName() string {
	return "attendance_sessions"
}

func (s *AttendanceSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Work modes
const (
	WorkModeOffice = "office"
	WorkModeHome   = "home"
)

// Session day classifications, derived at punch-out.
const (
	AttendancePresent = "present"
	AttendanceHalfDay = "half_day"
	AttendanceAbsent  = "absent"
)

// Live status values projected from the latest session for a civil day.
const (
	LiveStatusOffline   = "offline"
	LiveStatusWorking   = "working"
	LiveStatusOnBreak   = "on_break"
	LiveStatusCompleted = "completed"
)

// IsOpen reports whether the session has not been punched out yet.
func (s *AttendanceSession) IsOpen() bool {
	return s.PunchOut == nil
}

// HoursBetween computes worked hours between punch-in and the given instant,
// rounded to one decimal.
func (s *AttendanceSession) HoursBetween(at time.Time) float64 {
	hours := at.Sub(s.PunchIn).Hours()
	if hours < 0 {
		hours = 0
	}
	return math.Round(hours*10) / 10
}

// Close sets the punch-out fields. It is the caller's job to ensure the
// session is still open; Close on a closed session is a no-op.
func (s *AttendanceSession) Close(at time.Time) {
	if s.PunchOut != nil {
		return
	}
	out := at
	s.PunchOut = &out
	s.TotalHours = s.HoursBetween(at)
	s.Status = ClassifyDay(s.TotalHours)
}

// ClassifyDay maps worked hours to the day classification.
func ClassifyDay(totalHours float64) string {
	switch {
	case totalHours >= 4:
		return AttendancePresent
	case totalHours > 0:
		return AttendanceHalfDay
	default:
		return AttendanceAbsent
	}
}

// IsValid checks the session fields before persisting.
func (s *AttendanceSession) IsValid() bool {
	if s.UserID == uuid.Nil {
		return false
	}
	if s.Date == "" {
		return false
	}
	if s.PunchIn.IsZero() {
		return false
	}
	if s.WorkMode != WorkModeOffice && s.WorkMode != WorkModeHome {
		return false
	}
	return true
}
