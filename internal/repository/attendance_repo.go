package repository

import (
	"errors"
	"time"

	"github.com/ekodrix-collab/ekodrix-hrms-sub001/internal/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AttendanceRepository interface {
	OpenSession(userID uuid.UUID, workMode, date string, punchIn time.Time) (*models.AttendanceSession, error)
	CloseSession(sessionID uuid.UUID, at time.Time) (*models.AttendanceSession, error)
	FindOpenSession(userID uuid.UUID) (*models.AttendanceSession, error)
	GetByID(sessionID uuid.UUID) (*models.AttendanceSession, error)
	GetByUserAndDate(userID uuid.UUID, date string) (*models.AttendanceSession, error)
	ListOpenThrough(date string) ([]*models.AttendanceSession, error)
	ListByUser(userID uuid.UUID, limit int) ([]*models.AttendanceSession, error)
	ListByUserAndMonth(userID uuid.UUID, year, month int) ([]*models.AttendanceSession, error)
	MonthlyStats(userID uuid.UUID, year, month int) (int, float64, error)
}

type GormAttendanceRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormAttendanceRepository(db *gorm.DB) (*GormAttendanceRepository, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if err := db.AutoMigrate(&models.AttendanceSession{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate attendance_sessions table")
		return nil, err
	}

	// Partial unique index: narrows the read-then-write race on punch-in.
	if err := db.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_attendance_open_session " +
			"ON attendance_sessions(user_id, date) WHERE punch_out IS NULL",
	).Error; err != nil {
		logger.WithError(err).Error("Failed to create open-session unique index")
		return nil, err
	}

	logger.Info("Attendance repository initialized")

	return &GormAttendanceRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *GormAttendanceRepository) OpenSession(userID uuid.UUID, workMode, date string, punchIn time.Time) (*models.AttendanceSession, error) {
	r.logger.WithFields(logrus.Fields{
		"user_id":   userID,
		"date":      date,
		"work_mode": workMode,
	}).Info("Opening attendance session")

	existing, err := r.FindOpenSession(userID)
	if err != nil {
		r.logger.WithError(err).Error("Failed to check open session")
		return nil, err
	}

	if existing != nil {
		r.logger.WithFields(logrus.Fields{
			"user_id": userID,
			"date":    date,
		}).Warn("Open attendance session already exists")
		return nil, ErrSessionConflict
	}

	session := &models.AttendanceSession{
		UserID:   userID,
		Date:     date,
		PunchIn:  punchIn,
		PunchOut: nil,
		WorkMode: workMode,
		Status:   models.AttendanceAbsent,
	}

	if !session.IsValid() {
		r.logger.WithField("user_id", userID).Warn("Invalid attendance session data")
		return nil, errors.New("invalid attendance session data")
	}

	result := r.db.Create(session)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to create attendance session")
		return nil, result.Error
	}

	r.logger.WithFields(logrus.Fields{
		"id":      session.ID,
		"user_id": userID,
		"date":    date,
	}).Info("Attendance session opened")

	return session, nil
}

// CloseSession sets the punch-out timestamp. Closing an already-closed
// session is a no-op returning the stored row, so retries and the watchdog
// racing a user punch-out are both harmless.
func (r *GormAttendanceRepository) CloseSession(sessionID uuid.UUID, at time.Time) (*models.AttendanceSession, error) {
	session, err := r.GetByID(sessionID)
	if err != nil {
		return nil, err
	}

	if session == nil {
		r.logger.WithField("id", sessionID).Warn("Attendance session not found for close")
		return nil, ErrNotFound
	}

	if !session.IsOpen() {
		r.logger.WithField("id", sessionID).Debug("Attendance session already closed")
		return session, nil
	}

	session.Close(at)

	result := r.db.Save(session)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to close attendance session")
		return nil, result.Error
	}

	r.logger.WithFields(logrus.Fields{
		"id":          session.ID,
		"user_id":     session.UserID,
		"total_hours": session.TotalHours,
		"status":      session.Status,
	}).Info("Attendance session closed")

	return session, nil
}

// FindOpenSession returns the most recent open session for the user. At most
// one should exist; ordering by punch_in DESC picks the newest if a stale
// duplicate ever slips through.
func (r *GormAttendanceRepository) FindOpenSession(userID uuid.UUID) (*models.AttendanceSession, error) {
	var session models.AttendanceSession
	result := r.db.
		Where("user_id = ? AND punch_out IS NULL", userID).
		Order("punch_in DESC").
		First(&session)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		r.logger.WithField("user_id", userID).Debug("No open attendance session")
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to find open attendance session")
		return nil, result.Error
	}

	return &session, nil
}

func (r *GormAttendanceRepository) GetByID(sessionID uuid.UUID) (*models.AttendanceSession, error) {
	var session models.AttendanceSession
	result := r.db.First(&session, "id = ?", sessionID)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		r.logger.WithField("id", sessionID).Debug("Attendance session not found")
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get attendance session by ID")
		return nil, result.Error
	}

	return &session, nil
}

// GetByUserAndDate returns the latest session for the user on the given civil
// date, open or closed.
func (r *GormAttendanceRepository) GetByUserAndDate(userID uuid.UUID, date string) (*models.AttendanceSession, error) {
	var session models.AttendanceSession
	result := r.db.
		Where("user_id = ? AND date = ?", userID, date).
		Order("punch_in DESC").
		First(&session)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get attendance session by user and date")
		return nil, result.Error
	}

	return &session, nil
}

// ListOpenThrough returns every open session whose civil date is on or before
// the given date. The watchdog sweeps these at the cutoff.
func (r *GormAttendanceRepository) ListOpenThrough(date string) ([]*models.AttendanceSession, error) {
	var sessions []*models.AttendanceSession
	result := r.db.
		Where("punch_out IS NULL AND date <= ?", date).
		Order("punch_in ASC").
		Find(&sessions)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to list open attendance sessions")
		return nil, result.Error
	}

	return sessions, nil
}

func (r *GormAttendanceRepository) ListByUser(userID uuid.UUID, limit int) ([]*models.AttendanceSession, error) {
	var sessions []*models.AttendanceSession

	query := r.db.Where("user_id = ?", userID).Order("date DESC, punch_in DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	result := query.Find(&sessions)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to list attendance sessions by user")
		return nil, result.Error
	}

	return sessions, nil
}

func (r *GormAttendanceRepository) ListByUserAndMonth(userID uuid.UUID, year, month int) ([]*models.AttendanceSession, error) {
	var sessions []*models.AttendanceSession

	startDate := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	endDate := startDate.AddDate(0, 1, -1)

	result := r.db.
		Where("user_id = ? AND date BETWEEN ? AND ?",
			userID,
			startDate.Format("2006-01-02"),
			endDate.Format("2006-01-02")).
		Order("date DESC").
		Find(&sessions)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to list attendance sessions by month")
		return nil, result.Error
	}

	return sessions, nil
}

// MonthlyStats returns the number of present or half-day sessions and the
// summed worked hours for the month.
func (r *GormAttendanceRepository) MonthlyStats(userID uuid.UUID, year, month int) (int, float64, error) {
	var data struct {
		Days  int64
		Hours float64
	}

	startDate := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	endDate := startDate.AddDate(0, 1, -1)

	result := r.db.Model(&models.AttendanceSession{}).
		Select("COUNT(DISTINCT date) as days, COALESCE(SUM(total_hours), 0) as hours").
		Where("user_id = ? AND date BETWEEN ? AND ? AND status IN ?",
			userID,
			startDate.Format("2006-01-02"),
			endDate.Format("2006-01-02"),
			[]string{models.AttendancePresent, models.AttendanceHalfDay}).
		Scan(&data)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get attendance monthly stats")
		return 0, 0, result.Error
	}

	r.logger.WithFields(logrus.Fields{
		"user_id": userID,
		"year":    year,
		"month":   month,
		"days":    data.Days,
		"hours":   data.Hours,
	}).Debug("Retrieved attendance monthly stats")

	return int(data.Days), data.Hours, nil
}
