package service

import (
	"fmt"
	"sync"

	"github.com/ekodrix-collab/ekodrix-hrms-sub001/internal/clock"
	"github.com/ekodrix-collab/ekodrix-hrms-sub001/internal/models"
	"github.com/ekodrix-collab/ekodrix-hrms-sub001/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// AttendanceService owns the punch-in/punch-out lifecycle and the live status
// projection. Break state is a transient flag held here, never persisted, and
// it does not affect total hours.
type AttendanceService struct {
	sessionRepo repository.AttendanceRepository
	resolver    *clock.Resolver
	logger      *logrus.Logger

	mu     sync.Mutex
	breaks map[string]bool // key: userID+"/"+date
}

func NewAttendanceService(sessionRepo repository.AttendanceRepository, resolver *clock.Resolver) *AttendanceService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &AttendanceService{
		sessionRepo: sessionRepo,
		resolver:    resolver,
		logger:      logger,
		breaks:      make(map[string]bool),
	}
}

func breakKey(userID uuid.UUID, date string) string {
	return userID.String() + "/" + date
}

// PunchIn opens today's session. A second punch-in without an intervening
// punch-out surfaces the repository conflict as a user-facing failure.
func (s *AttendanceService) PunchIn(userID uuid.UUID, workMode string) (*models.AttendanceSession, error) {
	if workMode == "" {
		workMode = models.WorkModeOffice
	}
	if workMode != models.WorkModeOffice && workMode != models.WorkModeHome {
		return nil, fmt.Errorf("unknown work mode %q", workMode)
	}

	now := s.resolver.Now()
	today := s.resolver.Today()

	s.logger.WithFields(logrus.Fields{
		"user_id":   userID,
		"date":      today,
		"work_mode": workMode,
	}).Info("User punching in")

	session, err := s.sessionRepo.OpenSession(userID, workMode, today, now)
	if err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Warn("Punch-in rejected")
		return nil, err
	}

	return session, nil
}

// PunchOut closes the user's open session at the current instant.
func (s *AttendanceService) PunchOut(userID uuid.UUID) (*models.AttendanceSession, error) {
	s.logger.WithField("user_id", userID).Info("User punching out")

	open, err := s.sessionRepo.FindOpenSession(userID)
	if err != nil {
		return nil, err
	}

	if open == nil {
		s.logger.WithField("user_id", userID).Warn("Punch-out with no open session")
		return nil, ErrNoOpenSession
	}

	session, err := s.sessionRepo.CloseSession(open.ID, s.resolver.Now())
	if err != nil {
		return nil, err
	}

	s.clearBreak(userID, session.Date)

	s.logger.WithFields(logrus.Fields{
		"id":          session.ID,
		"user_id":     userID,
		"total_hours": session.TotalHours,
	}).Info("User punched out")

	return session, nil
}

// ToggleBreak flips the transient break flag. It requires an open session;
// the flag only refines the "working" live status and leaves the persisted
// session untouched.
func (s *AttendanceService) ToggleBreak(userID uuid.UUID) (string, error) {
	open, err := s.sessionRepo.FindOpenSession(userID)
	if err != nil {
		return "", err
	}

	if open == nil {
		return "", ErrNoOpenSession
	}

	key := breakKey(userID, open.Date)

	s.mu.Lock()
	onBreak := !s.breaks[key]
	if onBreak {
		s.breaks[key] = true
	} else {
		delete(s.breaks, key)
	}
	s.mu.Unlock()

	s.logger.WithFields(logrus.Fields{
		"user_id":  userID,
		"on_break": onBreak,
	}).Info("Break toggled")

	if onBreak {
		return models.LiveStatusOnBreak, nil
	}
	return models.LiveStatusWorking, nil
}

// LiveStatusForToday derives the user's live status from today's latest
// session. The projection is fully re-derivable; nothing cached is
// authoritative.
func (s *AttendanceService) LiveStatusForToday(userID uuid.UUID) (string, error) {
	today := s.resolver.Today()

	session, err := s.sessionRepo.GetByUserAndDate(userID, today)
	if err != nil {
		return "", err
	}

	if session == nil {
		return models.LiveStatusOffline, nil
	}

	if !session.IsOpen() {
		return models.LiveStatusCompleted, nil
	}

	if s.onBreak(userID, today) {
		return models.LiveStatusOnBreak, nil
	}

	return models.LiveStatusWorking, nil
}

// TodaySession returns today's latest session, open or closed, or nil.
func (s *AttendanceService) TodaySession(userID uuid.UUID) (*models.AttendanceSession, error) {
	return s.sessionRepo.GetByUserAndDate(userID, s.resolver.Today())
}

// History returns the user's most recent sessions.
func (s *AttendanceService) History(userID uuid.UUID, limit int) ([]*models.AttendanceSession, error) {
	return s.sessionRepo.ListByUser(userID, limit)
}

// MonthSessions returns the user's sessions for a month.
func (s *AttendanceService) MonthSessions(userID uuid.UUID, year, month int) ([]*models.AttendanceSession, error) {
	return s.sessionRepo.ListByUserAndMonth(userID, year, month)
}

func (s *AttendanceService) onBreak(userID uuid.UUID, date string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.breaks[breakKey(userID, date)]
}

func (s *AttendanceService) clearBreak(userID uuid.UUID, date string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.breaks, breakKey(userID, date))
}
