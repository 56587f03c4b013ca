package service

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/ekodrix-collab/ekodrix-hrms-sub001/internal/clock"
	"github.com/ekodrix-collab/ekodrix-hrms-sub001/internal/models"
	"github.com/ekodrix-collab/ekodrix-hrms-sub001/internal/repository"

	"github.com/google/uuid"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Set(t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = t
}

func newTestResolver(t time.Time) (*fakeClock, *clock.Resolver) {
	fc := &fakeClock{now: t}
	resolver, err := clock.NewResolver(fc, "UTC")
	if err != nil {
		panic(err)
	}
	return fc, resolver
}

// fakeAttendanceRepo is an in-memory AttendanceRepository mirroring the
// store's contract: lookup-before-insert conflict, idempotent close.
type fakeAttendanceRepo struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*models.AttendanceSession
	failNext error
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{sessions: make(map[uuid.UUID]*models.AttendanceSession)}
}

func (r *fakeAttendanceRepo) takeFailure() error {
	err := r.failNext
	r.failNext = nil
	return err
}

func (r *fakeAttendanceRepo) OpenSession(userID uuid.UUID, workMode, date string, punchIn time.Time) (*models.AttendanceSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.takeFailure(); err != nil {
		return nil, err
	}

	for _, s := range r.sessions {
		if s.UserID == userID && s.IsOpen() {
			return nil, repository.ErrSessionConflict
		}
	}

	session := &models.AttendanceSession{
		ID:       uuid.New(),
		UserID:   userID,
		Date:     date,
		PunchIn:  punchIn,
		WorkMode: workMode,
		Status:   models.AttendanceAbsent,
	}
	r.sessions[session.ID] = session

	copied := *session
	return &copied, nil
}

func (r *fakeAttendanceRepo) CloseSession(sessionID uuid.UUID, at time.Time) (*models.AttendanceSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.takeFailure(); err != nil {
		return nil, err
	}

	session, ok := r.sessions[sessionID]
	if !ok {
		return nil, repository.ErrNotFound
	}

	session.Close(at)

	copied := *session
	return &copied, nil
}

func (r *fakeAttendanceRepo) FindOpenSession(userID uuid.UUID) (*models.AttendanceSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var newest *models.AttendanceSession
	for _, s := range r.sessions {
		if s.UserID == userID && s.IsOpen() {
			if newest == nil || s.PunchIn.After(newest.PunchIn) {
				newest = s
			}
		}
	}

	if newest == nil {
		return nil, nil
	}

	copied := *newest
	return &copied, nil
}

func (r *fakeAttendanceRepo) GetByID(sessionID uuid.UUID) (*models.AttendanceSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[sessionID]
	if !ok {
		return nil, nil
	}

	copied := *session
	return &copied, nil
}

func (r *fakeAttendanceRepo) GetByUserAndDate(userID uuid.UUID, date string) (*models.AttendanceSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var newest *models.AttendanceSession
	for _, s := range r.sessions {
		if s.UserID == userID && s.Date == date {
			if newest == nil || s.PunchIn.After(newest.PunchIn) {
				newest = s
			}
		}
	}

	if newest == nil {
		return nil, nil
	}

	copied := *newest
	return &copied, nil
}

func (r *fakeAttendanceRepo) ListOpenThrough(date string) ([]*models.AttendanceSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.takeFailure(); err != nil {
		return nil, err
	}

	var open []*models.AttendanceSession
	for _, s := range r.sessions {
		if s.IsOpen() && s.Date <= date {
			copied := *s
			open = append(open, &copied)
		}
	}

	sort.Slice(open, func(i, j int) bool { return open[i].PunchIn.Before(open[j].PunchIn) })
	return open, nil
}

func (r *fakeAttendanceRepo) ListByUser(userID uuid.UUID, limit int) ([]*models.AttendanceSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var sessions []*models.AttendanceSession
	for _, s := range r.sessions {
		if s.UserID == userID {
			copied := *s
			sessions = append(sessions, &copied)
		}
	}

	sort.Slice(sessions, func(i, j int) bool { return sessions[i].PunchIn.After(sessions[j].PunchIn) })
	if limit > 0 && len(sessions) > limit {
		sessions = sessions[:limit]
	}
	return sessions, nil
}

func (r *fakeAttendanceRepo) ListByUserAndMonth(userID uuid.UUID, year, month int) ([]*models.AttendanceSession, error) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
	end := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1).Format("2006-01-02")

	r.mu.Lock()
	defer r.mu.Unlock()

	var sessions []*models.AttendanceSession
	for _, s := range r.sessions {
		if s.UserID == userID && s.Date >= start && s.Date <= end {
			copied := *s
			sessions = append(sessions, &copied)
		}
	}
	return sessions, nil
}

func (r *fakeAttendanceRepo) MonthlyStats(userID uuid.UUID, year, month int) (int, float64, error) {
	sessions, err := r.ListByUserAndMonth(userID, year, month)
	if err != nil {
		return 0, 0, err
	}

	days := map[string]bool{}
	var hours float64
	for _, s := range sessions {
		if s.Status == models.AttendancePresent || s.Status == models.AttendanceHalfDay {
			days[s.Date] = true
			hours += s.TotalHours
		}
	}
	return len(days), hours, nil
}

var errStoreDown = errors.New("store unavailable")

// recordingNotifier captures Notify calls for assertions.
type recordingNotifier struct {
	mu    sync.Mutex
	calls []struct {
		UserID  uuid.UUID
		Kind    string
		Message string
	}
}

func (n *recordingNotifier) Notify(userID uuid.UUID, kind, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, struct {
		UserID  uuid.UUID
		Kind    string
		Message string
	}{userID, kind, message})
	return nil
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.calls)
}
