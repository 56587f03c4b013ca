package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/ekodrix-collab/ekodrix-hrms-sub001/internal/models"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestRepo(t *testing.T) *GormAttendanceRepository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	repo, err := NewGormAttendanceRepository(db)
	if err != nil {
		t.Fatalf("NewGormAttendanceRepository: %v", err)
	}

	return repo
}

func TestOpenSessionConflict(t *testing.T) {
	repo := newTestRepo(t)
	userID := uuid.New()
	punchIn := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)

	first, err := repo.OpenSession(userID, models.WorkModeOffice, "2024-06-03", punchIn)
	if err != nil {
		t.Fatalf("first OpenSession: %v", err)
	}

	_, err = repo.OpenSession(userID, models.WorkModeOffice, "2024-06-03", punchIn.Add(time.Minute))
	if !errors.Is(err, ErrSessionConflict) {
		t.Fatalf("second OpenSession error = %v, want ErrSessionConflict", err)
	}

	// The invariant holds: exactly one open row for the user.
	open, err := repo.FindOpenSession(userID)
	if err != nil {
		t.Fatalf("FindOpenSession: %v", err)
	}
	if open == nil || open.ID != first.ID {
		t.Error("expected the first session to remain the single open row")
	}
	if !open.PunchIn.Equal(first.PunchIn) {
		t.Error("first session must be unmodified after the conflict")
	}
}

func TestCloseSessionIdempotent(t *testing.T) {
	repo := newTestRepo(t)
	userID := uuid.New()
	punchIn := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)

	session, err := repo.OpenSession(userID, models.WorkModeHome, "2024-06-03", punchIn)
	if err != nil {
		t.Fatalf("OpenSession: %v", err)
	}

	first, err := repo.CloseSession(session.ID, punchIn.Add(8*time.Hour))
	if err != nil {
		t.Fatalf("first CloseSession: %v", err)
	}
	if first.TotalHours != 8.0 {
		t.Errorf("TotalHours = %v, want 8.0", first.TotalHours)
	}
	if first.Status != models.AttendancePresent {
		t.Errorf("Status = %q, want %q", first.Status, models.AttendancePresent)
	}

	// Retry with a later timestamp: a no-op that returns the stored row.
	second, err := repo.CloseSession(session.ID, punchIn.Add(9*time.Hour))
	if err != nil {
		t.Fatalf("second CloseSession: %v", err)
	}
	if !second.PunchOut.Equal(*first.PunchOut) {
		t.Errorf("retry moved PunchOut from %v to %v", first.PunchOut, second.PunchOut)
	}
	if second.TotalHours != first.TotalHours {
		t.Errorf("retry changed TotalHours from %v to %v", first.TotalHours, second.TotalHours)
	}
}

func TestCloseSessionNotFound(t *testing.T) {
	repo := newTestRepo(t)

	if _, err := repo.CloseSession(uuid.New(), time.Now()); !errors.Is(err, ErrNotFound) {
		t.Errorf("CloseSession error = %v, want ErrNotFound", err)
	}
}

func TestPunchInAllowedAfterClose(t *testing.T) {
	repo := newTestRepo(t)
	userID := uuid.New()
	punchIn := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)

	session, err := repo.OpenSession(userID, models.WorkModeOffice, "2024-06-03", punchIn)
	if err != nil {
		t.Fatalf("OpenSession: %v", err)
	}

	if _, err := repo.CloseSession(session.ID, punchIn.Add(4*time.Hour)); err != nil {
		t.Fatalf("CloseSession: %v", err)
	}

	// A new session on the same date may open once the first is closed.
	if _, err := repo.OpenSession(userID, models.WorkModeOffice, "2024-06-03", punchIn.Add(5*time.Hour)); err != nil {
		t.Fatalf("reopen after close: %v", err)
	}
}

func TestFindOpenSessionPicksNewest(t *testing.T) {
	repo := newTestRepo(t)
	userID := uuid.New()

	// Simulate a stale duplicate left over from a race: two open rows on
	// different dates. The query must pick the most recent punch-in.
	if _, err := repo.OpenSession(userID, models.WorkModeOffice, "2024-06-02",
		time.Date(2024, 6, 2, 9, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("OpenSession: %v", err)
	}

	var stale models.AttendanceSession
	stale.UserID = userID
	stale.Date = "2024-06-03"
	stale.PunchIn = time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
	stale.WorkMode = models.WorkModeOffice
	stale.Status = models.AttendanceAbsent
	if err := repo.db.Create(&stale).Error; err != nil {
		t.Fatalf("seed second open row: %v", err)
	}

	open, err := repo.FindOpenSession(userID)
	if err != nil {
		t.Fatalf("FindOpenSession: %v", err)
	}
	if open == nil || open.ID != stale.ID {
		t.Error("expected the most recent open session to be returned")
	}
}

func TestListOpenThrough(t *testing.T) {
	repo := newTestRepo(t)

	u1, u2 := uuid.New(), uuid.New()

	if _, err := repo.OpenSession(u1, models.WorkModeOffice, "2024-06-02",
		time.Date(2024, 6, 2, 9, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("OpenSession u1: %v", err)
	}
	s2, err := repo.OpenSession(u2, models.WorkModeHome, "2024-06-03",
		time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("OpenSession u2: %v", err)
	}

	if _, err := repo.CloseSession(s2.ID, time.Date(2024, 6, 3, 18, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("CloseSession: %v", err)
	}

	open, err := repo.ListOpenThrough("2024-06-03")
	if err != nil {
		t.Fatalf("ListOpenThrough: %v", err)
	}
	if len(open) != 1 {
		t.Fatalf("open sessions = %d, want 1", len(open))
	}
	if open[0].UserID != u1 {
		t.Error("expected only u1's session to remain open")
	}
}

func TestMonthlyStats(t *testing.T) {
	repo := newTestRepo(t)
	userID := uuid.New()

	days := []struct {
		date  string
		hours time.Duration
	}{
		{"2024-06-03", 8 * time.Hour},
		{"2024-06-04", 3 * time.Hour}, // half day
		{"2024-06-05", 0},             // absent, excluded from stats
	}

	for _, d := range days {
		punchIn, _ := time.Parse("2006-01-02", d.date)
		punchIn = punchIn.Add(9 * time.Hour)

		session, err := repo.OpenSession(userID, models.WorkModeOffice, d.date, punchIn)
		if err != nil {
			t.Fatalf("OpenSession %s: %v", d.date, err)
		}
		if _, err := repo.CloseSession(session.ID, punchIn.Add(d.hours)); err != nil {
			t.Fatalf("CloseSession %s: %v", d.date, err)
		}
	}

	count, hours, err := repo.MonthlyStats(userID, 2024, 6)
	if err != nil {
		t.Fatalf("MonthlyStats: %v", err)
	}
	if count != 2 {
		t.Errorf("days = %d, want 2", count)
	}
	if hours != 11.0 {
		t.Errorf("hours = %v, want 11.0", hours)
	}
}
