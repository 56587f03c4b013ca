package service

import (
	"errors"
	"testing"
	"time"

	"github.com/ekodrix-collab/ekodrix-hrms-sub001/internal/models"
	"github.com/ekodrix-collab/ekodrix-hrms-sub001/internal/repository"

	"github.com/google/uuid"
)

func TestStatusLifecycle(t *testing.T) {
	_, resolver := newTestResolver(time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC))
	svc := NewAttendanceService(newFakeAttendanceRepo(), resolver)
	userID := uuid.New()

	status, err := svc.LiveStatusForToday(userID)
	if err != nil {
		t.Fatalf("LiveStatusForToday: %v", err)
	}
	if status != models.LiveStatusOffline {
		t.Errorf("status before punch-in = %q, want %q", status, models.LiveStatusOffline)
	}

	if _, err := svc.PunchIn(userID, models.WorkModeOffice); err != nil {
		t.Fatalf("PunchIn: %v", err)
	}

	status, _ = svc.LiveStatusForToday(userID)
	if status != models.LiveStatusWorking {
		t.Errorf("status after punch-in = %q, want %q", status, models.LiveStatusWorking)
	}

	if _, err := svc.PunchOut(userID); err != nil {
		t.Fatalf("PunchOut: %v", err)
	}

	status, _ = svc.LiveStatusForToday(userID)
	if status != models.LiveStatusCompleted {
		t.Errorf("status after punch-out = %q, want %q", status, models.LiveStatusCompleted)
	}
}

func TestDoublePunchInIsConflict(t *testing.T) {
	fc, resolver := newTestResolver(time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC))
	svc := NewAttendanceService(newFakeAttendanceRepo(), resolver)
	userID := uuid.New()

	first, err := svc.PunchIn(userID, models.WorkModeHome)
	if err != nil {
		t.Fatalf("first PunchIn: %v", err)
	}

	fc.Set(fc.Now().Add(time.Minute))

	if _, err := svc.PunchIn(userID, models.WorkModeHome); !errors.Is(err, repository.ErrSessionConflict) {
		t.Fatalf("second PunchIn error = %v, want ErrSessionConflict", err)
	}

	// First session must be untouched and still open.
	session, err := svc.TodaySession(userID)
	if err != nil {
		t.Fatalf("TodaySession: %v", err)
	}
	if session == nil || session.ID != first.ID {
		t.Fatal("expected the original session to survive the conflict")
	}
	if !session.IsOpen() {
		t.Error("original session must remain open")
	}
	if !session.PunchIn.Equal(first.PunchIn) {
		t.Error("original punch-in must be unmodified")
	}
}

func TestPunchOutWithoutSession(t *testing.T) {
	_, resolver := newTestResolver(time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC))
	svc := NewAttendanceService(newFakeAttendanceRepo(), resolver)

	if _, err := svc.PunchOut(uuid.New()); !errors.Is(err, ErrNoOpenSession) {
		t.Errorf("PunchOut error = %v, want ErrNoOpenSession", err)
	}
}

func TestPunchInRejectsUnknownWorkMode(t *testing.T) {
	_, resolver := newTestResolver(time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC))
	svc := NewAttendanceService(newFakeAttendanceRepo(), resolver)

	if _, err := svc.PunchIn(uuid.New(), "submarine"); err == nil {
		t.Error("expected unknown work mode to be rejected")
	}
}

func TestBreakToggle(t *testing.T) {
	_, resolver := newTestResolver(time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC))
	svc := NewAttendanceService(newFakeAttendanceRepo(), resolver)
	userID := uuid.New()

	// Break without an open session is rejected.
	if _, err := svc.ToggleBreak(userID); !errors.Is(err, ErrNoOpenSession) {
		t.Fatalf("ToggleBreak error = %v, want ErrNoOpenSession", err)
	}

	if _, err := svc.PunchIn(userID, models.WorkModeOffice); err != nil {
		t.Fatalf("PunchIn: %v", err)
	}

	status, err := svc.ToggleBreak(userID)
	if err != nil {
		t.Fatalf("ToggleBreak: %v", err)
	}
	if status != models.LiveStatusOnBreak {
		t.Errorf("status after toggle = %q, want %q", status, models.LiveStatusOnBreak)
	}

	live, _ := svc.LiveStatusForToday(userID)
	if live != models.LiveStatusOnBreak {
		t.Errorf("LiveStatusForToday = %q, want %q", live, models.LiveStatusOnBreak)
	}

	status, _ = svc.ToggleBreak(userID)
	if status != models.LiveStatusWorking {
		t.Errorf("status after second toggle = %q, want %q", status, models.LiveStatusWorking)
	}
}

func TestPunchOutFromBreak(t *testing.T) {
	fc, resolver := newTestResolver(time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC))
	svc := NewAttendanceService(newFakeAttendanceRepo(), resolver)
	userID := uuid.New()

	if _, err := svc.PunchIn(userID, models.WorkModeOffice); err != nil {
		t.Fatalf("PunchIn: %v", err)
	}
	if _, err := svc.ToggleBreak(userID); err != nil {
		t.Fatalf("ToggleBreak: %v", err)
	}

	fc.Set(fc.Now().Add(4 * time.Hour))

	session, err := svc.PunchOut(userID)
	if err != nil {
		t.Fatalf("PunchOut from break: %v", err)
	}

	// Break time is not deducted from total hours.
	if session.TotalHours != 4.0 {
		t.Errorf("TotalHours = %v, want 4.0", session.TotalHours)
	}

	status, _ := svc.LiveStatusForToday(userID)
	if status != models.LiveStatusCompleted {
		t.Errorf("status after punch-out = %q, want %q", status, models.LiveStatusCompleted)
	}
}

func TestStatusResetsOnDateRollover(t *testing.T) {
	fc, resolver := newTestResolver(time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC))
	svc := NewAttendanceService(newFakeAttendanceRepo(), resolver)
	userID := uuid.New()

	if _, err := svc.PunchIn(userID, models.WorkModeOffice); err != nil {
		t.Fatalf("PunchIn: %v", err)
	}
	if _, err := svc.PunchOut(userID); err != nil {
		t.Fatalf("PunchOut: %v", err)
	}

	fc.Set(time.Date(2024, 6, 4, 8, 0, 0, 0, time.UTC))

	status, err := svc.LiveStatusForToday(userID)
	if err != nil {
		t.Fatalf("LiveStatusForToday: %v", err)
	}
	if status != models.LiveStatusOffline {
		t.Errorf("status on new day = %q, want %q", status, models.LiveStatusOffline)
	}
}
