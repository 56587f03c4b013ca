package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ekodrix-collab/ekodrix-hrms-sub001/internal/clock"
	"github.com/ekodrix-collab/ekodrix-hrms-sub001/internal/models"
	"github.com/ekodrix-collab/ekodrix-hrms-sub001/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Notifier is the slice of NotificationService the watchdog needs.
type Notifier interface {
	Notify(userID uuid.UUID, kind, message string) error
}

// AutoCloseWatchdog force-closes attendance sessions still open at the end of
// their civil day. A forgotten punch-out would otherwise accumulate unbounded
// hours; the sweep bounds every session to its own day. Closing is idempotent,
// so a tick racing a user punch-out is harmless and a failed tick is simply
// retried on the next one.
type AutoCloseWatchdog struct {
	sessionRepo repository.AttendanceRepository
	resolver    *clock.Resolver
	notifier    Notifier
	logger      *logrus.Logger

	cutoffHour   int
	cutoffMinute int
	interval     time.Duration

	cancel context.CancelFunc
	done   chan struct{}
}

func NewAutoCloseWatchdog(
	sessionRepo repository.AttendanceRepository,
	resolver *clock.Resolver,
	notifier Notifier,
	cutoffHour, cutoffMinute int,
	interval time.Duration,
) *AutoCloseWatchdog {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &AutoCloseWatchdog{
		sessionRepo:  sessionRepo,
		resolver:     resolver,
		notifier:     notifier,
		logger:       logger,
		cutoffHour:   cutoffHour,
		cutoffMinute: cutoffMinute,
		interval:     interval,
	}
}

// Start launches the recurring sweep. The goroutine stops when ctx is
// cancelled or Stop is called.
func (w *AutoCloseWatchdog) Start(ctx context.Context) {
	ctx, w.cancel = context.WithCancel(ctx)
	w.done = make(chan struct{})

	w.logger.WithFields(logrus.Fields{
		"cutoff":   fmt.Sprintf("%02d:%02d", w.cutoffHour, w.cutoffMinute),
		"interval": w.interval,
	}).Info("Auto-close watchdog started")

	go func() {
		defer close(w.done)

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				w.logger.Info("Auto-close watchdog stopped")
				return
			case <-ticker.C:
				w.Tick()
			}
		}
	}()
}

// Stop cancels the sweep goroutine and waits for it to exit.
func (w *AutoCloseWatchdog) Stop() {
	if w.cancel == nil {
		return
	}
	w.cancel()
	<-w.done
}

// Tick runs one sweep. Exported so the serving layer and tests can drive it
// without the timer.
func (w *AutoCloseWatchdog) Tick() {
	today := w.resolver.Today()
	hour, minute := w.resolver.CivilTime()
	pastCutoff := hour > w.cutoffHour || (hour == w.cutoffHour && minute >= w.cutoffMinute)

	open, err := w.sessionRepo.ListOpenThrough(today)
	if err != nil {
		// Transient store failure: the next tick retries, nothing is lost.
		w.logger.WithError(err).Error("Watchdog failed to list open sessions")
		return
	}

	for _, session := range open {
		// Sessions left over from an earlier civil day close on any tick;
		// today's sessions only once the cutoff is reached.
		if session.Date == today && !pastCutoff {
			continue
		}
		w.closeOne(session)
	}
}

func (w *AutoCloseWatchdog) closeOne(session *models.AttendanceSession) {
	closed, err := w.sessionRepo.CloseSession(session.ID, w.resolver.Now())
	if err != nil {
		w.logger.WithError(err).WithField("id", session.ID).Error("Watchdog failed to close session")
		return
	}

	w.logger.WithFields(logrus.Fields{
		"id":          closed.ID,
		"user_id":     closed.UserID,
		"date":        closed.Date,
		"total_hours": closed.TotalHours,
	}).Info("Session auto-closed by watchdog")

	if w.notifier != nil {
		if err := w.notifier.Notify(closed.UserID, models.NotifyAutoPunchOut,
			"You were automatically punched out at the end of the day."); err != nil {
			w.logger.WithError(err).Warn("Failed to emit auto punch-out notification")
		}
	}
}
