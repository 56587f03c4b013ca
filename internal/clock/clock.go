package clock

import (
	"time"
)

// Clock abstracts the current instant so services and the watchdog can be
// driven by a fake in tests.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// Resolver projects instants into a fixed civil timezone. Attendance dates
// and the auto-close cutoff are always evaluated in this zone, never in the
// host's local zone.
type Resolver struct {
	clock Clock
	loc   *time.Location
}

func NewResolver(clock Clock, timezone string) (*Resolver, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, err
	}

	return &Resolver{
		clock: clock,
		loc:   loc,
	}, nil
}

func (r *Resolver) Now() time.Time {
	return r.clock.Now()
}

// Today returns the civil date string used as the attendance partition key.
func (r *Resolver) Today() string {
	return r.clock.Now().In(r.loc).Format("2006-01-02")
}

// CivilTime returns the hour and minute of the current instant in the fixed
// timezone.
func (r *Resolver) CivilTime() (hour, minute int) {
	t := r.clock.Now().In(r.loc)
	return t.Hour(), t.Minute()
}

// DateOf projects an arbitrary instant to its civil date string.
func (r *Resolver) DateOf(t time.Time) string {
	return t.In(r.loc).Format("2006-01-02")
}

func (r *Resolver) Location() *time.Location {
	return r.loc
}
