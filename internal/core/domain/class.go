package domain

import (
	"errors"
	"time"
)

// CancellationCutoff is the window before a class starts inside which a
// cancellation counts as late and no longer releases the seat.
const CancellationCutoff = 15 * time.Minute

var ErrClassNotFound = errors.New("class not found")
var ErrInvalidID = errors.New("invalid identifier")
var ErrStoreUnavailable = errors.New("store unavailable")

// ValidationError carries a user-facing message for malformed input. The
// message is returned verbatim in the error envelope with HTTP 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Validation builds a ValidationError with the given message.
func Validation(msg string) error { return &ValidationError{Message: msg} }

// Class is the core aggregate: a scheduled session with a roster of enrolled
// user ids and a separate set of late-cancellation markers.
//
// Enrolled and LateCancellations are independent: a late cancellation records
// the user in LateCancellations without removing them from Enrolled, so the
// seat stays taken and the no-show can still be distinguished from an
// attendee.
type Class struct {
	ID                string
	Name              string
	Description       string
	ScheduledAt       time.Time
	Capacity          int
	Image             string
	Enrolled          []string
	LateCancellations []string
}

// RemainingSeats reports free capacity, clamped at zero. The roster can
// exceed capacity because Enroll performs no capacity check.
func (c *Class) RemainingSeats() int {
	free := c.Capacity - len(c.Enrolled)
	if free < 0 {
		return 0
	}
	return free
}

// HasEnrolled reports whether the user id is on the roster.
func (c *Class) HasEnrolled(userID string) bool {
	for _, id := range c.Enrolled {
		if id == userID {
			return true
		}
	}
	return false
}

// HasLateCancellation reports whether a late cancellation was recorded for
// the user.
func (c *Class) HasLateCancellation(userID string) bool {
	for _, id := range c.LateCancellations {
		if id == userID {
			return true
		}
	}
	return false
}

// ScheduledOn reports whether the class falls on the given calendar day,
// evaluated in day's location.
func (c *Class) ScheduledOn(day time.Time) bool {
	y1, m1, d1 := c.ScheduledAt.In(day.Location()).Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// IsLateCancellation reports whether a cancellation issued at now falls
// inside the cutoff window before scheduledAt. Cancellations at or after the
// scheduled instant are always late.
func IsLateCancellation(scheduledAt, now time.Time) bool {
	return scheduledAt.Sub(now) <= CancellationCutoff
}
