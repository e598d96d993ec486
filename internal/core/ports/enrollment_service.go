package ports

import "context"

// CancelInput carries a cancellation request. Late is optional: when nil the
// service derives it from the class schedule using the 15-minute cutoff,
// otherwise the caller's flag is honored (the mobile client computes it
// locally and the wire format carries it).
type CancelInput struct {
	ClassID string
	UserID  string
	Late    *bool
}

// CancelResult reports what a cancellation actually did.
type CancelResult struct {
	// Cancelled is true when the operation changed state: always for a late
	// cancellation, and only when roster membership changed for an on-time
	// one.
	Cancelled bool
	Late      bool
}

// EnrollmentService is the enrollment/cancellation state machine. Per
// (user, class) pair: NotEnrolled → Enrolled → (LateCancelMarked | NotEnrolled).
type EnrollmentService interface {
	// Enroll adds the user to the class roster. Idempotent: re-enrolling
	// reports already=true and mutates nothing. No capacity check is
	// performed.
	Enroll(ctx context.Context, classID, userID string) (already bool, err error)
	Cancel(ctx context.Context, in CancelInput) (*CancelResult, error)
}
