package ports

import (
	"context"

	"github.com/evolfitness/booking-system/internal/core/domain"
)

// ClassRepository defines persistence operations for classes and rosters.
//
// The roster mutations map to single-document atomic updates ($addToSet and
// $pull), which is the only concurrency guarantee the system relies on: two
// simultaneous enrollments of the same user cannot produce a duplicate
// roster entry.
type ClassRepository interface {
	Insert(ctx context.Context, class *domain.Class) (*domain.Class, error)
	FindByID(ctx context.Context, id string) (*domain.Class, error)
	// FindAll returns every class sorted ascending by scheduled time.
	FindAll(ctx context.Context) ([]*domain.Class, error)
	// AddEnrollment adds userID to the roster set. It reports whether the
	// user was already enrolled, and domain.ErrClassNotFound when no class
	// matches.
	AddEnrollment(ctx context.Context, classID, userID string) (already bool, err error)
	// RemoveEnrollment pulls userID from the roster set and reports whether
	// membership actually changed.
	RemoveEnrollment(ctx context.Context, classID, userID string) (removed bool, err error)
	// AddLateCancellation records userID in the late-cancellation set
	// without touching the roster.
	AddLateCancellation(ctx context.Context, classID, userID string) error
}
