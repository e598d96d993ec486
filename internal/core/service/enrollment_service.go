package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/evolfitness/booking-system/internal/core/domain"
	"github.com/evolfitness/booking-system/internal/core/ports"
)

// EnrollmentService implements the enrollment/cancellation state machine on
// top of atomic single-document roster updates.
type EnrollmentService struct {
	classes ports.ClassRepository
	cache   ClassListCache
	now     func() time.Time
	log     zerolog.Logger
}

func NewEnrollmentService(classes ports.ClassRepository, cache ClassListCache, log zerolog.Logger) *EnrollmentService {
	return &EnrollmentService{classes: classes, cache: cache, now: time.Now, log: log}
}

// Enroll adds the user to the class roster via an atomic set insert.
// Re-enrolling is a no-op reported as already=true. Capacity is deliberately
// not checked; see RemainingSeats for the clamped read-side view.
func (s *EnrollmentService) Enroll(ctx context.Context, classID, userID string) (bool, error) {
	already, err := s.classes.AddEnrollment(ctx, classID, userID)
	if err != nil {
		return false, err
	}

	if !already {
		s.invalidateCache(ctx)
	}
	s.log.Info().Str("class_id", classID).Str("user_id", userID).Bool("already_enrolled", already).Msg("enrollment")
	return already, nil
}

// Cancel records a cancellation. A late cancellation (inside the 15-minute
// cutoff) only marks the user in the late-cancellation set and leaves the
// roster untouched, so the seat is not released. An on-time cancellation
// pulls the user from the roster and reports whether membership changed.
//
// When the caller does not supply the late flag it is derived from the class
// schedule.
func (s *EnrollmentService) Cancel(ctx context.Context, in ports.CancelInput) (*ports.CancelResult, error) {
	late, err := s.resolveLate(ctx, in)
	if err != nil {
		return nil, err
	}

	if late {
		if err := s.classes.AddLateCancellation(ctx, in.ClassID, in.UserID); err != nil {
			return nil, err
		}
		s.invalidateCache(ctx)
		s.log.Info().Str("class_id", in.ClassID).Str("user_id", in.UserID).Msg("late cancellation recorded")
		return &ports.CancelResult{Cancelled: true, Late: true}, nil
	}

	removed, err := s.classes.RemoveEnrollment(ctx, in.ClassID, in.UserID)
	if err != nil {
		return nil, err
	}

	if removed {
		s.invalidateCache(ctx)
	}
	s.log.Info().Str("class_id", in.ClassID).Str("user_id", in.UserID).Bool("removed", removed).Msg("cancellation")
	return &ports.CancelResult{Cancelled: removed, Late: false}, nil
}

func (s *EnrollmentService) resolveLate(ctx context.Context, in ports.CancelInput) (bool, error) {
	if in.Late != nil {
		return *in.Late, nil
	}

	class, err := s.classes.FindByID(ctx, in.ClassID)
	if err != nil {
		return false, err
	}
	return domain.IsLateCancellation(class.ScheduledAt, s.now()), nil
}

func (s *EnrollmentService) invalidateCache(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn().Err(err).Msg("class cache invalidation failed")
	}
}
