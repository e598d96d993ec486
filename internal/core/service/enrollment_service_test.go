package service

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/evolfitness/booking-system/internal/core/domain"
	"github.com/evolfitness/booking-system/internal/core/ports"
)

type stubClassRepo struct {
	classes map[string]*domain.Class
	seq     int
}

func newStubClassRepo() *stubClassRepo {
	return &stubClassRepo{classes: make(map[string]*domain.Class)}
}

func cloneClass(c *domain.Class) *domain.Class {
	clone := *c
	clone.Enrolled = append([]string(nil), c.Enrolled...)
	clone.LateCancellations = append([]string(nil), c.LateCancellations...)
	return &clone
}

func (r *stubClassRepo) add(c *domain.Class) *domain.Class {
	r.seq++
	stored := cloneClass(c)
	if stored.ID == "" {
		stored.ID = fmt.Sprintf("class-%d", r.seq)
	}
	r.classes[stored.ID] = stored
	return cloneClass(stored)
}

func (r *stubClassRepo) Insert(_ context.Context, class *domain.Class) (*domain.Class, error) {
	return r.add(class), nil
}

func (r *stubClassRepo) FindByID(_ context.Context, id string) (*domain.Class, error) {
	c, ok := r.classes[id]
	if !ok {
		return nil, domain.ErrClassNotFound
	}
	return cloneClass(c), nil
}

func (r *stubClassRepo) FindAll(_ context.Context) ([]*domain.Class, error) {
	all := make([]*domain.Class, 0, len(r.classes))
	for _, c := range r.classes {
		all = append(all, cloneClass(c))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ScheduledAt.Before(all[j].ScheduledAt) })
	return all, nil
}

func (r *stubClassRepo) AddEnrollment(_ context.Context, classID, userID string) (bool, error) {
	c, ok := r.classes[classID]
	if !ok {
		return false, domain.ErrClassNotFound
	}
	if c.HasEnrolled(userID) {
		return true, nil
	}
	c.Enrolled = append(c.Enrolled, userID)
	return false, nil
}

func (r *stubClassRepo) RemoveEnrollment(_ context.Context, classID, userID string) (bool, error) {
	c, ok := r.classes[classID]
	if !ok {
		return false, domain.ErrClassNotFound
	}
	for i, id := range c.Enrolled {
		if id == userID {
			c.Enrolled = append(c.Enrolled[:i], c.Enrolled[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *stubClassRepo) AddLateCancellation(_ context.Context, classID, userID string) error {
	c, ok := r.classes[classID]
	if !ok {
		return domain.ErrClassNotFound
	}
	if !c.HasLateCancellation(userID) {
		c.LateCancellations = append(c.LateCancellations, userID)
	}
	return nil
}

// nopCache satisfies ClassListCache with no storage at all.
type nopCache struct{}

func (nopCache) Get(context.Context) ([]*domain.Class, error) { return nil, nil }
func (nopCache) Set(context.Context, []*domain.Class) error   { return nil }
func (nopCache) Invalidate(context.Context) error             { return nil }

func boolPtr(b bool) *bool { return &b }

func TestEnrollmentService_Enroll_Idempotent(t *testing.T) {
	repo := newStubClassRepo()
	class := repo.add(&domain.Class{Name: "Spinning", Capacity: 10})
	svc := NewEnrollmentService(repo, nopCache{}, zerolog.Nop())

	already, err := svc.Enroll(context.Background(), class.ID, "user-1")
	if err != nil {
		t.Fatalf("first enroll: %v", err)
	}
	if already {
		t.Fatalf("first enroll reported already enrolled")
	}

	already, err = svc.Enroll(context.Background(), class.ID, "user-1")
	if err != nil {
		t.Fatalf("second enroll: %v", err)
	}
	if !already {
		t.Fatalf("second enroll should report already enrolled")
	}

	stored := repo.classes[class.ID]
	if len(stored.Enrolled) != 1 {
		t.Fatalf("roster size changed on repeat enroll: %v", stored.Enrolled)
	}
}

func TestEnrollmentService_Enroll_ClassNotFound(t *testing.T) {
	svc := NewEnrollmentService(newStubClassRepo(), nopCache{}, zerolog.Nop())

	if _, err := svc.Enroll(context.Background(), "missing", "user-1"); err != domain.ErrClassNotFound {
		t.Fatalf("expected ErrClassNotFound, got %v", err)
	}
}

func TestEnrollmentService_Enroll_NoCapacityCheck(t *testing.T) {
	repo := newStubClassRepo()
	class := repo.add(&domain.Class{Name: "Yoga", Capacity: 1})
	svc := NewEnrollmentService(repo, nopCache{}, zerolog.Nop())

	for _, user := range []string{"u1", "u2", "u3"} {
		if _, err := svc.Enroll(context.Background(), class.ID, user); err != nil {
			t.Fatalf("enroll %s: %v", user, err)
		}
	}

	stored := repo.classes[class.ID]
	if len(stored.Enrolled) != 3 {
		t.Fatalf("expected 3 enrolled despite capacity 1, got %d", len(stored.Enrolled))
	}
	if stored.RemainingSeats() != 0 {
		t.Fatalf("remaining seats must clamp at 0, got %d", stored.RemainingSeats())
	}
}

func TestEnrollmentService_Cancel_OnTime(t *testing.T) {
	repo := newStubClassRepo()
	class := repo.add(&domain.Class{Name: "Box", Capacity: 10, Enrolled: []string{"user-1"}})
	svc := NewEnrollmentService(repo, nopCache{}, zerolog.Nop())

	result, err := svc.Cancel(context.Background(), ports.CancelInput{
		ClassID: class.ID, UserID: "user-1", Late: boolPtr(false),
	})
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if !result.Cancelled || result.Late {
		t.Fatalf("unexpected result: %+v", result)
	}
	if repo.classes[class.ID].HasEnrolled("user-1") {
		t.Fatalf("on-time cancel must remove the user from the roster")
	}

	// Canceling again reports no state change.
	result, err = svc.Cancel(context.Background(), ports.CancelInput{
		ClassID: class.ID, UserID: "user-1", Late: boolPtr(false),
	})
	if err != nil {
		t.Fatalf("repeat cancel: %v", err)
	}
	if result.Cancelled {
		t.Fatalf("repeat on-time cancel must report cancelled=false")
	}
}

func TestEnrollmentService_Cancel_LateKeepsSeat(t *testing.T) {
	repo := newStubClassRepo()
	class := repo.add(&domain.Class{Name: "Crossfit", Capacity: 10, Enrolled: []string{"user-1"}})
	svc := NewEnrollmentService(repo, nopCache{}, zerolog.Nop())

	result, err := svc.Cancel(context.Background(), ports.CancelInput{
		ClassID: class.ID, UserID: "user-1", Late: boolPtr(true),
	})
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if !result.Cancelled || !result.Late {
		t.Fatalf("unexpected result: %+v", result)
	}

	stored := repo.classes[class.ID]
	if !stored.HasEnrolled("user-1") {
		t.Fatalf("late cancel must keep the user on the roster")
	}
	if !stored.HasLateCancellation("user-1") {
		t.Fatalf("late cancel must record the late-cancellation marker")
	}

	// Idempotent: a second late cancel changes nothing.
	if _, err := svc.Cancel(context.Background(), ports.CancelInput{
		ClassID: class.ID, UserID: "user-1", Late: boolPtr(true),
	}); err != nil {
		t.Fatalf("repeat late cancel: %v", err)
	}
	if len(stored.LateCancellations) != 1 {
		t.Fatalf("late cancellation set grew on repeat: %v", stored.LateCancellations)
	}
}

func TestEnrollmentService_Cancel_DerivesLateFromSchedule(t *testing.T) {
	now := time.Date(2024, 6, 1, 17, 50, 0, 0, time.UTC)

	repo := newStubClassRepo()
	soon := repo.add(&domain.Class{
		Name:        "Spinning",
		Capacity:    10,
		ScheduledAt: now.Add(10 * time.Minute),
		Enrolled:    []string{"user-1"},
	})
	later := repo.add(&domain.Class{
		Name:        "Pilates",
		Capacity:    10,
		ScheduledAt: now.Add(2 * time.Hour),
		Enrolled:    []string{"user-1"},
	})

	svc := NewEnrollmentService(repo, nopCache{}, zerolog.Nop())
	svc.now = func() time.Time { return now }

	// 10 minutes before start: inside the cutoff, derived as late.
	result, err := svc.Cancel(context.Background(), ports.CancelInput{ClassID: soon.ID, UserID: "user-1"})
	if err != nil {
		t.Fatalf("cancel soon: %v", err)
	}
	if !result.Late {
		t.Fatalf("cancellation 10min before start should derive late=true")
	}

	// Two hours before start: on time.
	result, err = svc.Cancel(context.Background(), ports.CancelInput{ClassID: later.ID, UserID: "user-1"})
	if err != nil {
		t.Fatalf("cancel later: %v", err)
	}
	if result.Late {
		t.Fatalf("cancellation 2h before start should derive late=false")
	}
	if repo.classes[later.ID].HasEnrolled("user-1") {
		t.Fatalf("derived on-time cancel must release the seat")
	}
}

func TestEnrollmentService_Cancel_ClassNotFound(t *testing.T) {
	svc := NewEnrollmentService(newStubClassRepo(), nopCache{}, zerolog.Nop())

	if _, err := svc.Cancel(context.Background(), ports.CancelInput{
		ClassID: "missing", UserID: "user-1", Late: boolPtr(false),
	}); err != domain.ErrClassNotFound {
		t.Fatalf("expected ErrClassNotFound, got %v", err)
	}
}
