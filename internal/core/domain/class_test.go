package domain

import (
	"testing"
	"time"
)

func TestRemainingSeats_Clamped(t *testing.T) {
	c := &Class{Capacity: 2, Enrolled: []string{"a", "b", "c"}}
	if got := c.RemainingSeats(); got != 0 {
		t.Fatalf("expected 0 remaining seats on over-enrolled class, got %d", got)
	}

	c = &Class{Capacity: 5, Enrolled: []string{"a", "b"}}
	if got := c.RemainingSeats(); got != 3 {
		t.Fatalf("expected 3 remaining seats, got %d", got)
	}
}

func TestIsLateCancellation_Cutoff(t *testing.T) {
	start := time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC)

	// 16 minutes before start: still on time.
	if IsLateCancellation(start, start.Add(-16*time.Minute)) {
		t.Fatalf("cancellation 16min before start should be on time")
	}

	// Exactly 15 minutes before: late (cutoff is inclusive).
	if !IsLateCancellation(start, start.Add(-15*time.Minute)) {
		t.Fatalf("cancellation at the 15min cutoff should be late")
	}

	// After the class started: late.
	if !IsLateCancellation(start, start.Add(time.Hour)) {
		t.Fatalf("cancellation after start should be late")
	}
}

func TestScheduledOn_LocalDate(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)

	// 23:00 UTC on May 31st is June 1st in UTC+2.
	c := &Class{ScheduledAt: time.Date(2024, 5, 31, 23, 0, 0, 0, time.UTC)}

	day := time.Date(2024, 6, 1, 0, 0, 0, 0, loc)
	if !c.ScheduledOn(day) {
		t.Fatalf("class at 23:00Z May 31 should fall on June 1 in UTC+2")
	}

	day = time.Date(2024, 5, 31, 0, 0, 0, 0, loc)
	if c.ScheduledOn(day) {
		t.Fatalf("class should not fall on May 31 in UTC+2")
	}
}

func TestEffectiveRole_Default(t *testing.T) {
	u := &User{}
	if got := u.EffectiveRole(); got != RoleUser {
		t.Fatalf("expected default role %q, got %q", RoleUser, got)
	}

	u = &User{Role: RoleAdmin}
	if got := u.EffectiveRole(); got != RoleAdmin {
		t.Fatalf("expected %q, got %q", RoleAdmin, got)
	}
}
