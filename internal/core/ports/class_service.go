package ports

import (
	"context"
	"time"

	"github.com/evolfitness/booking-system/internal/core/domain"
)

// CreateClassInput carries everything needed to publish a new class.
type CreateClassInput struct {
	Name        string
	Description string
	ScheduledAt time.Time
	Capacity    int
	// ImageName is the client-supplied filename; ImageContent is its raw
	// base64 payload. The service sanitizes the name and stores the bytes.
	ImageName    string
	ImageContent string
}

// ClassService defines class management and read-side roster queries.
type ClassService interface {
	CreateClass(ctx context.Context, in CreateClassInput) (*domain.Class, error)
	// ListClasses returns all classes ascending by scheduled time.
	ListClasses(ctx context.Context) ([]*domain.Class, error)
	// ListClassesOn filters to classes on day's calendar date, evaluated in
	// day's location.
	ListClassesOn(ctx context.Context, day time.Time) ([]*domain.Class, error)
	// ListClassesForUser filters to classes whose roster contains userID.
	ListClassesForUser(ctx context.Context, userID string) ([]*domain.Class, error)
	// ListEnrolledUsernames resolves a class roster to usernames in stored
	// order. Ids without a user record resolve to the deleted-user
	// placeholder.
	ListEnrolledUsernames(ctx context.Context, classID string) ([]string, error)
}
