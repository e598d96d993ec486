package ports

import (
	"context"

	"github.com/evolfitness/booking-system/internal/core/domain"
)

// RegisterInput carries the fields accepted at registration.
type RegisterInput struct {
	Username  string
	FirstName string
	LastName  string
	Password  string
}

// AccountService defines account use cases.
type AccountService interface {
	// Register creates a non-admin account and returns its id.
	Register(ctx context.Context, in RegisterInput) (string, error)
	// Login verifies credentials and returns a signed token plus the user.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	// Overview returns the total user count and the most recent accounts.
	Overview(ctx context.Context, limit int) (int64, []*domain.User, error)
}
