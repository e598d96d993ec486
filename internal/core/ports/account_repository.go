package ports

import (
	"context"

	"github.com/evolfitness/booking-system/internal/core/domain"
)

// AccountRepository defines persistence operations for user accounts.
type AccountRepository interface {
	// Create inserts a new user. A duplicate username must surface as
	// domain.ErrUserExists even when two inserts race; the store's unique
	// index is the authority, not a pre-check.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// ResolveUsernames maps user ids to usernames. Ids with no matching
	// document are simply absent from the result.
	ResolveUsernames(ctx context.Context, ids []string) (map[string]string, error)
	Count(ctx context.Context) (int64, error)
	// FindRecent returns the newest users first, without password hashes.
	FindRecent(ctx context.Context, limit int) ([]*domain.User, error)
}
