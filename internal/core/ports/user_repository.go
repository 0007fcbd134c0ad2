package ports

import (
	"context"

	"github.com/socialweb/social-api/internal/core/domain"
)

// UserRepository defines persistence operations for accounts.
type UserRepository interface {
	// Create inserts a user and returns it with its generated id.
	// Returns domain.ErrUserExists when the username is taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id uint64) (*domain.User, error)
	// FindByIDs returns the users that exist among ids, ordered by id.
	FindByIDs(ctx context.Context, ids []uint64) ([]domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}
