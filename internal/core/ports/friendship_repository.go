package ports

import (
	"context"

	"github.com/socialweb/social-api/internal/core/domain"
)

// FriendshipRepository defines persistence operations for friend requests.
type FriendshipRepository interface {
	// Create inserts a PENDING request. Returns domain.ErrDuplicateRequest when
	// a pending request between the same pair already exists.
	Create(ctx context.Context, f *domain.Friendship) (*domain.Friendship, error)
	FindByID(ctx context.Context, id uint64) (*domain.Friendship, error)
	// FindBetween returns every record between a and b in either direction.
	FindBetween(ctx context.Context, a, b uint64) ([]domain.Friendship, error)
	// UpdateStatus moves the record from `from` to `to` only if it is still in
	// `from`. Returns domain.ErrInvalidTransition when another writer got there
	// first and domain.ErrFriendshipNotFound when the id is unknown.
	UpdateStatus(ctx context.Context, id uint64, from, to domain.FriendshipStatus) (*domain.Friendship, error)
	// ListAccepted returns ACCEPTED records where userID is either participant.
	ListAccepted(ctx context.Context, userID uint64) ([]domain.Friendship, error)
	// ListPendingFor returns PENDING records addressed to userID, oldest first.
	ListPendingFor(ctx context.Context, userID uint64) ([]domain.Friendship, error)
}

// FriendshipEventStore persists the friendship audit trail.
type FriendshipEventStore interface {
	InsertEvent(ctx context.Context, event *domain.FriendshipEvent) error
	ListEvents(ctx context.Context, friendshipID uint64) ([]domain.FriendshipEvent, error)
}

// FriendshipEventPublisher hands audit events off for asynchronous storage.
// Publish must not block the caller.
type FriendshipEventPublisher interface {
	Publish(event domain.FriendshipEvent)
}
