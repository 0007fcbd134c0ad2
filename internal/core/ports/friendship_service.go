package ports

import (
	"context"

	"github.com/socialweb/social-api/internal/core/domain"
)

//go:generate mockgen -source=friendship_service.go -destination=mocks/friendship_service.go -package=mocks

// FriendshipService drives the friend request workflow. actorID is always the
// verified caller.
type FriendshipService interface {
	SendRequest(ctx context.Context, requesterID, addresseeID uint64) (*domain.Friendship, error)
	Accept(ctx context.Context, actorID, friendshipID uint64) (*domain.Friendship, error)
	Reject(ctx context.Context, actorID, friendshipID uint64) (*domain.Friendship, error)
	FriendsOf(ctx context.Context, userID uint64) ([]domain.User, error)
	PendingFor(ctx context.Context, userID uint64) ([]domain.Friendship, error)
	History(ctx context.Context, friendshipID uint64) ([]domain.FriendshipEvent, error)
}
