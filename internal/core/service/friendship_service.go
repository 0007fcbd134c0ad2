package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/socialweb/social-api/internal/core/domain"
	"github.com/socialweb/social-api/internal/core/ports"
	"github.com/socialweb/social-api/internal/pkg/metrics"
)

type friendshipService struct {
	friendships ports.FriendshipRepository
	users       ports.UserRepository
	events      ports.FriendshipEventStore
	publisher   ports.FriendshipEventPublisher
	log         zerolog.Logger
	now         func() time.Time
}

// NewFriendshipService returns a FriendshipService implementation. events and
// publisher may be nil when the audit trail is disabled.
func NewFriendshipService(
	friendships ports.FriendshipRepository,
	users ports.UserRepository,
	events ports.FriendshipEventStore,
	publisher ports.FriendshipEventPublisher,
	log zerolog.Logger,
) ports.FriendshipService {
	if events == nil {
		events = nopEventStore{}
	}
	if publisher == nil {
		publisher = nopPublisher{}
	}
	return &friendshipService{
		friendships: friendships,
		users:       users,
		events:      events,
		publisher:   publisher,
		log:         log,
		now:         time.Now,
	}
}

// SendRequest creates a PENDING request from requesterID to addresseeID.
func (s *friendshipService) SendRequest(ctx context.Context, requesterID, addresseeID uint64) (*domain.Friendship, error) {
	if requesterID == addresseeID {
		return nil, domain.NewValidationError("addresseeId", "must differ from the requester")
	}

	requester, err := s.users.FindByID(ctx, requesterID)
	if err != nil {
		return nil, fmt.Errorf("send request: requester: %w", err)
	}
	addressee, err := s.users.FindByID(ctx, addresseeID)
	if err != nil {
		return nil, fmt.Errorf("send request: addressee: %w", err)
	}

	// Covers duplicates and reciprocal requests.
	existing, err := s.friendships.FindBetween(ctx, requesterID, addresseeID)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	for _, f := range existing {
		switch f.Status {
		case domain.FriendshipPending:
			return nil, domain.ErrDuplicateRequest
		case domain.FriendshipAccepted:
			return nil, domain.ErrAlreadyFriends
		}
	}

	now := s.now().UTC()
	created, err := s.friendships.Create(ctx, &domain.Friendship{
		Requester: requester.Ref(),
		Addressee: addressee.Ref(),
		Status:    domain.FriendshipPending,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, err
	}

	s.record(created, requesterID)
	s.log.Info().
		Uint64("friendship_id", created.ID).
		Uint64("requester_id", requesterID).
		Uint64("addressee_id", addresseeID).
		Msg("friend request sent")
	return created, nil
}

func (s *friendshipService) Accept(ctx context.Context, actorID, friendshipID uint64) (*domain.Friendship, error) {
	return s.respond(ctx, actorID, friendshipID, domain.FriendshipAccepted)
}

func (s *friendshipService) Reject(ctx context.Context, actorID, friendshipID uint64) (*domain.Friendship, error) {
	return s.respond(ctx, actorID, friendshipID, domain.FriendshipRejected)
}

// respond applies a guarded transition. Only the addressee may answer a
// request; the repository update is conditional on the status read here, so
// of two concurrent answers the first one wins.
func (s *friendshipService) respond(ctx context.Context, actorID, friendshipID uint64, next domain.FriendshipStatus) (*domain.Friendship, error) {
	f, err := s.friendships.FindByID(ctx, friendshipID)
	if err != nil {
		return nil, err
	}
	if f.Addressee.ID != actorID {
		return nil, domain.ErrForbidden
	}
	if !f.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, f.Status, next)
	}

	updated, err := s.friendships.UpdateStatus(ctx, friendshipID, f.Status, next)
	if err != nil {
		return nil, err
	}

	s.record(updated, actorID)
	s.log.Info().
		Uint64("friendship_id", updated.ID).
		Str("status", string(updated.Status)).
		Msg("friend request answered")
	return updated, nil
}

// FriendsOf resolves accepted friendships in both directions.
func (s *friendshipService) FriendsOf(ctx context.Context, userID uint64) ([]domain.User, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	accepted, err := s.friendships.ListAccepted(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("friends of %d: %w", userID, err)
	}

	seen := make(map[uint64]struct{}, len(accepted))
	ids := make([]uint64, 0, len(accepted))
	for i := range accepted {
		other := accepted[i].Other(userID).ID
		if other == userID {
			continue
		}
		if _, ok := seen[other]; ok {
			continue
		}
		seen[other] = struct{}{}
		ids = append(ids, other)
	}
	if len(ids) == 0 {
		return []domain.User{}, nil
	}

	return s.users.FindByIDs(ctx, ids)
}

func (s *friendshipService) PendingFor(ctx context.Context, userID uint64) ([]domain.Friendship, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.friendships.ListPendingFor(ctx, userID)
}

func (s *friendshipService) History(ctx context.Context, friendshipID uint64) ([]domain.FriendshipEvent, error) {
	if _, err := s.friendships.FindByID(ctx, friendshipID); err != nil {
		return nil, err
	}
	return s.events.ListEvents(ctx, friendshipID)
}

func (s *friendshipService) record(f *domain.Friendship, actorID uint64) {
	metrics.FriendshipTransitionsTotal.WithLabelValues(string(f.Status)).Inc()
	s.publisher.Publish(domain.FriendshipEvent{
		FriendshipID: f.ID,
		RequesterID:  f.Requester.ID,
		AddresseeID:  f.Addressee.ID,
		ActorID:      actorID,
		Status:       f.Status,
		OccurredAt:   s.now().UTC(),
	})
}

type nopPublisher struct{}

func (nopPublisher) Publish(domain.FriendshipEvent) {}

type nopEventStore struct{}

func (nopEventStore) InsertEvent(context.Context, *domain.FriendshipEvent) error { return nil }

func (nopEventStore) ListEvents(context.Context, uint64) ([]domain.FriendshipEvent, error) {
	return []domain.FriendshipEvent{}, nil
}
