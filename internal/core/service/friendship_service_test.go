package service

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socialweb/social-api/internal/core/domain"
	"github.com/socialweb/social-api/internal/core/ports"
	"github.com/socialweb/social-api/internal/infrastructure/db/memory"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.FriendshipEvent
}

func (p *recordingPublisher) Publish(e domain.FriendshipEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

type friendshipFixture struct {
	svc       ports.FriendshipService
	publisher *recordingPublisher
	alice     *domain.User
	bob       *domain.User
	carol     *domain.User
}

func newFriendshipFixture(t *testing.T) friendshipFixture {
	t.Helper()
	store := memory.NewStore()
	users := NewUserService(store.Users(), zerolog.Nop())

	register := func(name string) *domain.User {
		u, err := users.Register(context.Background(), ports.RegisterInput{Username: name, Password: "pw"})
		require.NoError(t, err)
		return u
	}

	pub := &recordingPublisher{}
	return friendshipFixture{
		svc:       NewFriendshipService(store.Friendships(), store.Users(), nil, pub, zerolog.Nop()),
		publisher: pub,
		alice:     register("alice"),
		bob:       register("bob"),
		carol:     register("carol"),
	}
}

func TestFriendshipService_AcceptMakesBothFriends(t *testing.T) {
	fx := newFriendshipFixture(t)
	ctx := context.Background()

	req, err := fx.svc.SendRequest(ctx, fx.alice.ID, fx.bob.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.FriendshipPending, req.Status)
	assert.Equal(t, "alice", req.Requester.Username)
	assert.Equal(t, "bob", req.Addressee.Username)

	accepted, err := fx.svc.Accept(ctx, fx.bob.ID, req.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.FriendshipAccepted, accepted.Status)

	aliceFriends, err := fx.svc.FriendsOf(ctx, fx.alice.ID)
	require.NoError(t, err)
	require.Len(t, aliceFriends, 1)
	assert.Equal(t, "bob", aliceFriends[0].Username)

	bobFriends, err := fx.svc.FriendsOf(ctx, fx.bob.ID)
	require.NoError(t, err)
	require.Len(t, bobFriends, 1)
	assert.Equal(t, "alice", bobFriends[0].Username)

	carolFriends, err := fx.svc.FriendsOf(ctx, fx.carol.ID)
	require.NoError(t, err)
	assert.Empty(t, carolFriends)

	require.Len(t, fx.publisher.events, 2)
	assert.Equal(t, domain.FriendshipPending, fx.publisher.events[0].Status)
	assert.Equal(t, domain.FriendshipAccepted, fx.publisher.events[1].Status)
	assert.Equal(t, fx.bob.ID, fx.publisher.events[1].ActorID)
}

func TestFriendshipService_RejectLeavesNoFriendship(t *testing.T) {
	fx := newFriendshipFixture(t)
	ctx := context.Background()

	req, err := fx.svc.SendRequest(ctx, fx.alice.ID, fx.bob.ID)
	require.NoError(t, err)

	rejected, err := fx.svc.Reject(ctx, fx.bob.ID, req.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.FriendshipRejected, rejected.Status)

	for _, id := range []uint64{fx.alice.ID, fx.bob.ID} {
		friends, err := fx.svc.FriendsOf(ctx, id)
		require.NoError(t, err)
		assert.Empty(t, friends)
	}
}

func TestFriendshipService_TerminalStatesCannotChange(t *testing.T) {
	tests := []struct {
		name  string
		first func(ports.FriendshipService, context.Context, uint64, uint64) (*domain.Friendship, error)
		then  func(ports.FriendshipService, context.Context, uint64, uint64) (*domain.Friendship, error)
	}{
		{"accept after reject", ports.FriendshipService.Reject, ports.FriendshipService.Accept},
		{"reject after accept", ports.FriendshipService.Accept, ports.FriendshipService.Reject},
		{"accept twice", ports.FriendshipService.Accept, ports.FriendshipService.Accept},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newFriendshipFixture(t)
			ctx := context.Background()

			req, err := fx.svc.SendRequest(ctx, fx.alice.ID, fx.bob.ID)
			require.NoError(t, err)
			_, err = tt.first(fx.svc, ctx, fx.bob.ID, req.ID)
			require.NoError(t, err)

			_, err = tt.then(fx.svc, ctx, fx.bob.ID, req.ID)
			assert.ErrorIs(t, err, domain.ErrInvalidTransition)
			assert.ErrorIs(t, err, domain.ErrConflict)
		})
	}
}

func TestFriendshipService_SendRequest_Guards(t *testing.T) {
	fx := newFriendshipFixture(t)
	ctx := context.Background()

	_, err := fx.svc.SendRequest(ctx, fx.alice.ID, fx.alice.ID)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = fx.svc.SendRequest(ctx, fx.alice.ID, 999)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = fx.svc.SendRequest(ctx, 999, fx.alice.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = fx.svc.SendRequest(ctx, fx.alice.ID, fx.bob.ID)
	require.NoError(t, err)

	_, err = fx.svc.SendRequest(ctx, fx.alice.ID, fx.bob.ID)
	assert.ErrorIs(t, err, domain.ErrDuplicateRequest, "duplicate")

	_, err = fx.svc.SendRequest(ctx, fx.bob.ID, fx.alice.ID)
	assert.ErrorIs(t, err, domain.ErrDuplicateRequest, "reciprocal")
}

func TestFriendshipService_SendRequest_AfterOutcome(t *testing.T) {
	fx := newFriendshipFixture(t)
	ctx := context.Background()

	first, err := fx.svc.SendRequest(ctx, fx.alice.ID, fx.bob.ID)
	require.NoError(t, err)
	_, err = fx.svc.Reject(ctx, fx.bob.ID, first.ID)
	require.NoError(t, err)

	second, err := fx.svc.SendRequest(ctx, fx.alice.ID, fx.bob.ID)
	require.NoError(t, err, "a rejected request may be retried")
	_, err = fx.svc.Accept(ctx, fx.bob.ID, second.ID)
	require.NoError(t, err)

	_, err = fx.svc.SendRequest(ctx, fx.bob.ID, fx.alice.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyFriends)
}

func TestFriendshipService_OnlyAddresseeMayAnswer(t *testing.T) {
	fx := newFriendshipFixture(t)
	ctx := context.Background()

	req, err := fx.svc.SendRequest(ctx, fx.alice.ID, fx.bob.ID)
	require.NoError(t, err)

	_, err = fx.svc.Accept(ctx, fx.alice.ID, req.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = fx.svc.Reject(ctx, fx.carol.ID, req.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestFriendshipService_UnknownIDs(t *testing.T) {
	fx := newFriendshipFixture(t)
	ctx := context.Background()

	_, err := fx.svc.Accept(ctx, fx.bob.ID, 404)
	assert.ErrorIs(t, err, domain.ErrFriendshipNotFound)
	_, err = fx.svc.Reject(ctx, fx.bob.ID, 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = fx.svc.FriendsOf(ctx, 404)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	_, err = fx.svc.History(ctx, 404)
	assert.ErrorIs(t, err, domain.ErrFriendshipNotFound)
}

func TestFriendshipService_PendingFor(t *testing.T) {
	fx := newFriendshipFixture(t)
	ctx := context.Background()

	fromAlice, err := fx.svc.SendRequest(ctx, fx.alice.ID, fx.bob.ID)
	require.NoError(t, err)
	_, err = fx.svc.SendRequest(ctx, fx.carol.ID, fx.bob.ID)
	require.NoError(t, err)
	_, err = fx.svc.SendRequest(ctx, fx.bob.ID, fx.alice.ID+100)
	require.ErrorIs(t, err, domain.ErrUserNotFound)

	pending, err := fx.svc.PendingFor(ctx, fx.bob.ID)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, fromAlice.ID, pending[0].ID)

	_, err = fx.svc.Accept(ctx, fx.bob.ID, fromAlice.ID)
	require.NoError(t, err)

	pending, err = fx.svc.PendingFor(ctx, fx.bob.ID)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "carol", pending[0].Requester.Username)

	aliceIncoming, err := fx.svc.PendingFor(ctx, fx.alice.ID)
	require.NoError(t, err)
	assert.Empty(t, aliceIncoming)
}

func TestFriendshipService_HistoryWithoutAuditStore(t *testing.T) {
	fx := newFriendshipFixture(t)
	ctx := context.Background()

	req, err := fx.svc.SendRequest(ctx, fx.alice.ID, fx.bob.ID)
	require.NoError(t, err)

	events, err := fx.svc.History(ctx, req.ID)
	require.NoError(t, err)
	assert.Empty(t, events)
}

type raceRepo struct {
	ports.FriendshipRepository
}

// UpdateStatus simulates another writer answering between the read and the write.
func (r raceRepo) UpdateStatus(context.Context, uint64, domain.FriendshipStatus, domain.FriendshipStatus) (*domain.Friendship, error) {
	return nil, domain.ErrInvalidTransition
}

func TestFriendshipService_ConcurrentAnswerLoses(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	users := NewUserService(store.Users(), zerolog.Nop())
	alice, err := users.Register(ctx, ports.RegisterInput{Username: "alice", Password: "pw"})
	require.NoError(t, err)
	bob, err := users.Register(ctx, ports.RegisterInput{Username: "bob", Password: "pw"})
	require.NoError(t, err)

	pub := &recordingPublisher{}
	svc := NewFriendshipService(raceRepo{store.Friendships()}, store.Users(), nil, pub, zerolog.Nop())

	req, err := svc.SendRequest(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	_, err = svc.Accept(ctx, bob.ID, req.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Len(t, pub.events, 1, "losing writer must not publish")
}
