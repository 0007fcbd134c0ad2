package domain

import (
	"strconv"
	"time"
)

// FriendshipStatus represents the lifecycle state of a friend request.
type FriendshipStatus string

const (
	FriendshipPending  FriendshipStatus = "PENDING"
	FriendshipAccepted FriendshipStatus = "ACCEPTED"
	FriendshipRejected FriendshipStatus = "REJECTED"
)

// validTransitions defines the allowed state machine transitions.
// ACCEPTED and REJECTED are terminal.
var validTransitions = map[FriendshipStatus][]FriendshipStatus{
	FriendshipPending: {FriendshipAccepted, FriendshipRejected},
}

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s FriendshipStatus) CanTransitionTo(next FriendshipStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is possible.
func (s FriendshipStatus) IsTerminal() bool {
	return len(validTransitions[s]) == 0
}

// UserRef is the minimal identity embedded in friendship, post and comment views.
type UserRef struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
}

// Friendship is a directed friend request between two users. The record is
// directional but once ACCEPTED both participants are friends of each other.
type Friendship struct {
	ID        uint64           `json:"id"`
	Requester UserRef          `json:"requester"`
	Addressee UserRef          `json:"addressee"`
	Status    FriendshipStatus `json:"status"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// Involves reports whether userID is one of the two participants.
func (f *Friendship) Involves(userID uint64) bool {
	return f.Requester.ID == userID || f.Addressee.ID == userID
}

// Other returns the participant that is not userID.
func (f *Friendship) Other(userID uint64) UserRef {
	if f.Requester.ID == userID {
		return f.Addressee
	}
	return f.Requester
}

// PairKey returns an order-independent key for the two participants.
func PairKey(a, b uint64) string {
	if a > b {
		a, b = b, a
	}
	return strconv.FormatUint(a, 10) + ":" + strconv.FormatUint(b, 10)
}

// FriendshipEvent is one entry of a friendship's audit trail.
type FriendshipEvent struct {
	FriendshipID uint64           `json:"friendshipId" bson:"friendship_id"`
	RequesterID  uint64           `json:"requesterId" bson:"requester_id"`
	AddresseeID  uint64           `json:"addresseeId" bson:"addressee_id"`
	ActorID      uint64           `json:"actorId" bson:"actor_id"`
	Status       FriendshipStatus `json:"status" bson:"status"`
	OccurredAt   time.Time        `json:"occurredAt" bson:"occurred_at"`
}
