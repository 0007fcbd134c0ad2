package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/socialweb/social-api/internal/core/domain"
	"github.com/socialweb/social-api/internal/core/ports"
)

const friendshipEventsCollection = "friendship_events"

// FriendshipEventRepository implements ports.FriendshipEventStore using MongoDB.
type FriendshipEventRepository struct {
	coll    *mongo.Collection
	timeout time.Duration
}

// NewFriendshipEventRepository creates a new FriendshipEventRepository.
func NewFriendshipEventRepository(db *mongo.Database) *FriendshipEventRepository {
	return &FriendshipEventRepository{
		coll:    db.Collection(friendshipEventsCollection),
		timeout: queryTimeout,
	}
}

var _ ports.FriendshipEventStore = (*FriendshipEventRepository)(nil)

// EnsureIndexes creates the lookup index used by ListEvents.
func (r *FriendshipEventRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "friendship_id", Value: 1}, {Key: "occurred_at", Value: 1}},
		Options: options.Index().SetName("friendship_id_occurred_at"),
	})
	if err != nil {
		return fmt.Errorf("create friendship_events index: %w", err)
	}
	return nil
}

// InsertEvent appends one transition to the audit collection.
func (r *FriendshipEventRepository) InsertEvent(ctx context.Context, event *domain.FriendshipEvent) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	doc := *event
	doc.OccurredAt = doc.OccurredAt.UTC()
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert friendship event: %w", err)
	}
	return nil
}

// ListEvents returns a friendship's events in the order they happened.
func (r *FriendshipEventRepository) ListEvents(ctx context.Context, friendshipID uint64) ([]domain.FriendshipEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "occurred_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{"friendship_id": friendshipID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find friendship events: %w", err)
	}
	defer cur.Close(ctx)

	events := make([]domain.FriendshipEvent, 0)
	if err := cur.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("decode friendship events: %w", err)
	}
	return events, nil
}
