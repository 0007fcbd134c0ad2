package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/socialweb/social-api/internal/core/domain"
)

type recordingStore struct {
	mu     sync.Mutex
	events []domain.FriendshipEvent
	fail   bool
}

func (s *recordingStore) InsertEvent(_ context.Context, e *domain.FriendshipEvent) error {
	if s.fail {
		return errors.New("mongo down")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, *e)
	return nil
}

func (s *recordingStore) ListEvents(_ context.Context, id uint64) ([]domain.FriendshipEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.FriendshipEvent
	for _, e := range s.events {
		if e.FriendshipID == id {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *recordingStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(4, &recordingStore{}, zerolog.Nop())
	for id := uint64(1); id < 100; id++ {
		first := d.shardIndex(id)
		if first < 0 || first >= 4 {
			t.Fatalf("shard %d out of range for id %d", first, id)
		}
		if d.shardIndex(id) != first {
			t.Fatalf("shard for id %d not deterministic", id)
		}
	}
}

func TestDispatcher_PreservesPerFriendshipOrder(t *testing.T) {
	store := &recordingStore{}
	d := NewDispatcher(3, store, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	statuses := []domain.FriendshipStatus{domain.FriendshipPending, domain.FriendshipAccepted}
	for id := uint64(1); id <= 10; id++ {
		for _, st := range statuses {
			d.Publish(domain.FriendshipEvent{FriendshipID: id, Status: st})
		}
	}

	deadline := time.Now().Add(2 * time.Second)
	for store.count() < 20 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	d.Wait()

	for id := uint64(1); id <= 10; id++ {
		events, _ := store.ListEvents(context.Background(), id)
		if len(events) != 2 {
			t.Fatalf("friendship %d: expected 2 events, got %d", id, len(events))
		}
		if events[0].Status != domain.FriendshipPending || events[1].Status != domain.FriendshipAccepted {
			t.Fatalf("friendship %d: out of order %+v", id, events)
		}
	}
}

func TestDispatcher_DropsWhenQueueFull(t *testing.T) {
	store := &recordingStore{}
	d := NewDispatcher(1, store, zerolog.Nop())

	for i := 0; i < channelBuffer+5; i++ {
		d.Publish(domain.FriendshipEvent{FriendshipID: 1})
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d.Start(ctx)
	d.Wait()

	if got := store.count(); got != channelBuffer {
		t.Fatalf("expected %d stored events, got %d", channelBuffer, got)
	}
}

func TestDispatcher_InsertFailureDoesNotStopWorker(t *testing.T) {
	store := &recordingStore{fail: true}
	d := NewDispatcher(1, store, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	d.Publish(domain.FriendshipEvent{FriendshipID: 1})
	d.Publish(domain.FriendshipEvent{FriendshipID: 1})

	deadline := time.Now().Add(2 * time.Second)
	for len(d.workers[0]) > 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	d.Wait()

	if store.count() != 0 {
		t.Fatalf("expected nothing stored")
	}
}
