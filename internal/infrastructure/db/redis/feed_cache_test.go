package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/socialweb/social-api/internal/core/domain"
	"github.com/socialweb/social-api/internal/core/ports"
)

type fakeRedis struct {
	data map[string]string
	ttls map[string]time.Duration
	err  error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if f.err != nil {
		return redis.NewStringResult("", f.err)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value any, exp time.Duration) *redis.StatusCmd {
	if f.err != nil {
		return redis.NewStatusResult("", f.err)
	}
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	default:
		f.data[key] = fmt.Sprint(v)
	}
	f.ttls[key] = exp
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Incr(_ context.Context, key string) *redis.IntCmd {
	if f.err != nil {
		return redis.NewIntResult(0, f.err)
	}
	n, _ := strconv.ParseInt(f.data[key], 10, 64)
	n++
	f.data[key] = strconv.FormatInt(n, 10)
	return redis.NewIntResult(n, nil)
}

func TestFeedCache_MissThenHit(t *testing.T) {
	rdb := newFakeRedis()
	cache := NewFeedCache(rdb, 30*time.Second)
	ctx := context.Background()
	key := ports.FeedKey{AuthorID: 7, Page: domain.Page{Limit: 10}}

	miss, err := cache.Get(ctx, key)
	if err != nil || miss.Hit {
		t.Fatalf("expected clean miss, got hit=%v err=%v", miss.Hit, err)
	}

	posts := []domain.Post{
		{ID: 2, Content: "second", CreatedAt: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Author: domain.UserRef{ID: 7, Username: "alice"}},
		{ID: 1, Content: "first", CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Author: domain.UserRef{ID: 7, Username: "alice"}},
	}
	if err := cache.Set(ctx, key, miss.Generation, posts); err != nil {
		t.Fatalf("set: %v", err)
	}
	if ttl := rdb.ttls["feed:0:7:10:0"]; ttl != 30*time.Second {
		t.Fatalf("expected page stored under generation 0 with ttl 30s, got %v", ttl)
	}

	page, err := cache.Get(ctx, key)
	if err != nil || !page.Hit {
		t.Fatalf("expected hit, got hit=%v err=%v", page.Hit, err)
	}
	got := page.Posts
	if len(got) != 2 || got[0].ID != 2 || got[1].Author.Username != "alice" {
		t.Fatalf("unexpected cached page: %+v", got)
	}
	if !got[0].CreatedAt.Equal(posts[0].CreatedAt) {
		t.Fatalf("timestamp not preserved: %v", got[0].CreatedAt)
	}
}

func TestFeedCache_InvalidateOrphansPages(t *testing.T) {
	rdb := newFakeRedis()
	cache := NewFeedCache(rdb, 0)
	ctx := context.Background()
	global := ports.FeedKey{}
	wall := ports.FeedKey{AuthorID: 3}

	for _, k := range []ports.FeedKey{global, wall} {
		if err := cache.Set(ctx, k, 0, []domain.Post{{ID: 1}}); err != nil {
			t.Fatalf("set: %v", err)
		}
	}
	if err := cache.Invalidate(ctx); err != nil {
		t.Fatalf("invalidate: %v", err)
	}

	for _, k := range []ports.FeedKey{global, wall} {
		page, err := cache.Get(ctx, k)
		if err != nil || page.Hit {
			t.Fatalf("expected miss after invalidate for %+v, got hit=%v err=%v", k, page.Hit, err)
		}
		if page.Generation != 1 {
			t.Fatalf("expected generation 1, got %d", page.Generation)
		}
	}
	if rdb.data[generationKey] != "1" {
		t.Fatalf("expected generation 1, got %q", rdb.data[generationKey])
	}
	if rdb.ttls["feed:0:0:0:0"] != defaultFeedTTL {
		t.Fatalf("expected default ttl on pages")
	}
}

func TestFeedCache_FillAfterInvalidateStaysOrphaned(t *testing.T) {
	rdb := newFakeRedis()
	cache := NewFeedCache(rdb, time.Minute)
	ctx := context.Background()
	key := ports.FeedKey{}

	miss, err := cache.Get(ctx, key)
	if err != nil || miss.Hit {
		t.Fatalf("expected miss, got hit=%v err=%v", miss.Hit, err)
	}
	// A post is created while the reader loads its page.
	if err := cache.Invalidate(ctx); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if err := cache.Set(ctx, key, miss.Generation, []domain.Post{}); err != nil {
		t.Fatalf("set: %v", err)
	}

	page, err := cache.Get(ctx, key)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if page.Hit {
		t.Fatalf("page loaded before the invalidation was served: %+v", page.Posts)
	}
	if _, ok := rdb.data["feed:1:0:0:0"]; ok {
		t.Fatal("stale page written under the new generation")
	}
}

func TestFeedCache_PropagatesErrors(t *testing.T) {
	rdb := newFakeRedis()
	rdb.err = errors.New("connection refused")
	cache := NewFeedCache(rdb, time.Minute)
	ctx := context.Background()

	if _, err := cache.Get(ctx, ports.FeedKey{}); err == nil {
		t.Fatal("expected get error")
	}
	if err := cache.Set(ctx, ports.FeedKey{}, 0, nil); err == nil {
		t.Fatal("expected set error")
	}
	if err := cache.Invalidate(ctx); err == nil {
		t.Fatal("expected invalidate error")
	}
}

func TestFeedCache_CorruptPayload(t *testing.T) {
	rdb := newFakeRedis()
	rdb.data["feed:0:0:0:0"] = "not json"
	cache := NewFeedCache(rdb, time.Minute)

	if page, err := cache.Get(context.Background(), ports.FeedKey{}); err == nil || page.Hit {
		t.Fatalf("expected decode error, got hit=%v err=%v", page.Hit, err)
	}
}
