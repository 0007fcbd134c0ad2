package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/socialweb/social-api/internal/core/domain"
	"github.com/socialweb/social-api/internal/core/ports"
)

const (
	defaultFeedTTL = time.Minute
	generationKey  = "feed:gen"
)

// commander is the subset of *redis.Client the cache uses.
type commander interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
}

// FeedCache implements ports.FeedCache.
// Key format: feed:<generation>:<author_id>:<limit>:<offset>
//
// Every page key embeds the current generation, so bumping feed:gen on write
// orphans all cached pages at once; the orphans age out through the TTL.
type FeedCache struct {
	client commander
	ttl    time.Duration
}

// NewFeedCache wraps client. A non-positive ttl falls back to one minute.
func NewFeedCache(client commander, ttl time.Duration) *FeedCache {
	if ttl <= 0 {
		ttl = defaultFeedTTL
	}
	return &FeedCache{client: client, ttl: ttl}
}

var _ ports.FeedCache = (*FeedCache)(nil)

// Get reads the page under the current generation and reports that
// generation for the Set that fills a miss.
func (c *FeedCache) Get(ctx context.Context, key ports.FeedKey) (ports.FeedPage, error) {
	gen, err := c.generation(ctx)
	if err != nil {
		return ports.FeedPage{}, err
	}
	page := ports.FeedPage{Generation: gen}

	raw, err := c.client.Get(ctx, c.key(gen, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return page, nil
	}
	if err != nil {
		return page, fmt.Errorf("feed cache get: %w", err)
	}

	if err := json.Unmarshal(raw, &page.Posts); err != nil {
		return ports.FeedPage{Generation: gen}, fmt.Errorf("feed cache decode: %w", err)
	}
	page.Hit = true
	return page, nil
}

// Set stores posts under generation, the one reported by the Get that missed.
// After an Invalidate that key is already orphaned, so a stale page is never
// served.
func (c *FeedCache) Set(ctx context.Context, key ports.FeedKey, generation int64, posts []domain.Post) error {
	raw, err := json.Marshal(posts)
	if err != nil {
		return fmt.Errorf("feed cache encode: %w", err)
	}
	if err := c.client.Set(ctx, c.key(generation, key), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("feed cache set: %w", err)
	}
	return nil
}

func (c *FeedCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, generationKey).Err(); err != nil {
		return fmt.Errorf("feed cache invalidate: %w", err)
	}
	return nil
}

func (c *FeedCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("feed cache generation: %w", err)
	}
	return gen, nil
}

func (c *FeedCache) key(gen int64, k ports.FeedKey) string {
	return fmt.Sprintf("feed:%d:%d:%d:%d", gen, k.AuthorID, k.Page.Limit, k.Page.Offset)
}
