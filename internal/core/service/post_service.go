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

// PostService implements post creation, the global feed and user walls.
type PostService struct {
	posts  ports.PostRepository
	users  ports.UserRepository
	cache  ports.FeedCache
	logger zerolog.Logger
	now    func() time.Time
}

// NewPostService builds a PostService. cache may be nil.
func NewPostService(posts ports.PostRepository, users ports.UserRepository, cache ports.FeedCache, logger zerolog.Logger) *PostService {
	if cache == nil {
		cache = nopFeedCache{}
	}
	return &PostService{posts: posts, users: users, cache: cache, logger: logger, now: time.Now}
}

// Create stores a post stamped with the server clock.
func (s *PostService) Create(ctx context.Context, in ports.CreatePostInput) (*domain.Post, error) {
	if err := domain.ValidatePostContent(in.Content); err != nil {
		return nil, err
	}

	author, err := s.users.FindByID(ctx, in.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	created, err := s.posts.Create(ctx, &domain.Post{
		Content:   in.Content,
		CreatedAt: s.now().UTC(),
		Author:    author.Ref(),
	})
	if err != nil {
		s.logger.Error().Err(err).Uint64("author_id", in.AuthorID).Msg("failed to create post")
		return nil, err
	}

	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("feed cache invalidation failed")
	}

	metrics.PostsCreatedTotal.Inc()
	s.logger.Info().Uint64("post_id", created.ID).Uint64("author_id", author.ID).Msg("post created")
	return created, nil
}

func (s *PostService) FindByID(ctx context.Context, id uint64) (*domain.Post, error) {
	return s.posts.FindByID(ctx, id)
}

// Feed returns every author's posts, newest first.
func (s *PostService) Feed(ctx context.Context, page domain.Page) ([]domain.Post, error) {
	key := ports.FeedKey{Page: page.Normalize()}
	return s.cached(ctx, key, func() ([]domain.Post, error) {
		return s.posts.List(ctx, key.Page)
	})
}

// WallOf returns one author's posts, newest first.
func (s *PostService) WallOf(ctx context.Context, authorID uint64, page domain.Page) ([]domain.Post, error) {
	if _, err := s.users.FindByID(ctx, authorID); err != nil {
		return nil, err
	}

	key := ports.FeedKey{AuthorID: authorID, Page: page.Normalize()}
	return s.cached(ctx, key, func() ([]domain.Post, error) {
		return s.posts.ListByAuthor(ctx, authorID, key.Page)
	})
}

// cached serves key from the feed cache, falling back to load on a miss or a
// cache failure.
func (s *PostService) cached(ctx context.Context, key ports.FeedKey, load func() ([]domain.Post, error)) ([]domain.Post, error) {
	page, cacheErr := s.cache.Get(ctx, key)
	switch {
	case cacheErr != nil:
		metrics.FeedCacheTotal.WithLabelValues("error").Inc()
		s.logger.Warn().Err(cacheErr).Uint64("author_id", key.AuthorID).Msg("feed cache read failed, loading from store")
	case page.Hit:
		metrics.FeedCacheTotal.WithLabelValues("hit").Inc()
		return page.Posts, nil
	default:
		metrics.FeedCacheTotal.WithLabelValues("miss").Inc()
	}

	posts, err := load()
	if err != nil {
		return nil, err
	}

	// Without a generation from Get there is no safe key to fill.
	if cacheErr != nil {
		return posts, nil
	}
	if err := s.cache.Set(ctx, key, page.Generation, posts); err != nil {
		s.logger.Warn().Err(err).Uint64("author_id", key.AuthorID).Msg("feed cache write failed")
	}
	return posts, nil
}

type nopFeedCache struct{}

func (nopFeedCache) Get(context.Context, ports.FeedKey) (ports.FeedPage, error) {
	return ports.FeedPage{}, nil
}

func (nopFeedCache) Set(context.Context, ports.FeedKey, int64, []domain.Post) error { return nil }

func (nopFeedCache) Invalidate(context.Context) error { return nil }
