package ports

import (
	"context"

	"github.com/socialweb/social-api/internal/core/domain"
)

// PostRepository defines persistence operations for posts. List queries are
// ordered by created_at descending, newest first.
type PostRepository interface {
	Create(ctx context.Context, p *domain.Post) (*domain.Post, error)
	FindByID(ctx context.Context, id uint64) (*domain.Post, error)
	List(ctx context.Context, page domain.Page) ([]domain.Post, error)
	ListByAuthor(ctx context.Context, authorID uint64, page domain.Page) ([]domain.Post, error)
}

// CommentRepository defines persistence operations for comments.
type CommentRepository interface {
	Create(ctx context.Context, c *domain.Comment) (*domain.Comment, error)
	// ListByPost returns comments oldest first.
	ListByPost(ctx context.Context, postID uint64) ([]domain.Comment, error)
}

// FeedKey identifies one cached feed page. AuthorID 0 is the global feed.
type FeedKey struct {
	AuthorID uint64
	Page     domain.Page
}

// FeedPage is the result of a FeedCache lookup.
type FeedPage struct {
	Posts []domain.Post
	Hit   bool
	// Generation is the cache generation the lookup observed. A miss must be
	// filled with Set under this generation, so a page loaded before an
	// Invalidate never becomes current.
	Generation int64
}

// FeedCache is a read-through cache for feed and wall pages.
type FeedCache interface {
	Get(ctx context.Context, key FeedKey) (FeedPage, error)
	Set(ctx context.Context, key FeedKey, generation int64, posts []domain.Post) error
	// Invalidate drops every cached page.
	Invalidate(ctx context.Context) error
}
