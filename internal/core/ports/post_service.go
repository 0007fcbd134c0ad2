package ports

import (
	"context"

	"github.com/socialweb/social-api/internal/core/domain"
)

//go:generate mockgen -source=post_service.go -destination=mocks/post_service.go -package=mocks

// CreatePostInput carries a new post.
type CreatePostInput struct {
	AuthorID uint64
	Content  string
}

// PostService defines use-case operations for posts.
type PostService interface {
	Create(ctx context.Context, in CreatePostInput) (*domain.Post, error)
	FindByID(ctx context.Context, id uint64) (*domain.Post, error)
	Feed(ctx context.Context, page domain.Page) ([]domain.Post, error)
	WallOf(ctx context.Context, authorID uint64, page domain.Page) ([]domain.Post, error)
}

// CreateCommentInput carries a new comment.
type CreateCommentInput struct {
	PostID   uint64
	AuthorID uint64
	Text     string
}

// CommentService defines use-case operations for comments.
type CommentService interface {
	Create(ctx context.Context, in CreateCommentInput) (*domain.Comment, error)
	CommentsOf(ctx context.Context, postID uint64) ([]domain.Comment, error)
}
