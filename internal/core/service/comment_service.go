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

// CommentService implements comment creation and post threads.
type CommentService struct {
	comments ports.CommentRepository
	posts    ports.PostRepository
	users    ports.UserRepository
	logger   zerolog.Logger
	now      func() time.Time
}

func NewCommentService(comments ports.CommentRepository, posts ports.PostRepository, users ports.UserRepository, logger zerolog.Logger) *CommentService {
	return &CommentService{comments: comments, posts: posts, users: users, logger: logger, now: time.Now}
}

func (s *CommentService) Create(ctx context.Context, in ports.CreateCommentInput) (*domain.Comment, error) {
	if err := domain.ValidateCommentText(in.Text); err != nil {
		return nil, err
	}

	post, err := s.posts.FindByID(ctx, in.PostID)
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	author, err := s.users.FindByID(ctx, in.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	created, err := s.comments.Create(ctx, &domain.Comment{
		PostID:      post.ID,
		CommentText: in.Text,
		CreatedAt:   s.now().UTC(),
		Author:      author.Ref(),
	})
	if err != nil {
		return nil, err
	}

	metrics.CommentsCreatedTotal.Inc()
	s.logger.Info().Uint64("comment_id", created.ID).Uint64("post_id", post.ID).Msg("comment created")
	return created, nil
}

// CommentsOf returns a post's thread, oldest first.
func (s *CommentService) CommentsOf(ctx context.Context, postID uint64) ([]domain.Comment, error) {
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.comments.ListByPost(ctx, postID)
}
