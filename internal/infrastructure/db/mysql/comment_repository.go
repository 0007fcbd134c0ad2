package mysql

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/socialweb/social-api/internal/core/domain"
)

// CommentRepository implements ports.CommentRepository.
type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, c *domain.Comment) (*domain.Comment, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rec := commentRecord{
		PostID:      c.PostID,
		CommentText: c.CommentText,
		CreatedAt:   c.CreatedAt,
		AuthorID:    c.Author.ID,
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&rec).Error; err != nil {
		if isMySQLError(err, errNoReferencedRow) {
			return nil, fmt.Errorf("insert comment: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("insert comment: %w", err)
	}

	created := *c
	created.ID = rec.ID
	return &created, nil
}

func (r *CommentRepository) ListByPost(ctx context.Context, postID uint64) ([]domain.Comment, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var recs []commentRecord
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	out := make([]domain.Comment, len(recs))
	for i := range recs {
		out[i] = recs[i].toDomain()
	}
	return out, nil
}
