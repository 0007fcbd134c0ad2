package mysql

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/socialweb/social-api/internal/core/domain"
)

// PostRepository implements ports.PostRepository.
type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(ctx context.Context, p *domain.Post) (*domain.Post, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rec := postRecord{
		Content:   p.Content,
		CreatedAt: p.CreatedAt,
		AuthorID:  p.Author.ID,
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&rec).Error; err != nil {
		if isMySQLError(err, errNoReferencedRow) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("insert post: %w", err)
	}

	created := *p
	created.ID = rec.ID
	return &created, nil
}

func (r *PostRepository) FindByID(ctx context.Context, id uint64) (*domain.Post, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var rec postRecord
	if err := r.db.WithContext(ctx).Preload("Author").First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	p := rec.toDomain()
	return &p, nil
}

func (r *PostRepository) List(ctx context.Context, page domain.Page) ([]domain.Post, error) {
	return r.newestFirst(ctx, page, func(db *gorm.DB) *gorm.DB { return db })
}

func (r *PostRepository) ListByAuthor(ctx context.Context, authorID uint64, page domain.Page) ([]domain.Post, error) {
	return r.newestFirst(ctx, page, func(db *gorm.DB) *gorm.DB {
		return db.Where("author_id = ?", authorID)
	})
}

func (r *PostRepository) newestFirst(ctx context.Context, page domain.Page, scope func(*gorm.DB) *gorm.DB) ([]domain.Post, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var recs []postRecord
	err := r.db.WithContext(ctx).
		Preload("Author").
		Scopes(scope, paginate(page)).
		Order("created_at DESC").
		Order("id DESC").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	out := make([]domain.Post, len(recs))
	for i := range recs {
		out[i] = recs[i].toDomain()
	}
	return out, nil
}

// paginate applies page. MySQL has no OFFSET without LIMIT, so an offset
// alone is paired with the largest limit.
func paginate(page domain.Page) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch {
		case page.Limit > 0:
			db = db.Limit(page.Limit)
		case page.Offset > 0:
			db = db.Limit(math.MaxInt)
		}
		if page.Offset > 0 {
			db = db.Offset(page.Offset)
		}
		return db
	}
}
