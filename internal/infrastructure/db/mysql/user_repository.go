package mysql

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/socialweb/social-api/internal/core/domain"
)

// UserRepository implements ports.UserRepository.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rec := userRecord{
		Username:     user.Username,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return rec.toDomain(), nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var rec userRecord
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&rec).Error; err != nil {
		return nil, userLookupError(err)
	}
	return rec.toDomain(), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint64) (*domain.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var rec userRecord
	if err := r.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		return nil, userLookupError(err)
	}
	return rec.toDomain(), nil
}

func (r *UserRepository) FindByIDs(ctx context.Context, ids []uint64) ([]domain.User, error) {
	if len(ids) == 0 {
		return []domain.User{}, nil
	}
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var recs []userRecord
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id ASC").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	return toUsers(recs), nil
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var recs []userRecord
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return toUsers(recs), nil
}

func toUsers(recs []userRecord) []domain.User {
	out := make([]domain.User, len(recs))
	for i := range recs {
		out[i] = *recs[i].toDomain()
	}
	return out
}

func userLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrUserNotFound
	}
	return fmt.Errorf("find user: %w", err)
}
