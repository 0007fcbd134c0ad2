package mysql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/socialweb/social-api/internal/core/domain"
)

// FriendshipRepository implements ports.FriendshipRepository.
type FriendshipRepository struct {
	db *gorm.DB
}

func NewFriendshipRepository(db *gorm.DB) *FriendshipRepository {
	return &FriendshipRepository{db: db}
}

func (r *FriendshipRepository) Create(ctx context.Context, f *domain.Friendship) (*domain.Friendship, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	key := domain.PairKey(f.Requester.ID, f.Addressee.ID)
	rec := friendshipRecord{
		RequesterID: f.Requester.ID,
		AddresseeID: f.Addressee.ID,
		Status:      string(f.Status),
		PendingKey:  &key,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&rec).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, domain.ErrDuplicateRequest
		}
		if isMySQLError(err, errNoReferencedRow) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("insert friendship: %w", err)
	}

	created := *f
	created.ID = rec.ID
	return &created, nil
}

func (r *FriendshipRepository) FindByID(ctx context.Context, id uint64) (*domain.Friendship, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var rec friendshipRecord
	if err := r.withParticipants(ctx).First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrFriendshipNotFound
		}
		return nil, fmt.Errorf("find friendship: %w", err)
	}
	f := rec.toDomain()
	return &f, nil
}

func (r *FriendshipRepository) FindBetween(ctx context.Context, a, b uint64) ([]domain.Friendship, error) {
	return r.list(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where(
			"(requester_id = ? AND addressee_id = ?) OR (requester_id = ? AND addressee_id = ?)",
			a, b, b, a,
		).Order("id ASC")
	})
}

// UpdateStatus is a compare-and-set on the current status.
func (r *FriendshipRepository) UpdateStatus(ctx context.Context, id uint64, from, to domain.FriendshipStatus) (*domain.Friendship, error) {
	updateCtx, cancel := withTimeout(ctx)
	defer cancel()

	res := r.db.WithContext(updateCtx).
		Model(&friendshipRecord{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(map[string]any{
			"status":      string(to),
			"pending_key": nil,
			"updated_at":  time.Now().UTC(),
		})
	if res.Error != nil {
		return nil, fmt.Errorf("update friendship %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		if _, err := r.FindByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, domain.ErrInvalidTransition
	}

	return r.FindByID(ctx, id)
}

func (r *FriendshipRepository) ListAccepted(ctx context.Context, userID uint64) ([]domain.Friendship, error) {
	return r.list(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where(
			"status = ? AND (requester_id = ? OR addressee_id = ?)",
			string(domain.FriendshipAccepted), userID, userID,
		).Order("id ASC")
	})
}

func (r *FriendshipRepository) ListPendingFor(ctx context.Context, userID uint64) ([]domain.Friendship, error) {
	return r.list(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where(
			"status = ? AND addressee_id = ?",
			string(domain.FriendshipPending), userID,
		).Order("created_at ASC").Order("id ASC")
	})
}

func (r *FriendshipRepository) withParticipants(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Requester").Preload("Addressee")
}

func (r *FriendshipRepository) list(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]domain.Friendship, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var recs []friendshipRecord
	if err := r.withParticipants(ctx).Scopes(scope).Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list friendships: %w", err)
	}
	out := make([]domain.Friendship, len(recs))
	for i := range recs {
		out[i] = recs[i].toDomain()
	}
	return out, nil
}
