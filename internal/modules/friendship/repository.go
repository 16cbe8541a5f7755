package friendship

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"recipebox/internal/domain"
)

// Repository handles persistence for friendship rows.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Friendship, error)
	GetPair(ctx context.Context, userA, userB uuid.UUID) (*domain.Friendship, error)
	Create(ctx context.Context, f *domain.Friendship) error
	Save(ctx context.Context, f *domain.Friendship) error
	Delete(ctx context.Context, id uuid.UUID) error
	ReplacePair(ctx context.Context, oldID uuid.UUID, f *domain.Friendship) error
	ListByStatus(ctx context.Context, userID uuid.UUID, status domain.FriendshipStatus) ([]domain.Friendship, error)
	ListPendingForTarget(ctx context.Context, targetID uuid.UUID) ([]domain.Friendship, error)
	AreFriends(ctx context.Context, userA, userB uuid.UUID) (bool, error)
	FriendIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Friendship, error) {
	var f domain.Friendship
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&f).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

// GetPair finds the row between two users regardless of direction. Returns
// gorm.ErrRecordNotFound when no row exists.
func (r *repository) GetPair(ctx context.Context, userA, userB uuid.UUID) (*domain.Friendship, error) {
	var f domain.Friendship
	err := r.db.WithContext(ctx).
		Where("(requester_id = ? AND target_id = ?) OR (requester_id = ? AND target_id = ?)",
			userA, userB, userB, userA).
		First(&f).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *repository) Create(ctx context.Context, f *domain.Friendship) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *repository) Save(ctx context.Context, f *domain.Friendship) error {
	return r.db.WithContext(ctx).Save(f).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Friendship{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ReplacePair atomically swaps a terminal (rejected) row for a fresh request
// so the pair-uniqueness check and the insert see the same state.
func (r *repository) ReplacePair(ctx context.Context, oldID uuid.UUID, f *domain.Friendship) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND status = ?", oldID, domain.FriendshipRejected).
			Delete(&domain.Friendship{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: rejected row vanished", domain.ErrConflict)
		}
		return tx.Create(f).Error
	})
}

func (r *repository) ListByStatus(ctx context.Context, userID uuid.UUID, status domain.FriendshipStatus) ([]domain.Friendship, error) {
	var rows []domain.Friendship
	err := r.db.WithContext(ctx).
		Where("(requester_id = ? OR target_id = ?) AND status = ?", userID, userID, status).
		Order("created_at desc").
		Find(&rows).Error
	return rows, err
}

func (r *repository) ListPendingForTarget(ctx context.Context, targetID uuid.UUID) ([]domain.Friendship, error) {
	var rows []domain.Friendship
	err := r.db.WithContext(ctx).
		Where("target_id = ? AND status = ?", targetID, domain.FriendshipPending).
		Order("created_at desc").
		Find(&rows).Error
	return rows, err
}

func (r *repository) AreFriends(ctx context.Context, userA, userB uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Friendship{}).
		Where("((requester_id = ? AND target_id = ?) OR (requester_id = ? AND target_id = ?)) AND status = ?",
			userA, userB, userB, userA, domain.FriendshipAccepted).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) FriendIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var rows []domain.Friendship
	err := r.db.WithContext(ctx).
		Where("(requester_id = ? OR target_id = ?) AND status = ?", userID, userID, domain.FriendshipAccepted).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(rows))
	for _, f := range rows {
		if f.RequesterID == userID {
			ids = append(ids, f.TargetID)
		} else {
			ids = append(ids, f.RequesterID)
		}
	}
	return ids, nil
}
