package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"recipebox/internal/domain"
)

type CollectionRepository struct {
	db *gorm.DB
}

func NewCollectionRepository(db *gorm.DB) *CollectionRepository {
	return &CollectionRepository{db: db}
}

func (r *CollectionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Collection, error) {
	var col domain.Collection
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&col).Error; err != nil {
		return nil, err
	}
	return &col, nil
}

func (r *CollectionRepository) IsMember(ctx context.Context, collectionID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.CollectionMember{}).
		Where("collection_id = ? AND user_id = ?", collectionID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *CollectionRepository) ListMembers(ctx context.Context, collectionID uuid.UUID) ([]domain.CollectionMember, error) {
	var members []domain.CollectionMember
	err := r.db.WithContext(ctx).
		Where("collection_id = ?", collectionID).
		Order("created_at asc").
		Find(&members).Error
	return members, err
}

// MemberIDs returns the distinct user ids belonging to any of the given
// collections.
func (r *CollectionRepository) MemberIDs(ctx context.Context, collectionIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(collectionIDs) == 0 {
		return nil, nil
	}
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&domain.CollectionMember{}).
		Where("collection_id IN ?", collectionIDs).
		Distinct("user_id").
		Pluck("user_id", &ids).Error
	return ids, err
}

// ShareCollection reports whether two users are members of at least one
// common collection.
func (r *CollectionRepository) ShareCollection(ctx context.Context, userA, userB uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("collection_members AS a").
		Joins("JOIN collection_members AS b ON a.collection_id = b.collection_id").
		Where("a.user_id = ? AND b.user_id = ?", userA, userB).
		Count(&count).Error
	return count > 0, err
}

func (r *CollectionRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Collection, error) {
	var cols []domain.Collection
	err := r.db.WithContext(ctx).
		Joins("JOIN collection_members ON collection_members.collection_id = collections.id").
		Where("collection_members.user_id = ?", userID).
		Order("collections.created_at asc").
		Find(&cols).Error
	return cols, err
}

func (r *CollectionRepository) ListRecipeLinks(ctx context.Context, collectionID uuid.UUID) ([]domain.RecipeCollectionLink, error) {
	var links []domain.RecipeCollectionLink
	err := r.db.WithContext(ctx).
		Where("collection_id = ?", collectionID).
		Order("created_at asc").
		Find(&links).Error
	return links, err
}
