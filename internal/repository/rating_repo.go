package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"recipebox/internal/domain"
)

// RatingRepository serves the read side of ratings. The write path (upsert,
// delete, aggregate recompute) lives in the rating service because it needs
// its own locking transaction.
type RatingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

func (r *RatingRepository) ListForCatalogue(ctx context.Context, catalogueID uuid.UUID) ([]domain.Rating, error) {
	var ratings []domain.Rating
	err := r.db.WithContext(ctx).
		Where("catalogue_recipe_id = ?", catalogueID).
		Order("created_at desc").
		Find(&ratings).Error
	return ratings, err
}

func (r *RatingRepository) ListForOwned(ctx context.Context, ownedID uuid.UUID) ([]domain.Rating, error) {
	var ratings []domain.Rating
	err := r.db.WithContext(ctx).
		Where("owned_recipe_id = ?", ownedID).
		Order("created_at desc").
		Find(&ratings).Error
	return ratings, err
}

func (r *RatingRepository) ListForCatalogues(ctx context.Context, ids []uuid.UUID) ([]domain.Rating, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var ratings []domain.Rating
	err := r.db.WithContext(ctx).
		Where("catalogue_recipe_id IN ?", ids).
		Find(&ratings).Error
	return ratings, err
}

func (r *RatingRepository) ListForOwnedRecipes(ctx context.Context, ids []uuid.UUID) ([]domain.Rating, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var ratings []domain.Rating
	err := r.db.WithContext(ctx).
		Where("owned_recipe_id IN ?", ids).
		Find(&ratings).Error
	return ratings, err
}
