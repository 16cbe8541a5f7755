package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"recipebox/internal/domain"
)

type RecipeRepository struct {
	db *gorm.DB
}

func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

func (r *RecipeRepository) CreateOwned(ctx context.Context, rec *domain.OwnedRecipe) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *RecipeRepository) GetOwnedByID(ctx context.Context, id uuid.UUID) (*domain.OwnedRecipe, error) {
	var rec domain.OwnedRecipe
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *RecipeRepository) SaveOwned(ctx context.Context, rec *domain.OwnedRecipe) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

// ListOwnedByOwner returns the owner's recipes, newest first. Archived rows
// are excluded unless asked for.
func (r *RecipeRepository) ListOwnedByOwner(ctx context.Context, ownerID uuid.UUID, includeArchived bool, page, limit int) ([]domain.OwnedRecipe, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	q := r.db.WithContext(ctx).Model(&domain.OwnedRecipe{}).Where("owner_id = ?", ownerID)
	if !includeArchived {
		q = q.Where("is_archived = ?", false)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var recipes []domain.OwnedRecipe
	err := q.
		Order("created_at desc, id asc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&recipes).Error
	if err != nil {
		return nil, 0, err
	}
	return recipes, count, nil
}

// ListOwnedByOwners returns non-archived recipes belonging to any of the
// given owners. archivedOwner, when non-nil, names the one owner whose
// archived rows are returned too. Used as the candidate set for
// cross-user feeds.
func (r *RecipeRepository) ListOwnedByOwners(ctx context.Context, ownerIDs []uuid.UUID, archivedOwner uuid.UUID) ([]domain.OwnedRecipe, error) {
	if len(ownerIDs) == 0 {
		return nil, nil
	}
	var recipes []domain.OwnedRecipe
	err := r.db.WithContext(ctx).
		Where("owner_id IN ? AND (is_archived = ? OR owner_id = ?)", ownerIDs, false, archivedOwner).
		Find(&recipes).Error
	return recipes, err
}

func (r *RecipeRepository) GetCatalogueByID(ctx context.Context, id uuid.UUID) (*domain.CatalogueRecipe, error) {
	var rec domain.CatalogueRecipe
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *RecipeRepository) GetCataloguesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.CatalogueRecipe, error) {
	out := make(map[uuid.UUID]*domain.CatalogueRecipe, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var recs []domain.CatalogueRecipe
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&recs).Error; err != nil {
		return nil, err
	}
	for i := range recs {
		out[recs[i].ID] = &recs[i]
	}
	return out, nil
}

func (r *RecipeRepository) GetCatalogueBySource(ctx context.Context, source, sourceID string) (*domain.CatalogueRecipe, error) {
	var rec domain.CatalogueRecipe
	err := r.db.WithContext(ctx).
		Where("source = ? AND source_id = ?", source, sourceID).
		First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *RecipeRepository) CreateCatalogue(ctx context.Context, rec *domain.CatalogueRecipe) error {
	return r.db.WithContext(ctx).Create(rec).Error
}
