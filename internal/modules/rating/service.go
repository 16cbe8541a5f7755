package rating

import (
	"context"
	"errors"
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"recipebox/internal/domain"
	"recipebox/internal/repository"
)

// Target names exactly one rated entity.
type Target struct {
	CatalogueID *uuid.UUID
	OwnedID     *uuid.UUID
}

func (t Target) valid() bool {
	return (t.CatalogueID != nil) != (t.OwnedID != nil)
}

// RecipeViewGate decides whether the rater may see an owned recipe at all.
type RecipeViewGate interface {
	CanView(ctx context.Context, viewerID uuid.UUID, recipe *domain.OwnedRecipe) (bool, error)
}

type ActivityRecorder interface {
	Record(ctx context.Context, event domain.ActivityEvent)
}

// Service maintains the derived average/count columns. Every write locks the
// target row and recomputes the aggregate from the full rating set, so
// concurrent writers on the same target serialize while different targets
// proceed independently, and the stored average never drifts from the rows.
type Service struct {
	db       *gorm.DB
	recipes  *repository.RecipeRepository
	ratings  *repository.RatingRepository
	view     RecipeViewGate
	activity ActivityRecorder
}

func NewService(db *gorm.DB, recipes *repository.RecipeRepository, ratings *repository.RatingRepository, view RecipeViewGate, activity ActivityRecorder) *Service {
	return &Service{db: db, recipes: recipes, ratings: ratings, view: view, activity: activity}
}

// Rate upserts the (target, rater) row and recomputes the aggregate. Rating a
// linked owned recipe resolves to its catalogue entry, so household ratings of
// the same shared recipe aggregate on the shared row.
func (s *Service) Rate(ctx context.Context, raterID uuid.UUID, target Target, score int, comment string) (*domain.Rating, error) {
	if score < 0 || score > 10 {
		return nil, ErrScoreOutOfRange
	}

	resolved, err := s.resolve(ctx, raterID, target)
	if err != nil {
		return nil, err
	}

	var row domain.Rating
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockTarget(tx, resolved); err != nil {
			return err
		}

		err := targetScope(tx, resolved).
			Where("rater_id = ?", raterID).
			First(&row).Error
		switch {
		case err == nil:
			row.Score = score
			row.Comment = comment
			if err := tx.Save(&row).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			row = domain.Rating{
				CatalogueRecipeID: resolved.CatalogueID,
				OwnedRecipeID:     resolved.OwnedID,
				RaterID:           raterID,
				Score:             score,
				Comment:           comment,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		default:
			return err
		}

		return recompute(tx, resolved)
	})
	if err != nil {
		return nil, err
	}

	id, targetType := resolved.describe()
	s.activity.Record(ctx, domain.NewRecipeRated(raterID, id, targetType, score))
	return &row, nil
}

// Unrate deletes the rater's row and recomputes; an empty set yields 0/0.
func (s *Service) Unrate(ctx context.Context, raterID uuid.UUID, target Target) error {
	resolved, err := s.resolve(ctx, raterID, target)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockTarget(tx, resolved); err != nil {
			return err
		}

		result := targetScope(tx, resolved).
			Where("rater_id = ?", raterID).
			Delete(&domain.Rating{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrRatingNotFound
		}

		return recompute(tx, resolved)
	})
	if err != nil {
		return err
	}

	id, targetType := resolved.describe()
	s.activity.Record(ctx, domain.NewRatingRemoved(raterID, id, targetType))
	return nil
}

// ListForTarget returns the rating rows for display, gated by visibility for
// owned targets.
func (s *Service) ListForTarget(ctx context.Context, viewerID uuid.UUID, target Target) ([]domain.Rating, error) {
	resolved, err := s.resolve(ctx, viewerID, target)
	if err != nil {
		return nil, err
	}
	if resolved.CatalogueID != nil {
		return s.ratings.ListForCatalogue(ctx, *resolved.CatalogueID)
	}
	return s.ratings.ListForOwned(ctx, *resolved.OwnedID)
}

// resolve validates the target, applies the linked-recipe promotion and the
// visibility gate.
func (s *Service) resolve(ctx context.Context, raterID uuid.UUID, target Target) (Target, error) {
	if !target.valid() {
		return Target{}, ErrBadTarget
	}

	if target.OwnedID != nil {
		owned, err := s.recipes.GetOwnedByID(ctx, *target.OwnedID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return Target{}, ErrTargetNotFound
			}
			return Target{}, err
		}
		ok, err := s.view.CanView(ctx, raterID, owned)
		if err != nil {
			return Target{}, err
		}
		if !ok {
			return Target{}, ErrTargetHidden
		}
		if owned.Linked() {
			return Target{CatalogueID: owned.CatalogueRecipeID}, nil
		}
		return Target{OwnedID: &owned.ID}, nil
	}

	if _, err := s.recipes.GetCatalogueByID(ctx, *target.CatalogueID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Target{}, ErrTargetNotFound
		}
		return Target{}, err
	}
	return target, nil
}

func (t Target) describe() (uuid.UUID, domain.ActivityTargetType) {
	if t.CatalogueID != nil {
		return *t.CatalogueID, domain.ActivityTargetCatalogueRecipe
	}
	return *t.OwnedID, domain.ActivityTargetOwnedRecipe
}

func targetScope(tx *gorm.DB, t Target) *gorm.DB {
	if t.CatalogueID != nil {
		return tx.Where("catalogue_recipe_id = ?", *t.CatalogueID)
	}
	return tx.Where("owned_recipe_id = ?", *t.OwnedID)
}

func lockTarget(tx *gorm.DB, t Target) error {
	locked := tx.Clauses(clause.Locking{Strength: "UPDATE"})
	if t.CatalogueID != nil {
		var rec domain.CatalogueRecipe
		if err := locked.Where("id = ?", *t.CatalogueID).First(&rec).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTargetNotFound
			}
			return err
		}
		return nil
	}
	var rec domain.OwnedRecipe
	if err := locked.Where("id = ?", *t.OwnedID).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTargetNotFound
		}
		return err
	}
	return nil
}

// recompute derives average and count from the full rating set rather than
// keeping a running sum.
func recompute(tx *gorm.DB, t Target) error {
	type agg struct {
		Count int64
		Sum   int64
	}
	var a agg
	err := targetScope(tx.Model(&domain.Rating{}), t).
		Select("COUNT(*) AS count, COALESCE(SUM(score), 0) AS sum").
		Scan(&a).Error
	if err != nil {
		return err
	}

	average := 0.0
	if a.Count > 0 {
		// two decimal places, ties away from zero
		average = math.Round(float64(a.Sum)*100/float64(a.Count)) / 100
	}

	if t.CatalogueID != nil {
		return tx.Model(&domain.CatalogueRecipe{}).
			Where("id = ?", *t.CatalogueID).
			Updates(map[string]any{"average_rating": average, "rating_count": a.Count}).Error
	}
	return tx.Model(&domain.OwnedRecipe{}).
		Where("id = ?", *t.OwnedID).
		Updates(map[string]any{"average_rating": average, "rating_count": a.Count}).Error
}
