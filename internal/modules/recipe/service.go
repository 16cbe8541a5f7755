package recipe

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"recipebox/internal/domain"
	"recipebox/internal/repository"
)

// FieldPatch carries optional field changes. Nil pointers (and nil slices)
// mean "leave the override as it is".
type FieldPatch struct {
	Title           *string
	Description     *string
	Ingredients     []domain.Ingredient
	Instructions    []string
	ImageURLs       []string
	Notes           *string
	PrepTimeMinutes *int
	CookTimeMinutes *int
	Servings        *int
	Cuisine         *string
}

// CreateInput creates a standalone recipe, a linked one (CatalogueRecipeID
// set, Fork false) or an independent fork (Fork true).
type CreateInput struct {
	CatalogueRecipeID *uuid.UUID
	Fork              bool
	Visibility        *domain.Visibility
	Fields            FieldPatch
}

// RecipeViewGate decides whether a viewer may see another user's recipe.
type RecipeViewGate interface {
	CanView(ctx context.Context, viewerID uuid.UUID, recipe *domain.OwnedRecipe) (bool, error)
}

type ActivityRecorder interface {
	Record(ctx context.Context, event domain.ActivityEvent)
}

// Service is the ownership ledger: it owns every transition between a private
// user copy and a shared catalogue entry.
type Service struct {
	db       *gorm.DB
	recipes  *repository.RecipeRepository
	view     RecipeViewGate
	activity ActivityRecorder
}

func NewService(db *gorm.DB, recipes *repository.RecipeRepository, view RecipeViewGate, activity ActivityRecorder) *Service {
	return &Service{db: db, recipes: recipes, view: view, activity: activity}
}

func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, in CreateInput) (*domain.OwnedRecipe, error) {
	if in.Visibility != nil && !in.Visibility.Valid() {
		return nil, ErrBadVisibility
	}

	rec := &domain.OwnedRecipe{
		OwnerID:    ownerID,
		Visibility: domain.VisibilityPrivate,
	}
	if in.Visibility != nil {
		rec.Visibility = *in.Visibility
	}
	applyPatch(rec, in.Fields)

	switch {
	case in.CatalogueRecipeID != nil:
		catalogue, err := s.recipes.GetCatalogueByID(ctx, *in.CatalogueRecipeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCatalogueNotFound
			}
			return nil, err
		}
		if in.Fork {
			// one-time copy: materialize the catalogue fields as overrides
			// and stay unlinked
			materialize(rec, rec.Effective(catalogue))
		} else {
			// linked: no copy, fields resolve lazily at read time
			rec.CatalogueRecipeID = &catalogue.ID
		}
	case rec.Title == nil || strings.TrimSpace(*rec.Title) == "":
		return nil, ErrEmptyTitle
	}

	if err := s.recipes.CreateOwned(ctx, rec); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, domain.NewRecipeCreated(ownerID, rec.ID, rec.Effective(nil).Title, in.Fork))
	return rec, nil
}

// Get returns the recipe with its read-time effective projection, gated by
// the visibility resolver for non-owners.
func (s *Service) Get(ctx context.Context, viewerID, recipeID uuid.UUID) (*domain.OwnedRecipe, *domain.EffectiveRecipe, error) {
	rec, err := s.getOwned(ctx, recipeID)
	if err != nil {
		return nil, nil, err
	}

	if rec.OwnerID != viewerID {
		ok, err := s.view.CanView(ctx, viewerID, rec)
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			return nil, nil, ErrHidden
		}
	}

	eff, err := s.effective(ctx, rec)
	if err != nil {
		return nil, nil, err
	}
	return rec, eff, nil
}

func (s *Service) ListMine(ctx context.Context, ownerID uuid.UUID, includeArchived bool, page, limit int) ([]domain.OwnedRecipe, int64, error) {
	return s.recipes.ListOwnedByOwner(ctx, ownerID, includeArchived, page, limit)
}

// Update merges the patch into local overrides. The linked catalogue entry is
// never touched.
func (s *Service) Update(ctx context.Context, actorID, recipeID uuid.UUID, patch FieldPatch, visibility *domain.Visibility) (*domain.OwnedRecipe, error) {
	if visibility != nil && !visibility.Valid() {
		return nil, ErrBadVisibility
	}

	rec, err := s.getOwnedFor(ctx, actorID, recipeID)
	if err != nil {
		return nil, err
	}

	applyPatch(rec, patch)
	if visibility != nil {
		rec.Visibility = *visibility
	}
	if !rec.Linked() {
		if rec.Title == nil || strings.TrimSpace(*rec.Title) == "" {
			return nil, ErrEmptyTitle
		}
	}

	if err := s.recipes.SaveOwned(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Detach converts a linked recipe into an independent one: the current
// effective fields are written as overrides and the link is cleared.
// Idempotent when already unlinked.
func (s *Service) Detach(ctx context.Context, actorID, recipeID uuid.UUID) (*domain.OwnedRecipe, error) {
	rec, err := s.getOwnedFor(ctx, actorID, recipeID)
	if err != nil {
		return nil, err
	}
	if !rec.Linked() {
		return rec, nil
	}

	eff, err := s.effective(ctx, rec)
	if err != nil {
		return nil, err
	}
	materialize(rec, *eff)
	rec.CatalogueRecipeID = nil

	if err := s.recipes.SaveOwned(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Publish promotes the recipe's effective content into the shared catalogue.
// When the recipe already links to an entry that was published from it, the
// entry is updated in place; otherwise a new entry is created. Link and
// back-link are written in the same transaction.
func (s *Service) Publish(ctx context.Context, actorID, recipeID uuid.UUID) (*domain.CatalogueRecipe, error) {
	rec, err := s.getOwnedFor(ctx, actorID, recipeID)
	if err != nil {
		return nil, err
	}

	eff, err := s.effective(ctx, rec)
	if err != nil {
		return nil, err
	}
	// the "Untitled" display fallback does not count as a publishable title
	rawTitle := ""
	switch {
	case rec.Title != nil:
		rawTitle = *rec.Title
	case rec.Linked():
		rawTitle = eff.Title
	}
	if strings.TrimSpace(rawTitle) == "" {
		return nil, ErrEmptyEffectiveTitle
	}

	var catalogue *domain.CatalogueRecipe
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if rec.Linked() {
			var existing domain.CatalogueRecipe
			err := tx.Where("id = ?", *rec.CatalogueRecipeID).First(&existing).Error
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if err == nil && existing.PublishedFromOwnedRecipeID != nil && *existing.PublishedFromOwnedRecipeID == rec.ID {
				fillCatalogue(&existing, *eff)
				catalogue = &existing
				return tx.Save(&existing).Error
			}
		}

		catalogue = &domain.CatalogueRecipe{
			IsPublic:                   true,
			CreatorID:                  &rec.OwnerID,
			PublishedFromOwnedRecipeID: &rec.ID,
		}
		fillCatalogue(catalogue, *eff)
		if err := tx.Create(catalogue).Error; err != nil {
			return err
		}

		rec.CatalogueRecipeID = &catalogue.ID
		return tx.Save(rec).Error
	})
	if err != nil {
		return nil, err
	}

	s.activity.Record(ctx, domain.NewRecipePublished(actorID, rec.ID, catalogue.ID, catalogue.Title))
	return catalogue, nil
}

func (s *Service) Archive(ctx context.Context, actorID, recipeID uuid.UUID) (*domain.OwnedRecipe, error) {
	rec, err := s.getOwnedFor(ctx, actorID, recipeID)
	if err != nil {
		return nil, err
	}
	if !rec.IsArchived {
		now := time.Now().UTC()
		rec.IsArchived = true
		rec.ArchivedAt = &now
		if err := s.recipes.SaveOwned(ctx, rec); err != nil {
			return nil, err
		}
		s.activity.Record(ctx, domain.NewRecipeArchived(actorID, rec.ID))
	}
	return rec, nil
}

func (s *Service) Restore(ctx context.Context, actorID, recipeID uuid.UUID) (*domain.OwnedRecipe, error) {
	rec, err := s.getOwnedFor(ctx, actorID, recipeID)
	if err != nil {
		return nil, err
	}
	if rec.IsArchived {
		rec.IsArchived = false
		rec.ArchivedAt = nil
		if err := s.recipes.SaveOwned(ctx, rec); err != nil {
			return nil, err
		}
	}
	return rec, nil
}

// Delete hard-deletes the recipe and cascades to its ratings, collection
// links and tag links in one transaction.
func (s *Service) Delete(ctx context.Context, actorID, recipeID uuid.UUID) error {
	rec, err := s.getOwnedFor(ctx, actorID, recipeID)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("owned_recipe_id = ?", rec.ID).Delete(&domain.Rating{}).Error; err != nil {
			return err
		}
		if err := tx.Where("owned_recipe_id = ?", rec.ID).Delete(&domain.RecipeCollectionLink{}).Error; err != nil {
			return err
		}
		if err := tx.Where("owned_recipe_id = ?", rec.ID).Delete(&domain.RecipeTagLink{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", rec.ID).Delete(&domain.OwnedRecipe{}).Error
	})
}

func (s *Service) getOwned(ctx context.Context, recipeID uuid.UUID) (*domain.OwnedRecipe, error) {
	rec, err := s.recipes.GetOwnedByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

func (s *Service) getOwnedFor(ctx context.Context, actorID, recipeID uuid.UUID) (*domain.OwnedRecipe, error) {
	rec, err := s.getOwned(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if rec.OwnerID != actorID {
		return nil, ErrNotOwner
	}
	return rec, nil
}

func (s *Service) effective(ctx context.Context, rec *domain.OwnedRecipe) (*domain.EffectiveRecipe, error) {
	var catalogue *domain.CatalogueRecipe
	if rec.Linked() {
		var err error
		catalogue, err = s.recipes.GetCatalogueByID(ctx, *rec.CatalogueRecipeID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	eff := rec.Effective(catalogue)
	return &eff, nil
}

func applyPatch(rec *domain.OwnedRecipe, patch FieldPatch) {
	if patch.Title != nil {
		rec.Title = patch.Title
	}
	if patch.Description != nil {
		rec.Description = patch.Description
	}
	if patch.Ingredients != nil {
		rec.Ingredients = patch.Ingredients
	}
	if patch.Instructions != nil {
		rec.Instructions = patch.Instructions
	}
	if patch.ImageURLs != nil {
		rec.ImageURLs = patch.ImageURLs
	}
	if patch.Notes != nil {
		rec.Notes = *patch.Notes
	}
	if patch.PrepTimeMinutes != nil {
		rec.PrepTimeMinutes = patch.PrepTimeMinutes
	}
	if patch.CookTimeMinutes != nil {
		rec.CookTimeMinutes = patch.CookTimeMinutes
	}
	if patch.Servings != nil {
		rec.Servings = patch.Servings
	}
	if patch.Cuisine != nil {
		rec.Cuisine = patch.Cuisine
	}
}

// materialize writes an effective projection back as local overrides.
func materialize(rec *domain.OwnedRecipe, eff domain.EffectiveRecipe) {
	title := eff.Title
	rec.Title = &title
	desc := eff.Description
	rec.Description = &desc
	rec.Ingredients = eff.Ingredients
	rec.Instructions = eff.Instructions
	rec.ImageURLs = eff.ImageURLs
	rec.Notes = eff.Notes
	prep, cook, servings := eff.PrepTimeMinutes, eff.CookTimeMinutes, eff.Servings
	rec.PrepTimeMinutes = &prep
	rec.CookTimeMinutes = &cook
	rec.Servings = &servings
	cuisine := eff.Cuisine
	rec.Cuisine = &cuisine
}

func fillCatalogue(c *domain.CatalogueRecipe, eff domain.EffectiveRecipe) {
	c.Title = eff.Title
	c.Description = eff.Description
	c.Ingredients = eff.Ingredients
	c.Instructions = eff.Instructions
	c.ImageURLs = eff.ImageURLs
	c.PrepTimeMinutes = eff.PrepTimeMinutes
	c.CookTimeMinutes = eff.CookTimeMinutes
	c.Servings = eff.Servings
	c.Cuisine = eff.Cuisine
	c.Nutrition = eff.Nutrition
}
