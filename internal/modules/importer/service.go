package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"recipebox/internal/domain"
	"recipebox/internal/repository"
)

var (
	ErrMissingSource = fmt.Errorf("%w: source and source_id are required", domain.ErrValidation)
	ErrEmptyTitle    = fmt.Errorf("%w: title must not be empty", domain.ErrValidation)
)

// Entry is one catalogue record from an external source.
type Entry struct {
	Source          string              `json:"source" validate:"required"`
	SourceID        string              `json:"source_id" validate:"required"`
	Title           string              `json:"title" validate:"required"`
	Description     string              `json:"description"`
	Ingredients     []domain.Ingredient `json:"ingredients"`
	Instructions    []string            `json:"instructions"`
	Nutrition       *domain.Nutrition   `json:"nutrition"`
	ImageURLs       []string            `json:"image_urls"`
	PrepTimeMinutes int                 `json:"prep_time_minutes"`
	CookTimeMinutes int                 `json:"cook_time_minutes"`
	Servings        int                 `json:"servings"`
	Cuisine         string              `json:"cuisine"`
}

// Service upserts externally sourced catalogue entries, keyed on
// (source, source_id). It writes content columns only: the derived rating
// columns and any publish lineage belong to other services and survive
// re-imports untouched.
type Service struct {
	db      *gorm.DB
	recipes *repository.RecipeRepository
}

func NewService(db *gorm.DB, recipes *repository.RecipeRepository) *Service {
	return &Service{db: db, recipes: recipes}
}

// Upsert creates or refreshes one catalogue entry. Returns the stored row and
// whether it was newly created.
func (s *Service) Upsert(ctx context.Context, entry Entry) (*domain.CatalogueRecipe, bool, error) {
	source := strings.TrimSpace(entry.Source)
	sourceID := strings.TrimSpace(entry.SourceID)
	if source == "" || sourceID == "" {
		return nil, false, ErrMissingSource
	}
	if strings.TrimSpace(entry.Title) == "" {
		return nil, false, ErrEmptyTitle
	}

	existing, err := s.recipes.GetCatalogueBySource(ctx, source, sourceID)
	switch {
	case err == nil:
		applyEntry(existing, entry)
		if err := s.db.WithContext(ctx).Save(existing).Error; err != nil {
			return nil, false, err
		}
		return existing, false, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		rec := &domain.CatalogueRecipe{
			Source:   &source,
			SourceID: &sourceID,
			IsPublic: true,
		}
		applyEntry(rec, entry)
		if err := s.recipes.CreateCatalogue(ctx, rec); err != nil {
			return nil, false, err
		}
		return rec, true, nil
	default:
		return nil, false, err
	}
}

// UpsertBatch imports entries one by one and reports per-entry failures
// without aborting the batch.
func (s *Service) UpsertBatch(ctx context.Context, entries []Entry) (created, updated int, failures []BatchFailure) {
	for i, entry := range entries {
		_, isNew, err := s.Upsert(ctx, entry)
		switch {
		case err != nil:
			failures = append(failures, BatchFailure{Index: i, SourceID: entry.SourceID, Reason: err.Error()})
		case isNew:
			created++
		default:
			updated++
		}
	}
	return created, updated, failures
}

type BatchFailure struct {
	Index    int    `json:"index"`
	SourceID string `json:"source_id"`
	Reason   string `json:"reason"`
}

func applyEntry(rec *domain.CatalogueRecipe, entry Entry) {
	rec.Title = strings.TrimSpace(entry.Title)
	rec.Description = entry.Description
	rec.Ingredients = entry.Ingredients
	rec.Instructions = entry.Instructions
	rec.Nutrition = entry.Nutrition
	rec.ImageURLs = entry.ImageURLs
	rec.PrepTimeMinutes = entry.PrepTimeMinutes
	rec.CookTimeMinutes = entry.CookTimeMinutes
	rec.Servings = entry.Servings
	rec.Cuisine = entry.Cuisine
}
