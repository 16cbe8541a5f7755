package recipe

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"recipebox/internal/domain"
	"recipebox/internal/repository"
)

// Tags are owner-scoped: names are unique per owner and only ever attach to
// that owner's recipes.

func (s *Service) AttachTag(ctx context.Context, actorID, recipeID uuid.UUID, name string) (*domain.RecipeTag, error) {
	name = normalizeTag(name)
	if name == "" {
		return nil, ErrEmptyTagName
	}

	if _, err := s.getOwnedFor(ctx, actorID, recipeID); err != nil {
		return nil, err
	}

	var tag domain.RecipeTag
	err := s.db.WithContext(ctx).
		Where("owner_id = ? AND name = ?", actorID, name).
		First(&tag).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		tag = domain.RecipeTag{OwnerID: actorID, Name: name}
		err = s.db.WithContext(ctx).Create(&tag).Error
	}
	if err != nil {
		return nil, err
	}

	link := domain.RecipeTagLink{TagID: tag.ID, OwnedRecipeID: recipeID}
	if err := s.db.WithContext(ctx).Create(&link).Error; err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrAlreadyTagged
		}
		return nil, err
	}
	return &tag, nil
}

func (s *Service) DetachTag(ctx context.Context, actorID, recipeID uuid.UUID, name string) error {
	name = normalizeTag(name)
	if name == "" {
		return ErrEmptyTagName
	}

	if _, err := s.getOwnedFor(ctx, actorID, recipeID); err != nil {
		return err
	}

	var tag domain.RecipeTag
	err := s.db.WithContext(ctx).
		Where("owner_id = ? AND name = ?", actorID, name).
		First(&tag).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTagNotFound
		}
		return err
	}

	result := s.db.WithContext(ctx).
		Where("tag_id = ? AND owned_recipe_id = ?", tag.ID, recipeID).
		Delete(&domain.RecipeTagLink{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTagNotFound
	}
	return nil
}

func (s *Service) ListTags(ctx context.Context, ownerID uuid.UUID) ([]domain.RecipeTag, error) {
	var tags []domain.RecipeTag
	err := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("name asc").
		Find(&tags).Error
	return tags, err
}

func (s *Service) ListByTag(ctx context.Context, ownerID uuid.UUID, name string) ([]domain.OwnedRecipe, error) {
	name = normalizeTag(name)
	if name == "" {
		return nil, ErrEmptyTagName
	}

	var recipes []domain.OwnedRecipe
	err := s.db.WithContext(ctx).
		Joins("JOIN recipe_tag_links ON recipe_tag_links.owned_recipe_id = owned_recipes.id").
		Joins("JOIN recipe_tags ON recipe_tags.id = recipe_tag_links.tag_id").
		Where("recipe_tags.owner_id = ? AND recipe_tags.name = ? AND owned_recipes.is_archived = ?", ownerID, name, false).
		Order("owned_recipes.created_at desc").
		Find(&recipes).Error
	return recipes, err
}

func normalizeTag(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
