package recipe

import (
	"github.com/google/uuid"

	"recipebox/internal/domain"
)

type CreateRecipeRequest struct {
	CatalogueRecipeID *string `json:"catalogue_recipe_id,omitempty" validate:"omitempty,uuid"`
	Fork              bool    `json:"fork,omitempty"`
	Visibility        *string `json:"visibility,omitempty"`

	Title           *string             `json:"title,omitempty"`
	Description     *string             `json:"description,omitempty"`
	Ingredients     []domain.Ingredient `json:"ingredients,omitempty"`
	Instructions    []string            `json:"instructions,omitempty"`
	ImageURLs       []string            `json:"image_urls,omitempty"`
	Notes           *string             `json:"notes,omitempty"`
	PrepTimeMinutes *int                `json:"prep_time_minutes,omitempty"`
	CookTimeMinutes *int                `json:"cook_time_minutes,omitempty"`
	Servings        *int                `json:"servings,omitempty"`
	Cuisine         *string             `json:"cuisine,omitempty"`
}

type UpdateRecipeRequest struct {
	Visibility *string `json:"visibility,omitempty"`

	Title           *string             `json:"title,omitempty"`
	Description     *string             `json:"description,omitempty"`
	Ingredients     []domain.Ingredient `json:"ingredients,omitempty"`
	Instructions    []string            `json:"instructions,omitempty"`
	ImageURLs       []string            `json:"image_urls,omitempty"`
	Notes           *string             `json:"notes,omitempty"`
	PrepTimeMinutes *int                `json:"prep_time_minutes,omitempty"`
	CookTimeMinutes *int                `json:"cook_time_minutes,omitempty"`
	Servings        *int                `json:"servings,omitempty"`
	Cuisine         *string             `json:"cuisine,omitempty"`
}

type tagRequest struct {
	Name string `json:"name" validate:"required"`
}

// RecipeResponse pairs the stored row with its read-time projection.
type RecipeResponse struct {
	Recipe    *domain.OwnedRecipe     `json:"recipe"`
	Effective *domain.EffectiveRecipe `json:"effective"`
}

func (r CreateRecipeRequest) toInput() (CreateInput, error) {
	in := CreateInput{
		Fork: r.Fork,
		Fields: FieldPatch{
			Title:           r.Title,
			Description:     r.Description,
			Ingredients:     r.Ingredients,
			Instructions:    r.Instructions,
			ImageURLs:       r.ImageURLs,
			Notes:           r.Notes,
			PrepTimeMinutes: r.PrepTimeMinutes,
			CookTimeMinutes: r.CookTimeMinutes,
			Servings:        r.Servings,
			Cuisine:         r.Cuisine,
		},
	}
	if r.CatalogueRecipeID != nil {
		id, err := uuid.Parse(*r.CatalogueRecipeID)
		if err != nil {
			return CreateInput{}, err
		}
		in.CatalogueRecipeID = &id
	}
	if r.Visibility != nil {
		v := domain.Visibility(*r.Visibility)
		in.Visibility = &v
	}
	return in, nil
}

func (r UpdateRecipeRequest) toPatch() (FieldPatch, *domain.Visibility) {
	patch := FieldPatch{
		Title:           r.Title,
		Description:     r.Description,
		Ingredients:     r.Ingredients,
		Instructions:    r.Instructions,
		ImageURLs:       r.ImageURLs,
		Notes:           r.Notes,
		PrepTimeMinutes: r.PrepTimeMinutes,
		CookTimeMinutes: r.CookTimeMinutes,
		Servings:        r.Servings,
		Cuisine:         r.Cuisine,
	}
	var vis *domain.Visibility
	if r.Visibility != nil {
		v := domain.Visibility(*r.Visibility)
		vis = &v
	}
	return patch, vis
}
