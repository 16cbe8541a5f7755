package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Visibility controls which other users may see an owned recipe.
type Visibility string

const (
	VisibilityPrivate    Visibility = "private"
	VisibilityCollection Visibility = "collection"
	VisibilityFriends    Visibility = "friends"
	VisibilityPublic     Visibility = "public"
)

func (v Visibility) Valid() bool {
	switch v {
	case VisibilityPrivate, VisibilityCollection, VisibilityFriends, VisibilityPublic:
		return true
	}
	return false
}

// Ingredient is a single structured ingredient line.
type Ingredient struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity,omitempty"`
	Unit     string `json:"unit,omitempty"`
}

// Nutrition holds per-serving nutrition facts.
type Nutrition struct {
	Calories float64 `json:"calories,omitempty"`
	Protein  float64 `json:"protein,omitempty"`
	Carbs    float64 `json:"carbs,omitempty"`
	Fat      float64 `json:"fat,omitempty"`
}

// CatalogueRecipe is a shared catalogue entry, created either by a Publish
// or by the import collaborator. AverageRating and RatingCount are derived
// columns maintained exclusively by the rating service.
type CatalogueRecipe struct {
	ID              uuid.UUID    `json:"id" gorm:"type:uuid;primaryKey"`
	Title           string       `json:"title" gorm:"not null"`
	Description     string       `json:"description,omitempty"`
	Ingredients     []Ingredient `json:"ingredients,omitempty" gorm:"serializer:json"`
	Instructions    []string     `json:"instructions,omitempty" gorm:"serializer:json"`
	Nutrition       *Nutrition   `json:"nutrition,omitempty" gorm:"serializer:json"`
	ImageURLs       []string     `json:"image_urls,omitempty" gorm:"serializer:json"`
	PrepTimeMinutes int          `json:"prep_time_minutes,omitempty"`
	CookTimeMinutes int          `json:"cook_time_minutes,omitempty"`
	Servings        int          `json:"servings,omitempty"`
	Cuisine         string       `json:"cuisine,omitempty"`
	IsPublic        bool         `json:"is_public" gorm:"not null;default:true"`

	// Source and SourceID identify imported entries; unique together when set.
	Source   *string `json:"source,omitempty" gorm:"uniqueIndex:idx_catalogue_source"`
	SourceID *string `json:"source_id,omitempty" gorm:"uniqueIndex:idx_catalogue_source"`

	CreatorID                  *uuid.UUID `json:"creator_id,omitempty" gorm:"type:uuid"`
	PublishedFromOwnedRecipeID *uuid.UUID `json:"published_from_owned_recipe_id,omitempty" gorm:"type:uuid"`

	AverageRating float64 `json:"average_rating" gorm:"not null;default:0"`
	RatingCount   int     `json:"rating_count" gorm:"not null;default:0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (CatalogueRecipe) TableName() string { return "catalogue_recipes" }

func (r *CatalogueRecipe) BeforeCreate(_ *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// OwnedRecipe is a user's own record. Override fields are pointers: nil means
// "fall back to the linked catalogue entry"; a recipe is linked iff
// CatalogueRecipeID is set. OwnerID never changes after creation.
type OwnedRecipe struct {
	ID                uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	OwnerID           uuid.UUID  `json:"owner_id" gorm:"type:uuid;not null;index"`
	CatalogueRecipeID *uuid.UUID `json:"catalogue_recipe_id,omitempty" gorm:"type:uuid;index"`

	Title           *string      `json:"title,omitempty"`
	Description     *string      `json:"description,omitempty"`
	Ingredients     []Ingredient `json:"ingredients,omitempty" gorm:"serializer:json"`
	Instructions    []string     `json:"instructions,omitempty" gorm:"serializer:json"`
	ImageURLs       []string     `json:"image_urls,omitempty" gorm:"serializer:json"`
	Notes           string       `json:"notes,omitempty"`
	PrepTimeMinutes *int         `json:"prep_time_minutes,omitempty"`
	CookTimeMinutes *int         `json:"cook_time_minutes,omitempty"`
	Servings        *int         `json:"servings,omitempty"`
	Cuisine         *string      `json:"cuisine,omitempty"`

	Visibility Visibility `json:"visibility" gorm:"size:16;not null;default:'private'"`
	IsArchived bool       `json:"is_archived" gorm:"not null;default:false"`
	ArchivedAt *time.Time `json:"archived_at,omitempty"`

	AverageRating float64 `json:"average_rating" gorm:"not null;default:0"`
	RatingCount   int     `json:"rating_count" gorm:"not null;default:0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Owner     *User            `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Catalogue *CatalogueRecipe `json:"catalogue,omitempty" gorm:"foreignKey:CatalogueRecipeID"`
}

func (OwnedRecipe) TableName() string { return "owned_recipes" }

func (r *OwnedRecipe) BeforeCreate(_ *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (r *OwnedRecipe) Linked() bool { return r.CatalogueRecipeID != nil }

// EffectiveRecipe is the read-time projection of an owned recipe: local
// overrides where present, linked catalogue values otherwise. It is computed
// on every read and never stored.
type EffectiveRecipe struct {
	Title           string       `json:"title"`
	Description     string       `json:"description,omitempty"`
	Ingredients     []Ingredient `json:"ingredients,omitempty"`
	Instructions    []string     `json:"instructions,omitempty"`
	ImageURLs       []string     `json:"image_urls,omitempty"`
	Notes           string       `json:"notes,omitempty"`
	PrepTimeMinutes int          `json:"prep_time_minutes,omitempty"`
	CookTimeMinutes int          `json:"cook_time_minutes,omitempty"`
	Servings        int          `json:"servings,omitempty"`
	Cuisine         string       `json:"cuisine,omitempty"`
	Nutrition       *Nutrition   `json:"nutrition,omitempty"`
}

const untitledRecipe = "Untitled"

// Effective resolves the owned recipe against its linked catalogue entry.
// catalogue may be nil when the recipe is unlinked.
func (r *OwnedRecipe) Effective(catalogue *CatalogueRecipe) EffectiveRecipe {
	eff := EffectiveRecipe{
		Title:        untitledRecipe,
		Ingredients:  r.Ingredients,
		Instructions: r.Instructions,
		ImageURLs:    r.ImageURLs,
		Notes:        r.Notes,
	}
	if catalogue != nil {
		eff.Title = catalogue.Title
		eff.Description = catalogue.Description
		eff.PrepTimeMinutes = catalogue.PrepTimeMinutes
		eff.CookTimeMinutes = catalogue.CookTimeMinutes
		eff.Servings = catalogue.Servings
		eff.Cuisine = catalogue.Cuisine
		eff.Nutrition = catalogue.Nutrition
		if eff.Ingredients == nil {
			eff.Ingredients = catalogue.Ingredients
		}
		if eff.Instructions == nil {
			eff.Instructions = catalogue.Instructions
		}
		if eff.ImageURLs == nil {
			eff.ImageURLs = catalogue.ImageURLs
		}
	}
	if r.Title != nil {
		eff.Title = *r.Title
	}
	if r.Description != nil {
		eff.Description = *r.Description
	}
	if r.PrepTimeMinutes != nil {
		eff.PrepTimeMinutes = *r.PrepTimeMinutes
	}
	if r.CookTimeMinutes != nil {
		eff.CookTimeMinutes = *r.CookTimeMinutes
	}
	if r.Servings != nil {
		eff.Servings = *r.Servings
	}
	if r.Cuisine != nil {
		eff.Cuisine = *r.Cuisine
	}
	if eff.Title == "" {
		eff.Title = untitledRecipe
	}
	return eff
}
