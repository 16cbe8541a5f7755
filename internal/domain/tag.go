package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecipeTag is an owner-scoped tag name, unique per owner.
type RecipeTag struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	OwnerID   uuid.UUID `json:"owner_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_tag_owner_name"`
	Name      string    `json:"name" gorm:"size:64;not null;uniqueIndex:idx_tag_owner_name"`
	CreatedAt time.Time `json:"created_at"`
}

func (RecipeTag) TableName() string { return "recipe_tags" }

func (t *RecipeTag) BeforeCreate(_ *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

type RecipeTagLink struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	TagID         uuid.UUID `json:"tag_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_tag_recipe"`
	OwnedRecipeID uuid.UUID `json:"owned_recipe_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_tag_recipe"`
	CreatedAt     time.Time `json:"created_at"`
}

func (RecipeTagLink) TableName() string { return "recipe_tag_links" }

func (l *RecipeTagLink) BeforeCreate(_ *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
