package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Rating targets exactly one of CatalogueRecipeID or OwnedRecipeID; the other
// stays NULL, so each partial unique index enforces one rating per (target,
// rater) pair.
type Rating struct {
	ID                uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	CatalogueRecipeID *uuid.UUID `json:"catalogue_recipe_id,omitempty" gorm:"type:uuid;uniqueIndex:idx_rating_catalogue_rater"`
	OwnedRecipeID     *uuid.UUID `json:"owned_recipe_id,omitempty" gorm:"type:uuid;uniqueIndex:idx_rating_owned_rater"`
	RaterID           uuid.UUID  `json:"rater_id" gorm:"type:uuid;not null;uniqueIndex:idx_rating_catalogue_rater;uniqueIndex:idx_rating_owned_rater"`
	Score             int        `json:"score" gorm:"not null;check:score >= 0 AND score <= 10"`
	Comment           string     `json:"comment,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`

	Rater *User `json:"rater,omitempty" gorm:"foreignKey:RaterID"`
}

func (Rating) TableName() string { return "ratings" }

func (r *Rating) BeforeCreate(_ *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
