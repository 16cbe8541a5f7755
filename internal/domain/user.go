package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a member of the household. ShareID is a fixed-length public
// handle other users can look up; it never changes after creation.
type User struct {
	ID               uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Email            string    `json:"email" gorm:"not null;uniqueIndex"`
	PasswordHash     string    `json:"-" gorm:"not null"`
	DisplayName      string    `json:"display_name" gorm:"not null"`
	ShareID          string    `json:"share_id" gorm:"size:10;not null;uniqueIndex"`
	IsProfilePublic  bool      `json:"is_profile_public" gorm:"not null;default:false"`
	Bio              string    `json:"bio,omitempty"`
	FavoriteCuisines []string  `json:"favorite_cuisines,omitempty" gorm:"serializer:json"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }

func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
