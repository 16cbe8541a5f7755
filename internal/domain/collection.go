package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CollectionRole is the role of a member inside a collection.
type CollectionRole string

const (
	CollectionRoleOwner  CollectionRole = "owner"
	CollectionRoleMember CollectionRole = "member"
)

// Collection is a named recipe grouping. The owner always has a member row
// with role=owner, created in the same transaction as the collection itself.
type Collection struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"name" gorm:"not null;uniqueIndex:idx_collection_owner_name"`
	OwnerID   uuid.UUID `json:"owner_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_collection_owner_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Owner *User `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
}

func (Collection) TableName() string { return "collections" }

func (c *Collection) BeforeCreate(_ *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type CollectionMember struct {
	ID           uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	CollectionID uuid.UUID      `json:"collection_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_collection_member"`
	UserID       uuid.UUID      `json:"user_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_collection_member"`
	Role         CollectionRole `json:"role" gorm:"size:16;not null;default:'member'"`
	InvitedBy    *uuid.UUID     `json:"invited_by,omitempty" gorm:"type:uuid"`
	CreatedAt    time.Time      `json:"created_at"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (CollectionMember) TableName() string { return "collection_members" }

func (m *CollectionMember) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// RecipeCollectionLink shares an owned recipe into a collection. A recipe may
// belong to many collections; the pair is unique.
type RecipeCollectionLink struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	CollectionID  uuid.UUID `json:"collection_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_collection_recipe"`
	OwnedRecipeID uuid.UUID `json:"owned_recipe_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_collection_recipe"`
	AddedBy       uuid.UUID `json:"added_by" gorm:"type:uuid;not null"`
	CreatedAt     time.Time `json:"created_at"`
}

func (RecipeCollectionLink) TableName() string { return "recipe_collection_links" }

func (l *RecipeCollectionLink) BeforeCreate(_ *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
