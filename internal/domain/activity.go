package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ActivityType string

const (
	ActivityRecipeCreated           ActivityType = "recipe_created"
	ActivityRecipePublished         ActivityType = "recipe_published"
	ActivityRecipeArchived          ActivityType = "recipe_archived"
	ActivityRecipeRated             ActivityType = "recipe_rated"
	ActivityRatingRemoved           ActivityType = "rating_removed"
	ActivityFriendRequested         ActivityType = "friend_requested"
	ActivityFriendAccepted          ActivityType = "friend_accepted"
	ActivityCollectionCreated       ActivityType = "collection_created"
	ActivityCollectionMemberAdded   ActivityType = "collection_member_added"
	ActivityRecipeAddedToCollection ActivityType = "recipe_added_to_collection"
)

type ActivityTargetType string

const (
	ActivityTargetOwnedRecipe     ActivityTargetType = "owned_recipe"
	ActivityTargetCatalogueRecipe ActivityTargetType = "catalogue_recipe"
	ActivityTargetUser            ActivityTargetType = "user"
	ActivityTargetCollection      ActivityTargetType = "collection"
)

// ActivityEvent is an append-only denormalized log entry. Rows are written as
// a side effect of domain writes and never updated afterwards.
type ActivityEvent struct {
	ID         uuid.UUID          `json:"id" gorm:"type:uuid;primaryKey"`
	ActorID    uuid.UUID          `json:"actor_id" gorm:"type:uuid;not null;index"`
	Type       ActivityType       `json:"type" gorm:"size:40;not null"`
	TargetType ActivityTargetType `json:"target_type" gorm:"size:24;not null"`
	TargetID   uuid.UUID          `json:"target_id" gorm:"type:uuid;not null;index"`
	Metadata   map[string]any     `json:"metadata,omitempty" gorm:"serializer:json"`
	CreatedAt  time.Time          `json:"created_at" gorm:"index"`

	Actor *User `json:"actor,omitempty" gorm:"foreignKey:ActorID"`
}

func (ActivityEvent) TableName() string { return "activity_events" }

func (e *ActivityEvent) BeforeCreate(_ *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// The event constructors below are the closed set of shapes the services may
// emit; nothing else writes activity rows.

func NewRecipeCreated(actorID, recipeID uuid.UUID, title string, forked bool) ActivityEvent {
	return ActivityEvent{
		ActorID:    actorID,
		Type:       ActivityRecipeCreated,
		TargetType: ActivityTargetOwnedRecipe,
		TargetID:   recipeID,
		Metadata:   map[string]any{"title": title, "forked": forked},
	}
}

func NewRecipePublished(actorID, recipeID, catalogueID uuid.UUID, title string) ActivityEvent {
	return ActivityEvent{
		ActorID:    actorID,
		Type:       ActivityRecipePublished,
		TargetType: ActivityTargetCatalogueRecipe,
		TargetID:   catalogueID,
		Metadata:   map[string]any{"owned_recipe_id": recipeID.String(), "title": title},
	}
}

func NewRecipeArchived(actorID, recipeID uuid.UUID) ActivityEvent {
	return ActivityEvent{
		ActorID:    actorID,
		Type:       ActivityRecipeArchived,
		TargetType: ActivityTargetOwnedRecipe,
		TargetID:   recipeID,
	}
}

func NewRecipeRated(actorID, targetID uuid.UUID, targetType ActivityTargetType, score int) ActivityEvent {
	return ActivityEvent{
		ActorID:    actorID,
		Type:       ActivityRecipeRated,
		TargetType: targetType,
		TargetID:   targetID,
		Metadata:   map[string]any{"score": score},
	}
}

func NewRatingRemoved(actorID, targetID uuid.UUID, targetType ActivityTargetType) ActivityEvent {
	return ActivityEvent{
		ActorID:    actorID,
		Type:       ActivityRatingRemoved,
		TargetType: targetType,
		TargetID:   targetID,
	}
}

func NewFriendRequested(actorID, targetUserID uuid.UUID) ActivityEvent {
	return ActivityEvent{
		ActorID:    actorID,
		Type:       ActivityFriendRequested,
		TargetType: ActivityTargetUser,
		TargetID:   targetUserID,
	}
}

func NewFriendAccepted(actorID, requesterID uuid.UUID) ActivityEvent {
	return ActivityEvent{
		ActorID:    actorID,
		Type:       ActivityFriendAccepted,
		TargetType: ActivityTargetUser,
		TargetID:   requesterID,
	}
}

func NewCollectionCreated(actorID, collectionID uuid.UUID, name string) ActivityEvent {
	return ActivityEvent{
		ActorID:    actorID,
		Type:       ActivityCollectionCreated,
		TargetType: ActivityTargetCollection,
		TargetID:   collectionID,
		Metadata:   map[string]any{"name": name},
	}
}

func NewCollectionMemberAdded(actorID, collectionID, memberID uuid.UUID) ActivityEvent {
	return ActivityEvent{
		ActorID:    actorID,
		Type:       ActivityCollectionMemberAdded,
		TargetType: ActivityTargetCollection,
		TargetID:   collectionID,
		Metadata:   map[string]any{"member_id": memberID.String()},
	}
}

func NewRecipeAddedToCollection(actorID, collectionID, recipeID uuid.UUID) ActivityEvent {
	return ActivityEvent{
		ActorID:    actorID,
		Type:       ActivityRecipeAddedToCollection,
		TargetType: ActivityTargetCollection,
		TargetID:   collectionID,
		Metadata:   map[string]any{"owned_recipe_id": recipeID.String()},
	}
}
