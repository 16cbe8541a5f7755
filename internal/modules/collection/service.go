package collection

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"recipebox/internal/domain"
	"recipebox/internal/repository"
)

type ActivityRecorder interface {
	Record(ctx context.Context, event domain.ActivityEvent)
}

// Service manages named recipe groupings and their membership. Creation and
// deletion are transactional so a collection can never exist without its
// owner member row, and deleting one never leaves dangling links.
type Service struct {
	db          *gorm.DB
	collections *repository.CollectionRepository
	activity    ActivityRecorder
}

func NewService(db *gorm.DB, collections *repository.CollectionRepository, activity ActivityRecorder) *Service {
	return &Service{db: db, collections: collections, activity: activity}
}

func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, name string) (*domain.Collection, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	col := &domain.Collection{Name: name, OwnerID: ownerID}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(col).Error; err != nil {
			if repository.IsUniqueViolation(err) {
				return ErrDuplicateName
			}
			return err
		}
		member := &domain.CollectionMember{
			CollectionID: col.ID,
			UserID:       ownerID,
			Role:         domain.CollectionRoleOwner,
		}
		return tx.Create(member).Error
	})
	if err != nil {
		return nil, err
	}

	s.activity.Record(ctx, domain.NewCollectionCreated(ownerID, col.ID, col.Name))
	return col, nil
}

func (s *Service) Invite(ctx context.Context, collectionID, inviterID, inviteeID uuid.UUID) (*domain.CollectionMember, error) {
	if _, err := s.get(ctx, collectionID); err != nil {
		return nil, err
	}

	isMember, err := s.collections.IsMember(ctx, collectionID, inviterID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, ErrNotMember
	}

	var userCount int64
	if err := s.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", inviteeID).Count(&userCount).Error; err != nil {
		return nil, err
	}
	if userCount == 0 {
		return nil, ErrUserNotFound
	}

	member := &domain.CollectionMember{
		CollectionID: collectionID,
		UserID:       inviteeID,
		Role:         domain.CollectionRoleMember,
		InvitedBy:    &inviterID,
	}
	if err := s.db.WithContext(ctx).Create(member).Error; err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrAlreadyMember
		}
		return nil, err
	}

	s.activity.Record(ctx, domain.NewCollectionMemberAdded(inviterID, collectionID, inviteeID))
	return member, nil
}

func (s *Service) RemoveMember(ctx context.Context, collectionID, actorID, memberID uuid.UUID) error {
	col, err := s.get(ctx, collectionID)
	if err != nil {
		return err
	}
	if col.OwnerID != actorID {
		return ErrNotOwner
	}
	if memberID == col.OwnerID {
		return ErrCannotRemoveOwner
	}

	result := s.db.WithContext(ctx).
		Where("collection_id = ? AND user_id = ?", collectionID, memberID).
		Delete(&domain.CollectionMember{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMemberNotFound
	}
	return nil
}

// AddRecipe shares an owned recipe into a collection. The actor must be a
// member and must own the recipe: sharing someone else's recipe on their
// behalf is disallowed.
func (s *Service) AddRecipe(ctx context.Context, collectionID, recipeID, actorID uuid.UUID) (*domain.RecipeCollectionLink, error) {
	if _, err := s.get(ctx, collectionID); err != nil {
		return nil, err
	}

	isMember, err := s.collections.IsMember(ctx, collectionID, actorID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, ErrNotMember
	}

	var recipe domain.OwnedRecipe
	if err := s.db.WithContext(ctx).Where("id = ?", recipeID).First(&recipe).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	if recipe.OwnerID != actorID {
		return nil, ErrNotRecipeOwner
	}

	link := &domain.RecipeCollectionLink{
		CollectionID:  collectionID,
		OwnedRecipeID: recipeID,
		AddedBy:       actorID,
	}
	if err := s.db.WithContext(ctx).Create(link).Error; err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrAlreadyLinked
		}
		return nil, err
	}

	s.activity.Record(ctx, domain.NewRecipeAddedToCollection(actorID, collectionID, recipeID))
	return link, nil
}

func (s *Service) RemoveRecipe(ctx context.Context, collectionID, recipeID, actorID uuid.UUID) error {
	if _, err := s.get(ctx, collectionID); err != nil {
		return err
	}

	isMember, err := s.collections.IsMember(ctx, collectionID, actorID)
	if err != nil {
		return err
	}
	if !isMember {
		return ErrNotMember
	}

	var recipe domain.OwnedRecipe
	if err := s.db.WithContext(ctx).Where("id = ?", recipeID).First(&recipe).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRecipeNotFound
		}
		return err
	}
	if recipe.OwnerID != actorID {
		return ErrNotRecipeOwner
	}

	result := s.db.WithContext(ctx).
		Where("collection_id = ? AND owned_recipe_id = ?", collectionID, recipeID).
		Delete(&domain.RecipeCollectionLink{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLinkNotFound
	}
	return nil
}

// Delete removes the collection, its member rows and its recipe links in one
// transaction. Owned recipes themselves are untouched.
func (s *Service) Delete(ctx context.Context, collectionID, actorID uuid.UUID) error {
	col, err := s.get(ctx, collectionID)
	if err != nil {
		return err
	}
	if col.OwnerID != actorID {
		return ErrNotOwner
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("collection_id = ?", collectionID).Delete(&domain.RecipeCollectionLink{}).Error; err != nil {
			return err
		}
		if err := tx.Where("collection_id = ?", collectionID).Delete(&domain.CollectionMember{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", collectionID).Delete(&domain.Collection{}).Error
	})
}

func (s *Service) ListMine(ctx context.Context, userID uuid.UUID) ([]domain.Collection, error) {
	return s.collections.ListByUser(ctx, userID)
}

// ListRecipes returns the recipes shared into the collection, in the order
// they were added. Members only.
func (s *Service) ListRecipes(ctx context.Context, collectionID, viewerID uuid.UUID) ([]domain.OwnedRecipe, error) {
	if _, err := s.get(ctx, collectionID); err != nil {
		return nil, err
	}
	isMember, err := s.collections.IsMember(ctx, collectionID, viewerID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, ErrNotMember
	}

	links, err := s.collections.ListRecipeLinks(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(links))
	for _, l := range links {
		ids = append(ids, l.OwnedRecipeID)
	}
	var recipes []domain.OwnedRecipe
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&recipes).Error; err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]domain.OwnedRecipe, len(recipes))
	for _, rec := range recipes {
		byID[rec.ID] = rec
	}
	ordered := make([]domain.OwnedRecipe, 0, len(links))
	for _, l := range links {
		if rec, ok := byID[l.OwnedRecipeID]; ok {
			ordered = append(ordered, rec)
		}
	}
	return ordered, nil
}

func (s *Service) ListMembers(ctx context.Context, collectionID, viewerID uuid.UUID) ([]domain.CollectionMember, error) {
	if _, err := s.get(ctx, collectionID); err != nil {
		return nil, err
	}
	isMember, err := s.collections.IsMember(ctx, collectionID, viewerID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, ErrNotMember
	}
	return s.collections.ListMembers(ctx, collectionID)
}

func (s *Service) get(ctx context.Context, collectionID uuid.UUID) (*domain.Collection, error) {
	col, err := s.collections.GetByID(ctx, collectionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return col, nil
}
