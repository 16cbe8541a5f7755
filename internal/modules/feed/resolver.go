package feed

import (
	"context"

	"github.com/google/uuid"

	"recipebox/internal/domain"
)

type FriendChecker interface {
	AreFriends(ctx context.Context, a, b uuid.UUID) (bool, error)
	FriendIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type CollectionChecker interface {
	ShareCollection(ctx context.Context, userA, userB uuid.UUID) (bool, error)
	IsMember(ctx context.Context, collectionID, userID uuid.UUID) (bool, error)
	MemberIDs(ctx context.Context, collectionIDs []uuid.UUID) ([]uuid.UUID, error)
}

// Resolver answers "may this viewer see that recipe". Every read path that
// crosses an ownership boundary goes through CanView; nothing else in the
// codebase interprets the visibility column.
type Resolver struct {
	friends     FriendChecker
	collections CollectionChecker
}

func NewResolver(friends FriendChecker, collections CollectionChecker) *Resolver {
	return &Resolver{friends: friends, collections: collections}
}

// CanView reports whether viewerID may read the recipe. The owner always may.
// Archived recipes are visible to the owner only, regardless of visibility.
func (r *Resolver) CanView(ctx context.Context, viewerID uuid.UUID, recipe *domain.OwnedRecipe) (bool, error) {
	if recipe == nil {
		return false, nil
	}
	if recipe.OwnerID == viewerID {
		return true, nil
	}
	if recipe.IsArchived {
		return false, nil
	}

	switch recipe.Visibility {
	case domain.VisibilityPublic:
		return true, nil
	case domain.VisibilityFriends:
		return r.friends.AreFriends(ctx, viewerID, recipe.OwnerID)
	case domain.VisibilityCollection:
		return r.collections.ShareCollection(ctx, viewerID, recipe.OwnerID)
	default:
		return false, nil
	}
}
