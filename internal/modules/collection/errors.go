package collection

import (
	"fmt"

	"recipebox/internal/domain"
)

var (
	ErrEmptyName         = fmt.Errorf("%w: collection name is required", domain.ErrValidation)
	ErrNotFound          = fmt.Errorf("%w: collection not found", domain.ErrNotFound)
	ErrNotMember         = fmt.Errorf("%w: not a member of this collection", domain.ErrForbidden)
	ErrNotOwner          = fmt.Errorf("%w: only the collection owner may do this", domain.ErrForbidden)
	ErrNotRecipeOwner    = fmt.Errorf("%w: only the recipe owner may share it", domain.ErrForbidden)
	ErrDuplicateName     = fmt.Errorf("%w: you already have a collection with this name", domain.ErrConflict)
	ErrAlreadyMember     = fmt.Errorf("%w: user is already a member", domain.ErrConflict)
	ErrAlreadyLinked     = fmt.Errorf("%w: recipe is already in this collection", domain.ErrConflict)
	ErrCannotRemoveOwner = fmt.Errorf("%w: the owner cannot be removed", domain.ErrValidation)
	ErrLinkNotFound      = fmt.Errorf("%w: recipe is not in this collection", domain.ErrNotFound)
	ErrMemberNotFound    = fmt.Errorf("%w: member not found", domain.ErrNotFound)
	ErrRecipeNotFound    = fmt.Errorf("%w: recipe not found", domain.ErrNotFound)
	ErrUserNotFound      = fmt.Errorf("%w: user not found", domain.ErrNotFound)
)
