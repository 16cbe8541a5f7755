package recipe

import (
	"fmt"

	"recipebox/internal/domain"
)

var (
	ErrEmptyTitle          = fmt.Errorf("%w: a title or a catalogue link is required", domain.ErrValidation)
	ErrEmptyEffectiveTitle = fmt.Errorf("%w: cannot publish a recipe without a title", domain.ErrValidation)
	ErrBadVisibility       = fmt.Errorf("%w: unknown visibility", domain.ErrValidation)
	ErrEmptyTagName        = fmt.Errorf("%w: tag name is required", domain.ErrValidation)
	ErrNotOwner            = fmt.Errorf("%w: only the recipe owner may do this", domain.ErrForbidden)
	ErrHidden              = fmt.Errorf("%w: recipe is not visible to you", domain.ErrForbidden)
	ErrNotFound            = fmt.Errorf("%w: recipe not found", domain.ErrNotFound)
	ErrCatalogueNotFound   = fmt.Errorf("%w: catalogue recipe not found", domain.ErrNotFound)
	ErrTagNotFound         = fmt.Errorf("%w: tag not found", domain.ErrNotFound)
	ErrAlreadyTagged       = fmt.Errorf("%w: recipe already has this tag", domain.ErrConflict)
)
