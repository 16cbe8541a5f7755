package rating

import (
	"fmt"

	"recipebox/internal/domain"
)

var (
	ErrScoreOutOfRange = fmt.Errorf("%w: score must be between 0 and 10", domain.ErrValidation)
	ErrBadTarget       = fmt.Errorf("%w: exactly one rating target must be given", domain.ErrValidation)
	ErrTargetNotFound  = fmt.Errorf("%w: rating target not found", domain.ErrNotFound)
	ErrRatingNotFound  = fmt.Errorf("%w: rating not found", domain.ErrNotFound)
	ErrTargetHidden    = fmt.Errorf("%w: rating target is not visible to you", domain.ErrForbidden)
)
