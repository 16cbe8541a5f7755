package feed

import (
	"fmt"

	"recipebox/internal/domain"
)

var (
	ErrNotScopeMember = fmt.Errorf("%w: not a member of every scope collection", domain.ErrForbidden)
	ErrEmptyScope     = fmt.Errorf("%w: at least one collection id is required", domain.ErrValidation)
	ErrBadSort        = fmt.Errorf("%w: unknown sort key", domain.ErrValidation)
)
