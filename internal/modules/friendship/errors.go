package friendship

import (
	"fmt"

	"recipebox/internal/domain"
)

var (
	ErrSelfFriendship   = fmt.Errorf("%w: cannot send a friend request to yourself", domain.ErrValidation)
	ErrPairExists       = fmt.Errorf("%w: a relationship already exists between these users", domain.ErrConflict)
	ErrNotRequestTarget = fmt.Errorf("%w: only the request target may respond", domain.ErrForbidden)
	ErrNotParty         = fmt.Errorf("%w: not a party to this friendship", domain.ErrForbidden)
	ErrNotPending       = fmt.Errorf("%w: request is not pending", domain.ErrValidation)
	ErrNotAccepted      = fmt.Errorf("%w: friendship is not accepted", domain.ErrValidation)
	ErrNotBlocked       = fmt.Errorf("%w: relationship is not blocked", domain.ErrValidation)
	ErrNotBlocker       = fmt.Errorf("%w: only the blocking user may unblock", domain.ErrForbidden)
	ErrNotFound         = fmt.Errorf("%w: friendship not found", domain.ErrNotFound)
)
