package domain

import "errors"

// Shared error taxonomy. Module errors wrap one of these sentinels with
// fmt.Errorf("%w: ...") so handlers can map them to HTTP via errors.Is.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrConflict   = errors.New("conflict")
)
