package auth

import (
	"errors"
	"fmt"

	"recipebox/internal/domain"
)

var (
	ErrEmailTaken = fmt.Errorf("%w: email already registered", domain.ErrConflict)

	// ErrInvalidCredentials deliberately stays outside the shared taxonomy:
	// the handler turns it into 401 without hinting which part was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
