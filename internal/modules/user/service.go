package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"recipebox/internal/domain"
	"recipebox/internal/repository"
)

var (
	ErrNotFound         = fmt.Errorf("%w: user", domain.ErrNotFound)
	ErrEmptyDisplayName = fmt.Errorf("%w: display name must not be empty", domain.ErrValidation)
	ErrBadShareID       = fmt.Errorf("%w: malformed share id", domain.ErrValidation)
)

type FriendChecker interface {
	AreFriends(ctx context.Context, a, b uuid.UUID) (bool, error)
}

// Service owns identity reads and profile writes. Email, password hash and
// share id are fixed at registration and never change here.
type Service struct {
	users   *repository.UserRepository
	friends FriendChecker
}

func NewService(users *repository.UserRepository, friends FriendChecker) *Service {
	return &Service{users: users, friends: friends}
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

// ProfilePatch lists the mutable profile fields; nil means unchanged.
type ProfilePatch struct {
	DisplayName      *string
	Bio              *string
	IsProfilePublic  *bool
	FavoriteCuisines []string
}

func (s *Service) UpdateProfile(ctx context.Context, id uuid.UUID, patch ProfilePatch) (*domain.User, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.DisplayName != nil {
		name := strings.TrimSpace(*patch.DisplayName)
		if name == "" {
			return nil, ErrEmptyDisplayName
		}
		u.DisplayName = name
	}
	if patch.Bio != nil {
		u.Bio = *patch.Bio
	}
	if patch.IsProfilePublic != nil {
		u.IsProfilePublic = *patch.IsProfilePublic
	}
	if patch.FavoriteCuisines != nil {
		u.FavoriteCuisines = patch.FavoriteCuisines
	}

	if err := s.users.UpdateProfile(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// PublicProfile is the cross-user view of an account. Private profiles reveal
// display name only, and then only to accepted friends.
type PublicProfile struct {
	ID               uuid.UUID `json:"id"`
	DisplayName      string    `json:"display_name"`
	ShareID          string    `json:"share_id"`
	Bio              string    `json:"bio,omitempty"`
	FavoriteCuisines []string  `json:"favorite_cuisines,omitempty"`
}

// LookupByShareID resolves a share handle for the friend-request flow.
// Private profiles expose display name and handle only unless the viewer is
// an accepted friend.
func (s *Service) LookupByShareID(ctx context.Context, viewerID uuid.UUID, shareID string) (*PublicProfile, error) {
	if len(strings.TrimSpace(shareID)) != 10 {
		return nil, ErrBadShareID
	}

	u, err := s.users.GetByShareID(ctx, shareID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	profile := &PublicProfile{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		ShareID:     u.ShareID,
	}
	if u.ID == viewerID || u.IsProfilePublic {
		profile.Bio = u.Bio
		profile.FavoriteCuisines = u.FavoriteCuisines
		return profile, nil
	}

	friends, err := s.friends.AreFriends(ctx, viewerID, u.ID)
	if err != nil {
		return nil, err
	}
	if friends {
		profile.Bio = u.Bio
		profile.FavoriteCuisines = u.FavoriteCuisines
	}
	return profile, nil
}
