package friendship

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"recipebox/internal/domain"
	sharedrepo "recipebox/internal/repository"
)

// ActivityRecorder receives feed events for friendship writes.
type ActivityRecorder interface {
	Record(ctx context.Context, event domain.ActivityEvent)
}

// Service runs the pairwise friendship state machine:
//
//	none --SendRequest--> pending --Accept--> accepted --Remove--> none
//	                      pending --Reject--> rejected (re-request allowed)
//	any --Block--> blocked (absorbing until the blocker unblocks)
type Service struct {
	repo     Repository
	activity ActivityRecorder
}

func NewService(repo Repository, activity ActivityRecorder) *Service {
	return &Service{repo: repo, activity: activity}
}

// SetActivity breaks the construction cycle with the activity service, which
// itself needs this service as its friend gate. Call once during wiring.
func (s *Service) SetActivity(activity ActivityRecorder) {
	s.activity = activity
}

func (s *Service) record(ctx context.Context, event domain.ActivityEvent) {
	if s.activity != nil {
		s.activity.Record(ctx, event)
	}
}

func (s *Service) SendRequest(ctx context.Context, requesterID, targetID uuid.UUID, message string) (*domain.Friendship, error) {
	if requesterID == targetID {
		return nil, ErrSelfFriendship
	}

	req := &domain.Friendship{
		RequesterID: requesterID,
		TargetID:    targetID,
		Status:      domain.FriendshipPending,
		Message:     message,
	}

	existing, err := s.repo.GetPair(ctx, requesterID, targetID)
	switch {
	case err == nil:
		// a rejected row is terminal for the old request but does not block
		// a new one; anything else does
		if existing.Status != domain.FriendshipRejected {
			return nil, ErrPairExists
		}
		if err := s.repo.ReplacePair(ctx, existing.ID, req); err != nil {
			if sharedrepo.IsUniqueViolation(err) {
				return nil, ErrPairExists
			}
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		// the unordered-pair index catches requests racing past GetPair
		// from either direction
		if err := s.repo.Create(ctx, req); err != nil {
			if sharedrepo.IsUniqueViolation(err) {
				return nil, ErrPairExists
			}
			return nil, err
		}
	default:
		return nil, err
	}

	s.record(ctx, domain.NewFriendRequested(requesterID, targetID))
	return req, nil
}

func (s *Service) Accept(ctx context.Context, actorID, friendshipID uuid.UUID) (*domain.Friendship, error) {
	f, err := s.getPendingForTarget(ctx, actorID, friendshipID)
	if err != nil {
		return nil, err
	}

	f.Status = domain.FriendshipAccepted
	if err := s.repo.Save(ctx, f); err != nil {
		return nil, err
	}

	s.record(ctx, domain.NewFriendAccepted(actorID, f.RequesterID))
	return f, nil
}

func (s *Service) Reject(ctx context.Context, actorID, friendshipID uuid.UUID) (*domain.Friendship, error) {
	f, err := s.getPendingForTarget(ctx, actorID, friendshipID)
	if err != nil {
		return nil, err
	}

	f.Status = domain.FriendshipRejected
	if err := s.repo.Save(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// Remove ends an accepted friendship and deletes the row outright, so either
// side may send a new request later.
func (s *Service) Remove(ctx context.Context, actorID, friendshipID uuid.UUID) error {
	f, err := s.repo.GetByID(ctx, friendshipID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if !f.Involves(actorID) {
		return ErrNotParty
	}
	if f.Status != domain.FriendshipAccepted {
		return ErrNotAccepted
	}
	return s.repo.Delete(ctx, f.ID)
}

// Block moves the pair into the absorbing blocked state. The blocker is
// recorded as requester so Unblock can check who may lift it.
func (s *Service) Block(ctx context.Context, actorID, otherID uuid.UUID) error {
	if actorID == otherID {
		return ErrSelfFriendship
	}

	existing, err := s.repo.GetPair(ctx, actorID, otherID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.repo.Create(ctx, &domain.Friendship{
			RequesterID: actorID,
			TargetID:    otherID,
			Status:      domain.FriendshipBlocked,
		})
	}
	if err != nil {
		return err
	}

	existing.RequesterID = actorID
	existing.TargetID = otherID
	existing.Status = domain.FriendshipBlocked
	existing.Message = ""
	return s.repo.Save(ctx, existing)
}

func (s *Service) Unblock(ctx context.Context, actorID, otherID uuid.UUID) error {
	existing, err := s.repo.GetPair(ctx, actorID, otherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if existing.Status != domain.FriendshipBlocked {
		return ErrNotBlocked
	}
	if existing.RequesterID != actorID {
		return ErrNotBlocker
	}
	return s.repo.Delete(ctx, existing.ID)
}

func (s *Service) ListFriends(ctx context.Context, userID uuid.UUID) ([]domain.Friendship, error) {
	return s.repo.ListByStatus(ctx, userID, domain.FriendshipAccepted)
}

func (s *Service) ListPending(ctx context.Context, userID uuid.UUID) ([]domain.Friendship, error) {
	return s.repo.ListPendingForTarget(ctx, userID)
}

// AreFriends satisfies the visibility resolver's friendship gate.
func (s *Service) AreFriends(ctx context.Context, userA, userB uuid.UUID) (bool, error) {
	return s.repo.AreFriends(ctx, userA, userB)
}

// FriendIDs satisfies the activity feed's friend gate.
func (s *Service) FriendIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return s.repo.FriendIDs(ctx, userID)
}

func (s *Service) getPendingForTarget(ctx context.Context, actorID, friendshipID uuid.UUID) (*domain.Friendship, error) {
	f, err := s.repo.GetByID(ctx, friendshipID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if f.Status != domain.FriendshipPending {
		return nil, ErrNotPending
	}
	if f.TargetID != actorID {
		return nil, ErrNotRequestTarget
	}
	return f, nil
}
