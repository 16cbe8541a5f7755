package activity

import (
	"context"
	"log"

	"github.com/google/uuid"

	"recipebox/internal/domain"
	"recipebox/internal/repository"
)

// FriendGate supplies the accepted-friend set for feed assembly.
type FriendGate interface {
	FriendIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

// Service compiles the append-only activity feed. Record is called by the
// other modules as a side effect of their writes; rows are never updated.
type Service struct {
	events  *repository.ActivityRepository
	friends FriendGate
}

func NewService(events *repository.ActivityRepository, friends FriendGate) *Service {
	return &Service{events: events, friends: friends}
}

func (s *Service) Record(ctx context.Context, event domain.ActivityEvent) {
	if err := s.events.Insert(ctx, &event); err != nil {
		// the domain write already committed; losing a feed entry is not
		// worth failing the request over
		log.Printf("activity_record_failed type=%s actor=%s error=%q", event.Type, event.ActorID, err)
	}
}

// List returns the viewer's own events plus events by accepted friends,
// newest first.
func (s *Service) List(ctx context.Context, viewerID uuid.UUID, page, limit int) ([]domain.ActivityEvent, int64, error) {
	friendIDs, err := s.friends.FriendIDs(ctx, viewerID)
	if err != nil {
		return nil, 0, err
	}
	actorIDs := append([]uuid.UUID{viewerID}, friendIDs...)
	return s.events.ListByActors(ctx, actorIDs, page, limit)
}
