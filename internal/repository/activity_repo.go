package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"recipebox/internal/domain"
)

type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Insert appends one event. Events are immutable; there is no update path.
func (r *ActivityRepository) Insert(ctx context.Context, event *domain.ActivityEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *ActivityRepository) ListByActors(ctx context.Context, actorIDs []uuid.UUID, page, limit int) ([]domain.ActivityEvent, int64, error) {
	if len(actorIDs) == 0 {
		return nil, 0, nil
	}
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	q := r.db.WithContext(ctx).Model(&domain.ActivityEvent{}).Where("actor_id IN ?", actorIDs)

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var events []domain.ActivityEvent
	err := q.
		Order("created_at desc, id asc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, 0, err
	}
	return events, count, nil
}
