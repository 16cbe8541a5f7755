package activity

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"recipebox/internal/domain"
	"recipebox/internal/repository"
)

type friendStub struct {
	ids []uuid.UUID
}

func (f friendStub) FriendIDs(context.Context, uuid.UUID) ([]uuid.UUID, error) {
	return f.ids, nil
}

func newTestService(t *testing.T, friends []uuid.UUID) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:activity_test_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{DriverName: "sqlite", DSN: dsn}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	if err := db.AutoMigrate(&domain.ActivityEvent{}); err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}
	return NewService(repository.NewActivityRepository(db), friendStub{ids: friends})
}

func TestListIncludesSelfAndFriendsOnly(t *testing.T) {
	ctx := context.Background()
	me, friend, stranger := uuid.New(), uuid.New(), uuid.New()
	svc := newTestService(t, []uuid.UUID{friend})

	svc.Record(ctx, domain.NewRecipeCreated(me, uuid.New(), "My Stew", false))
	svc.Record(ctx, domain.NewRecipeCreated(friend, uuid.New(), "Friend Pie", false))
	svc.Record(ctx, domain.NewRecipeCreated(stranger, uuid.New(), "Stranger Cake", false))

	events, total, err := svc.List(ctx, me, 1, 20)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 2 || len(events) != 2 {
		t.Fatalf("events = %d (total %d), want 2", len(events), total)
	}
	for _, e := range events {
		if e.ActorID == stranger {
			t.Error("stranger event leaked into the feed")
		}
	}
}

func TestListNewestFirst(t *testing.T) {
	ctx := context.Background()
	me := uuid.New()
	svc := newTestService(t, nil)

	first := domain.NewRecipeCreated(me, uuid.New(), "First", false)
	second := domain.NewRecipeCreated(me, uuid.New(), "Second", false)
	svc.Record(ctx, first)
	svc.Record(ctx, second)

	events, _, err := svc.List(ctx, me, 1, 20)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}
	if events[0].CreatedAt.Before(events[1].CreatedAt) {
		t.Error("events not newest first")
	}
}
