package friendship

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"recipebox/internal/domain"
	sharedrepo "recipebox/internal/repository"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:friendship_test_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{DriverName: "sqlite", DSN: dsn}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	if err := db.AutoMigrate(&domain.Friendship{}); err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}
	return db
}

func newTestService(t *testing.T, db *gorm.DB) *Service {
	t.Helper()
	return NewService(NewRepository(db), nil)
}

func TestSendRequest(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	a, b := uuid.New(), uuid.New()

	if _, err := svc.SendRequest(ctx, a, a, ""); !errors.Is(err, ErrSelfFriendship) {
		t.Errorf("self request error = %v, want ErrSelfFriendship", err)
	}

	req, err := svc.SendRequest(ctx, a, b, "hi")
	if err != nil {
		t.Fatalf("send request: %v", err)
	}
	if req.Status != domain.FriendshipPending {
		t.Errorf("status = %s, want pending", req.Status)
	}

	// duplicates are rejected in either direction
	if _, err := svc.SendRequest(ctx, a, b, ""); !errors.Is(err, ErrPairExists) {
		t.Errorf("duplicate error = %v, want ErrPairExists", err)
	}
	if _, err := svc.SendRequest(ctx, b, a, ""); !errors.Is(err, ErrPairExists) {
		t.Errorf("reverse duplicate error = %v, want ErrPairExists", err)
	}
}

func TestAcceptOnlyByTarget(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	a, b := uuid.New(), uuid.New()
	req, err := svc.SendRequest(ctx, a, b, "")
	if err != nil {
		t.Fatalf("send request: %v", err)
	}

	if _, err := svc.Accept(ctx, a, req.ID); !errors.Is(err, ErrNotRequestTarget) {
		t.Errorf("requester accept error = %v, want ErrNotRequestTarget", err)
	}

	f, err := svc.Accept(ctx, b, req.ID)
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if f.Status != domain.FriendshipAccepted {
		t.Errorf("status = %s, want accepted", f.Status)
	}

	ok, err := svc.AreFriends(ctx, a, b)
	if err != nil || !ok {
		t.Errorf("AreFriends = %v, %v, want true", ok, err)
	}
	ok, _ = svc.AreFriends(ctx, b, a)
	if !ok {
		t.Error("friendship should be symmetric")
	}

	if _, err := svc.Accept(ctx, b, req.ID); !errors.Is(err, ErrNotPending) {
		t.Errorf("re-accept error = %v, want ErrNotPending", err)
	}
}

func TestRejectAllowsNewRequest(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	a, b := uuid.New(), uuid.New()
	req, err := svc.SendRequest(ctx, a, b, "")
	if err != nil {
		t.Fatalf("send request: %v", err)
	}
	if _, err := svc.Reject(ctx, b, req.ID); err != nil {
		t.Fatalf("reject: %v", err)
	}

	ok, _ := svc.AreFriends(ctx, a, b)
	if ok {
		t.Error("rejected pair should not be friends")
	}

	req2, err := svc.SendRequest(ctx, a, b, "second try")
	if err != nil {
		t.Fatalf("re-request after reject: %v", err)
	}
	if req2.Status != domain.FriendshipPending {
		t.Errorf("status = %s, want pending", req2.Status)
	}

	// the old rejected row is gone, exactly one row per pair
	var count int64
	db.Model(&domain.Friendship{}).Count(&count)
	if count != 1 {
		t.Errorf("friendship rows = %d, want 1", count)
	}
}

func TestRemoveDeletesRow(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	a, b, c := uuid.New(), uuid.New(), uuid.New()
	req, _ := svc.SendRequest(ctx, a, b, "")
	if _, err := svc.Accept(ctx, b, req.ID); err != nil {
		t.Fatalf("accept: %v", err)
	}

	if err := svc.Remove(ctx, c, req.ID); !errors.Is(err, ErrNotParty) {
		t.Errorf("outsider remove error = %v, want ErrNotParty", err)
	}
	if err := svc.Remove(ctx, a, req.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}

	ok, _ := svc.AreFriends(ctx, a, b)
	if ok {
		t.Error("removed pair should not be friends")
	}

	// either side may start over
	if _, err := svc.SendRequest(ctx, b, a, ""); err != nil {
		t.Errorf("re-request after remove: %v", err)
	}
}

func TestBlockAndUnblock(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	a, b := uuid.New(), uuid.New()
	req, _ := svc.SendRequest(ctx, a, b, "")
	if _, err := svc.Accept(ctx, b, req.ID); err != nil {
		t.Fatalf("accept: %v", err)
	}

	if err := svc.Block(ctx, b, a); err != nil {
		t.Fatalf("block: %v", err)
	}
	ok, _ := svc.AreFriends(ctx, a, b)
	if ok {
		t.Error("blocked pair should not be friends")
	}

	// blocked is absorbing for the other side
	if _, err := svc.SendRequest(ctx, a, b, ""); !errors.Is(err, ErrPairExists) {
		t.Errorf("request to blocker error = %v, want ErrPairExists", err)
	}
	if err := svc.Unblock(ctx, a, b); !errors.Is(err, ErrNotBlocker) {
		t.Errorf("non-blocker unblock error = %v, want ErrNotBlocker", err)
	}

	if err := svc.Unblock(ctx, b, a); err != nil {
		t.Fatalf("unblock: %v", err)
	}
	if _, err := svc.SendRequest(ctx, a, b, ""); err != nil {
		t.Errorf("request after unblock: %v", err)
	}
}

func TestFriendIDs(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	a, b, c := uuid.New(), uuid.New(), uuid.New()
	for _, other := range []uuid.UUID{b, c} {
		req, err := svc.SendRequest(ctx, a, other, "")
		if err != nil {
			t.Fatalf("send request: %v", err)
		}
		if _, err := svc.Accept(ctx, other, req.ID); err != nil {
			t.Fatalf("accept: %v", err)
		}
	}

	ids, err := svc.FriendIDs(ctx, a)
	if err != nil {
		t.Fatalf("friend ids: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("friend ids = %d, want 2", len(ids))
	}
	seen := map[uuid.UUID]bool{ids[0]: true, ids[1]: true}
	if !seen[b] || !seen[c] {
		t.Errorf("friend ids = %v, want %v and %v", ids, b, c)
	}
}

func TestPairIndexCatchesRacingRequests(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewRepository(db)

	a, b := uuid.New(), uuid.New()

	// two requests racing past the pair lookup insert from opposite
	// directions; the normalized pair index must reject the second
	if err := repo.Create(ctx, &domain.Friendship{RequesterID: a, TargetID: b, Status: domain.FriendshipPending}); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	err := repo.Create(ctx, &domain.Friendship{RequesterID: b, TargetID: a, Status: domain.FriendshipPending})
	if !sharedrepo.IsUniqueViolation(err) {
		t.Fatalf("reverse insert error = %v, want unique violation", err)
	}

	var count int64
	if err := db.Model(&domain.Friendship{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("row count = %d, want 1", count)
	}
}

func TestReplacePairMissingRowIsConflict(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewRepository(db)

	a, b := uuid.New(), uuid.New()
	req := &domain.Friendship{RequesterID: a, TargetID: b, Status: domain.FriendshipPending}

	err := repo.ReplacePair(ctx, uuid.New(), req)
	if !errors.Is(err, domain.ErrConflict) {
		t.Errorf("error = %v, want ErrConflict", err)
	}
}
