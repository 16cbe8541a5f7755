package feed

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
	"recipebox/internal/modules/friendship"
	"recipebox/internal/repository"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:feed_test_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{DriverName: "sqlite", DSN: dsn}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	err = db.AutoMigrate(
		&domain.User{}, &domain.CatalogueRecipe{}, &domain.OwnedRecipe{},
		&domain.Rating{}, &domain.Friendship{},
		&domain.Collection{}, &domain.CollectionMember{}, &domain.RecipeCollectionLink{},
	)
	if err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}
	return db
}

type fixture struct {
	db       *gorm.DB
	service  *Service
	resolver *Resolver
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := openTestDB(t)
	collectionRepo := repository.NewCollectionRepository(db)
	friends := friendship.NewService(friendship.NewRepository(db), nil)
	resolver := NewResolver(friends, collectionRepo)
	service := NewService(repository.NewRecipeRepository(db), repository.NewRatingRepository(db), collectionRepo, resolver)
	return &fixture{db: db, service: service, resolver: resolver}
}

func (f *fixture) collection(t *testing.T, ownerID uuid.UUID, memberIDs ...uuid.UUID) uuid.UUID {
	t.Helper()
	col := &domain.Collection{Name: fmt.Sprintf("col-%s", uuid.New()), OwnerID: ownerID}
	if err := f.db.Create(col).Error; err != nil {
		t.Fatalf("create collection: %v", err)
	}
	rows := []domain.CollectionMember{{CollectionID: col.ID, UserID: ownerID, Role: domain.CollectionRoleOwner}}
	for _, id := range memberIDs {
		rows = append(rows, domain.CollectionMember{CollectionID: col.ID, UserID: id, Role: domain.CollectionRoleMember})
	}
	for i := range rows {
		if err := f.db.Create(&rows[i]).Error; err != nil {
			t.Fatalf("create member: %v", err)
		}
	}
	return col.ID
}

func (f *fixture) recipe(t *testing.T, ownerID uuid.UUID, title string, vis domain.Visibility) *domain.OwnedRecipe {
	t.Helper()
	rec := &domain.OwnedRecipe{OwnerID: ownerID, Title: &title, Visibility: vis}
	if err := f.db.Create(rec).Error; err != nil {
		t.Fatalf("create recipe: %v", err)
	}
	return rec
}

func (f *fixture) rate(t *testing.T, rec *domain.OwnedRecipe, raterID uuid.UUID, score int) {
	t.Helper()
	rt := &domain.Rating{OwnedRecipeID: &rec.ID, RaterID: raterID, Score: score}
	if err := f.db.Create(rt).Error; err != nil {
		t.Fatalf("create rating: %v", err)
	}
}

func TestCombinedFeedRequiresMembership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	owner, outsider := uuid.New(), uuid.New()
	colID := f.collection(t, owner)

	_, _, err := f.service.CombinedFeed(ctx, outsider, []uuid.UUID{colID}, Filters{}, SortNewest, 1, 20)
	if !errors.Is(err, ErrNotScopeMember) {
		t.Errorf("outsider error = %v, want ErrNotScopeMember", err)
	}

	_, _, err = f.service.CombinedFeed(ctx, owner, nil, Filters{}, SortNewest, 1, 20)
	if !errors.Is(err, ErrEmptyScope) {
		t.Errorf("empty scope error = %v, want ErrEmptyScope", err)
	}
}

func TestCombinedFeedNeverLeaksPrivateRecipes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	alice, ben := uuid.New(), uuid.New()
	colID := f.collection(t, alice, ben)

	f.recipe(t, ben, "Public Stew", domain.VisibilityPublic)
	f.recipe(t, ben, "Collection Pie", domain.VisibilityCollection)
	f.recipe(t, ben, "Secret Brownies", domain.VisibilityPrivate)
	mine := f.recipe(t, alice, "My Own Private Soup", domain.VisibilityPrivate)

	entries, total, err := f.service.CombinedFeed(ctx, alice, []uuid.UUID{colID}, Filters{}, SortName, 1, 20)
	if err != nil {
		t.Fatalf("combined feed: %v", err)
	}
	if total != 3 {
		t.Fatalf("total = %d, want 3", total)
	}
	for _, e := range entries {
		if e.Recipe.Visibility == domain.VisibilityPrivate && e.Recipe.ID != mine.ID {
			t.Errorf("private recipe %q leaked", e.Effective.Title)
		}
	}
}

func TestCombinedFeedDedupesLinkedRecipes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	alice, ben := uuid.New(), uuid.New()
	colID := f.collection(t, alice, ben)

	catalogue := &domain.CatalogueRecipe{Title: "Shared Lasagna", AverageRating: 8.5, RatingCount: 4}
	if err := f.db.Create(catalogue).Error; err != nil {
		t.Fatalf("create catalogue: %v", err)
	}
	for _, owner := range []uuid.UUID{alice, ben} {
		rec := &domain.OwnedRecipe{OwnerID: owner, CatalogueRecipeID: &catalogue.ID, Visibility: domain.VisibilityPublic}
		if err := f.db.Create(rec).Error; err != nil {
			t.Fatalf("create linked recipe: %v", err)
		}
	}

	entries, total, err := f.service.CombinedFeed(ctx, alice, []uuid.UUID{colID}, Filters{}, SortNewest, 1, 20)
	if err != nil {
		t.Fatalf("combined feed: %v", err)
	}
	if total != 1 {
		t.Fatalf("total = %d, want 1 after dedupe", total)
	}
	if entries[0].Effective.Title != "Shared Lasagna" {
		t.Errorf("title = %q, want catalogue title", entries[0].Effective.Title)
	}
	if entries[0].AverageRating != 8.5 || entries[0].RatingCount != 4 {
		t.Errorf("aggregate = %v/%d, want catalogue aggregate 8.5/4", entries[0].AverageRating, entries[0].RatingCount)
	}
}

func TestCombinedFeedSortAndFilter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	alice := uuid.New()
	colID := f.collection(t, alice)

	a := f.recipe(t, alice, "Apple Pie", domain.VisibilityPrivate)
	b := f.recipe(t, alice, "Zucchini Bake", domain.VisibilityPrivate)
	f.db.Model(a).Updates(map[string]any{"average_rating": 4.0, "rating_count": 1})
	f.db.Model(b).Updates(map[string]any{"average_rating": 9.0, "rating_count": 3})

	entries, _, err := f.service.CombinedFeed(ctx, alice, []uuid.UUID{colID}, Filters{}, SortRating, 1, 20)
	if err != nil {
		t.Fatalf("combined feed: %v", err)
	}
	if entries[0].Effective.Title != "Zucchini Bake" {
		t.Errorf("top by rating = %q, want Zucchini Bake", entries[0].Effective.Title)
	}

	entries, _, err = f.service.CombinedFeed(ctx, alice, []uuid.UUID{colID}, Filters{}, SortName, 1, 20)
	if err != nil {
		t.Fatalf("combined feed: %v", err)
	}
	if entries[0].Effective.Title != "Apple Pie" {
		t.Errorf("top by name = %q, want Apple Pie", entries[0].Effective.Title)
	}

	entries, total, err := f.service.CombinedFeed(ctx, alice, []uuid.UUID{colID}, Filters{Query: "zucchini"}, SortNewest, 1, 20)
	if err != nil {
		t.Fatalf("combined feed: %v", err)
	}
	if total != 1 || entries[0].Effective.Title != "Zucchini Bake" {
		t.Errorf("query filter returned %d entries", total)
	}
}

func TestCommonFavorites(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	alice, ben, carla := uuid.New(), uuid.New(), uuid.New()
	colID := f.collection(t, alice, ben, carla)

	loved := f.recipe(t, alice, "Crowd Pleaser", domain.VisibilityCollection)
	f.rate(t, loved, alice, 9)
	f.rate(t, loved, ben, 8)
	f.rate(t, loved, carla, 10)
	f.db.Model(loved).Updates(map[string]any{"average_rating": 9.0, "rating_count": 3})

	niche := f.recipe(t, ben, "Acquired Taste", domain.VisibilityCollection)
	f.rate(t, niche, ben, 10)
	f.db.Model(niche).Updates(map[string]any{"average_rating": 10.0, "rating_count": 1})

	favorites, err := f.service.CommonFavorites(ctx, alice, []uuid.UUID{colID}, 2, 10)
	if err != nil {
		t.Fatalf("common favorites: %v", err)
	}
	if len(favorites) != 1 {
		t.Fatalf("favorites = %d, want 1", len(favorites))
	}
	if favorites[0].Effective.Title != "Crowd Pleaser" {
		t.Errorf("favorite = %q, want Crowd Pleaser", favorites[0].Effective.Title)
	}
	if favorites[0].DistinctRaters != 3 {
		t.Errorf("distinct raters = %d, want 3", favorites[0].DistinctRaters)
	}
}

func TestResolverVisibility(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	owner, friend, housemate, stranger := uuid.New(), uuid.New(), uuid.New(), uuid.New()

	friends := friendship.NewService(friendship.NewRepository(f.db), nil)
	req, err := friends.SendRequest(ctx, owner, friend, "")
	if err != nil {
		t.Fatalf("send request: %v", err)
	}
	if _, err := friends.Accept(ctx, friend, req.ID); err != nil {
		t.Fatalf("accept: %v", err)
	}
	f.collection(t, owner, housemate)

	cases := []struct {
		name     string
		vis      domain.Visibility
		viewerID uuid.UUID
		want     bool
	}{
		{"owner sees private", domain.VisibilityPrivate, owner, true},
		{"stranger blocked from private", domain.VisibilityPrivate, stranger, false},
		{"anyone sees public", domain.VisibilityPublic, stranger, true},
		{"friend sees friends-only", domain.VisibilityFriends, friend, true},
		{"housemate blocked from friends-only", domain.VisibilityFriends, housemate, false},
		{"housemate sees collection-only", domain.VisibilityCollection, housemate, true},
		{"friend blocked from collection-only", domain.VisibilityCollection, friend, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := &domain.OwnedRecipe{OwnerID: owner, Visibility: tc.vis}
			got, err := f.resolver.CanView(ctx, tc.viewerID, rec)
			if err != nil {
				t.Fatalf("CanView: %v", err)
			}
			if got != tc.want {
				t.Errorf("CanView = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestResolverHidesArchivedFromOthers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	owner, stranger := uuid.New(), uuid.New()
	rec := &domain.OwnedRecipe{OwnerID: owner, Visibility: domain.VisibilityPublic, IsArchived: true}

	got, err := f.resolver.CanView(ctx, stranger, rec)
	if err != nil || got {
		t.Errorf("archived visible to stranger: %v, %v", got, err)
	}
	got, err = f.resolver.CanView(ctx, owner, rec)
	if err != nil || !got {
		t.Errorf("archived hidden from owner: %v, %v", got, err)
	}
}

func TestCombinedFeedIncludeArchivedOwnerOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	alice, ben := uuid.New(), uuid.New()
	colID := f.collection(t, alice, ben)

	f.recipe(t, ben, "Ben Stew", domain.VisibilityPublic)
	mine := f.recipe(t, alice, "Shelved Soup", domain.VisibilityPublic)
	theirs := f.recipe(t, ben, "Retired Pie", domain.VisibilityPublic)
	for _, rec := range []*domain.OwnedRecipe{mine, theirs} {
		if err := f.db.Model(rec).Update("is_archived", true).Error; err != nil {
			t.Fatalf("archive: %v", err)
		}
	}

	entries, total, err := f.service.CombinedFeed(ctx, alice, []uuid.UUID{colID}, Filters{}, SortName, 1, 20)
	if err != nil {
		t.Fatalf("combined feed: %v", err)
	}
	if total != 1 {
		t.Fatalf("default total = %d, want 1", total)
	}

	entries, total, err = f.service.CombinedFeed(ctx, alice, []uuid.UUID{colID}, Filters{IncludeArchived: true}, SortName, 1, 20)
	if err != nil {
		t.Fatalf("combined feed with archived: %v", err)
	}
	if total != 2 {
		t.Fatalf("archived total = %d, want 2", total)
	}
	for _, e := range entries {
		if e.Recipe.ID == theirs.ID {
			t.Errorf("another member's archived recipe leaked into the feed")
		}
	}
}
