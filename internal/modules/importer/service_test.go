package importer

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"recipebox/internal/domain"
	"recipebox/internal/repository"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:importer_test_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{DriverName: "sqlite", DSN: dsn}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.CatalogueRecipe{}))
	return NewService(db, repository.NewRecipeRepository(db)), db
}

func entry(sourceID, title string) Entry {
	return Entry{
		Source:   "allrecipes",
		SourceID: sourceID,
		Title:    title,
		Cuisine:  "italian",
	}
}

func TestUpsertCreatesThenUpdates(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	rec, created, err := svc.Upsert(ctx, entry("r-1", "Carbonara"))
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "Carbonara", rec.Title)
	assert.True(t, rec.IsPublic)

	again, created, err := svc.Upsert(ctx, entry("r-1", "Carbonara Improved"))
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, rec.ID, again.ID)
	assert.Equal(t, "Carbonara Improved", again.Title)

	var count int64
	db.Model(&domain.CatalogueRecipe{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestUpsertPreservesDerivedColumns(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	rec, _, err := svc.Upsert(ctx, entry("r-1", "Carbonara"))
	require.NoError(t, err)

	// the rating service owns these columns; a re-import must not reset them
	require.NoError(t, db.Model(rec).Updates(map[string]any{"average_rating": 7.5, "rating_count": 12}).Error)

	_, _, err = svc.Upsert(ctx, entry("r-1", "Carbonara v2"))
	require.NoError(t, err)

	var reloaded domain.CatalogueRecipe
	require.NoError(t, db.First(&reloaded, "id = ?", rec.ID).Error)
	assert.Equal(t, 7.5, reloaded.AverageRating)
	assert.Equal(t, 12, reloaded.RatingCount)
	assert.Equal(t, "Carbonara v2", reloaded.Title)
}

func TestUpsertValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.Upsert(ctx, Entry{Title: "No Source"})
	assert.ErrorIs(t, err, ErrMissingSource)

	_, _, err = svc.Upsert(ctx, Entry{Source: "allrecipes", SourceID: "r-1", Title: "  "})
	assert.ErrorIs(t, err, ErrEmptyTitle)
}

func TestUpsertBatchReportsFailures(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, updated, failures := svc.UpsertBatch(ctx, []Entry{
		entry("r-1", "Carbonara"),
		entry("r-2", "Cacio e Pepe"),
		entry("r-1", "Carbonara Again"),
		{Source: "allrecipes", SourceID: "r-3"}, // no title
	})

	assert.Equal(t, 2, created)
	assert.Equal(t, 1, updated)
	require.Len(t, failures, 1)
	assert.Equal(t, 3, failures[0].Index)
	assert.Equal(t, "r-3", failures[0].SourceID)
}
