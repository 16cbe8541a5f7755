package database

import (
	"log"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite" // registers the cgo-free "sqlite" driver

	"recipebox/internal/domain"
)

func Connect(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Println("Connecting to PostgreSQL...")
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}

	log.Println("Using SQLite for local development:", dsn)

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		&gorm.Config{},
	)
}

// Migrate creates the canonical schema. Legacy household tables are handled
// separately by cmd/migrate; nothing here references them.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.CatalogueRecipe{},
		&domain.OwnedRecipe{},
		&domain.Rating{},
		&domain.Friendship{},
		&domain.Collection{},
		&domain.CollectionMember{},
		&domain.RecipeCollectionLink{},
		&domain.RecipeTag{},
		&domain.RecipeTagLink{},
		&domain.ActivityEvent{},
		&domain.Upload{},
	)
}
