package database

import (
	"testing"
)

func TestConnectSQLiteAndMigrate(t *testing.T) {
	db, err := Connect("file:database_test?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("connect: %v", err)
	}

	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	for _, table := range []string{"users", "owned_recipes", "catalogue_recipes", "friendships", "collections", "uploads"} {
		if !db.Migrator().HasTable(table) {
			t.Errorf("missing table %q", table)
		}
	}
}
