package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"recipebox/internal/database"
)

// Applies the canonical schema, then optionally rewrites legacy household
// tables into collections. Households were retired in favour of collections;
// the rewrite is idempotent, so re-running after a partial failure is safe.
func main() {
	legacy := flag.Bool("legacy-households", false, "migrate legacy household tables into collections")
	flag.Parse()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "file:recipebox.db?cache=shared"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Applying schema...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	if *legacy {
		if !strings.HasPrefix(dsn, "postgres://") && !strings.HasPrefix(dsn, "postgresql://") {
			log.Fatal("legacy household migration requires a PostgreSQL DATABASE_URL")
		}
		if err := migrateHouseholds(dsn); err != nil {
			log.Fatal("household migration failed:", err)
		}
	}

	log.Println("Done.")
}

// migrateHouseholds copies each legacy household into a collection of the
// same name owned by the household creator, and each household membership
// into a collection member row. Rows that already exist are left alone.
func migrateHouseholds(dsn string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	var exists bool
	err = conn.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'households')`,
	).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		log.Println("No legacy households table, nothing to migrate.")
		return nil
	}

	tx, err := conn.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		INSERT INTO collections (id, name, owner_id, created_at, updated_at)
		SELECT h.id, h.name, h.created_by, h.created_at, now()
		FROM households h
		ON CONFLICT (id) DO NOTHING`)
	if err != nil {
		return err
	}
	log.Printf("collections created: %d", tag.RowsAffected())

	tag, err = tx.Exec(ctx, `
		INSERT INTO collection_members (id, collection_id, user_id, role, invited_by, created_at)
		SELECT gen_random_uuid(), hm.household_id, hm.user_id,
		       CASE WHEN hm.user_id = h.created_by THEN 'owner' ELSE 'member' END,
		       NULLIF(h.created_by, hm.user_id),
		       hm.joined_at
		FROM household_members hm
		JOIN households h ON h.id = hm.household_id
		ON CONFLICT (collection_id, user_id) DO NOTHING`)
	if err != nil {
		return err
	}
	log.Printf("collection members created: %d", tag.RowsAffected())

	// household recipe boards, if the deployment had them
	err = conn.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'household_recipes')`,
	).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		tag, err = tx.Exec(ctx, `
			INSERT INTO recipe_collection_links (id, collection_id, owned_recipe_id, added_by, created_at)
			SELECT gen_random_uuid(), hr.household_id, hr.owned_recipe_id, hr.added_by, hr.created_at
			FROM household_recipes hr
			WHERE EXISTS (SELECT 1 FROM owned_recipes r WHERE r.id = hr.owned_recipe_id)
			ON CONFLICT (collection_id, owned_recipe_id) DO NOTHING`)
		if err != nil {
			return err
		}
		log.Printf("recipe links created: %d", tag.RowsAffected())
	}

	return tx.Commit(ctx)
}
