package main

import (
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	"recipebox/internal/database"
	"recipebox/internal/domain"
	"recipebox/internal/pkg/shareid"
)

// Seeds a small demo household: four users, a shared collection, a few
// recipes in every linkage state, ratings and friendships. Intended for
// local development against the sqlite default.
func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "file:recipebox.db?cache=shared"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM activity_events")
	db.Exec("DELETE FROM recipe_tag_links")
	db.Exec("DELETE FROM recipe_tags")
	db.Exec("DELETE FROM recipe_collection_links")
	db.Exec("DELETE FROM collection_members")
	db.Exec("DELETE FROM collections")
	db.Exec("DELETE FROM ratings")
	db.Exec("DELETE FROM friendships")
	db.Exec("DELETE FROM owned_recipes")
	db.Exec("DELETE FROM catalogue_recipes")
	db.Exec("DELETE FROM uploads")
	db.Exec("DELETE FROM users")

	log.Println("Creating users...")
	users := make([]domain.User, 0, 4)
	for _, u := range []struct {
		email, name string
		public      bool
	}{
		{"alice@example.com", "Alice", true},
		{"ben@example.com", "Ben", false},
		{"carla@example.com", "Carla", false},
		{"dmitri@example.com", "Dmitri", true},
	} {
		hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		sid, err := shareid.New()
		if err != nil {
			log.Fatal(err)
		}
		user := domain.User{
			Email:           u.email,
			PasswordHash:    string(hash),
			DisplayName:     u.name,
			ShareID:         sid,
			IsProfilePublic: u.public,
		}
		if err := db.Create(&user).Error; err != nil {
			log.Fatal(err)
		}
		users = append(users, user)
		log.Printf("  %s / password123 (share id %s)", u.email, sid)
	}
	alice, ben, carla, dmitri := users[0], users[1], users[2], users[3]

	log.Println("Creating friendships...")
	for _, pair := range [][2]domain.User{{alice, ben}, {alice, carla}, {ben, carla}} {
		f := domain.Friendship{
			RequesterID: pair[0].ID,
			TargetID:    pair[1].ID,
			Status:      domain.FriendshipAccepted,
		}
		if err := db.Create(&f).Error; err != nil {
			log.Fatal(err)
		}
	}
	// dmitri's request to alice stays pending
	db.Create(&domain.Friendship{
		RequesterID: dmitri.ID,
		TargetID:    alice.ID,
		Status:      domain.FriendshipPending,
		Message:     "met at the market, great tips on dumplings",
	})

	log.Println("Creating catalogue entries...")
	source := "seed"
	lasagnaSrc := "lasagna-001"
	lasagna := domain.CatalogueRecipe{
		Title:       "Classic Lasagna",
		Description: "Layered pasta with ragù and béchamel.",
		Ingredients: []domain.Ingredient{
			{Name: "lasagna sheets", Quantity: "250", Unit: "g"},
			{Name: "ground beef", Quantity: "500", Unit: "g"},
			{Name: "tomato passata", Quantity: "700", Unit: "ml"},
		},
		Instructions:    []string{"Brown the beef.", "Layer and bake 45 minutes."},
		PrepTimeMinutes: 30,
		CookTimeMinutes: 45,
		Servings:        6,
		Cuisine:         "italian",
		IsPublic:        true,
		Source:          &source,
		SourceID:        &lasagnaSrc,
	}
	if err := db.Create(&lasagna).Error; err != nil {
		log.Fatal(err)
	}

	log.Println("Creating owned recipes...")
	veggie := "Veggie Lasagna"
	linked := domain.OwnedRecipe{
		OwnerID:           alice.ID,
		CatalogueRecipeID: &lasagna.ID,
		Title:             &veggie,
		Notes:             "swap beef for lentils",
		Visibility:        domain.VisibilityFriends,
	}
	if err := db.Create(&linked).Error; err != nil {
		log.Fatal(err)
	}

	borschtTitle := "Grandma's Borscht"
	standalone := domain.OwnedRecipe{
		OwnerID: ben.ID,
		Title:   &borschtTitle,
		Ingredients: []domain.Ingredient{
			{Name: "beetroot", Quantity: "3"},
			{Name: "cabbage", Quantity: "300", Unit: "g"},
		},
		Instructions: []string{"Simmer everything for an hour."},
		Visibility:   domain.VisibilityCollection,
	}
	if err := db.Create(&standalone).Error; err != nil {
		log.Fatal(err)
	}

	secretTitle := "Secret Brownies"
	private := domain.OwnedRecipe{
		OwnerID:    carla.ID,
		Title:      &secretTitle,
		Visibility: domain.VisibilityPrivate,
	}
	if err := db.Create(&private).Error; err != nil {
		log.Fatal(err)
	}

	log.Println("Creating collection...")
	household := domain.Collection{
		Name:    "Weeknight Dinners",
		OwnerID: alice.ID,
	}
	if err := db.Create(&household).Error; err != nil {
		log.Fatal(err)
	}
	for _, m := range []domain.CollectionMember{
		{CollectionID: household.ID, UserID: alice.ID, Role: domain.CollectionRoleOwner},
		{CollectionID: household.ID, UserID: ben.ID, Role: domain.CollectionRoleMember, InvitedBy: &alice.ID},
		{CollectionID: household.ID, UserID: carla.ID, Role: domain.CollectionRoleMember, InvitedBy: &alice.ID},
	} {
		if err := db.Create(&m).Error; err != nil {
			log.Fatal(err)
		}
	}
	db.Create(&domain.RecipeCollectionLink{CollectionID: household.ID, OwnedRecipeID: linked.ID, AddedBy: alice.ID})
	db.Create(&domain.RecipeCollectionLink{CollectionID: household.ID, OwnedRecipeID: standalone.ID, AddedBy: ben.ID})

	log.Println("Creating ratings...")
	// ratings of a linked recipe live on its catalogue entry
	for _, rt := range []domain.Rating{
		{CatalogueRecipeID: &lasagna.ID, RaterID: ben.ID, Score: 9, Comment: "make this weekly"},
		{CatalogueRecipeID: &lasagna.ID, RaterID: carla.ID, Score: 7},
		{OwnedRecipeID: &standalone.ID, RaterID: alice.ID, Score: 8},
		{OwnedRecipeID: &standalone.ID, RaterID: carla.ID, Score: 10, Comment: "better than my grandma's"},
	} {
		if err := db.Create(&rt).Error; err != nil {
			log.Fatal(err)
		}
	}
	db.Model(&domain.CatalogueRecipe{}).Where("id = ?", lasagna.ID).
		Updates(map[string]any{"average_rating": 8.0, "rating_count": 2})
	db.Model(&domain.OwnedRecipe{}).Where("id = ?", standalone.ID).
		Updates(map[string]any{"average_rating": 9.0, "rating_count": 2})

	log.Println("Seed complete.")
}
