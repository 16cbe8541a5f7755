package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"recipebox/internal/config"
	"recipebox/internal/database"
	"recipebox/internal/middleware"
	"recipebox/internal/modules/activity"
	"recipebox/internal/modules/auth"
	"recipebox/internal/modules/collection"
	"recipebox/internal/modules/feed"
	"recipebox/internal/modules/friendship"
	"recipebox/internal/modules/importer"
	"recipebox/internal/modules/rating"
	"recipebox/internal/modules/recipe"
	"recipebox/internal/modules/upload"
	"recipebox/internal/modules/user"
	jwtsvc "recipebox/internal/pkg/jwt"
	"recipebox/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	collectionRepo := repository.NewCollectionRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	friendshipRepo := friendship.NewRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	friendshipService := friendship.NewService(friendshipRepo, nil)
	activityService := activity.NewService(activityRepo, friendshipService)
	friendshipService.SetActivity(activityService)

	resolver := feed.NewResolver(friendshipService, collectionRepo)

	authService := auth.NewService(userRepo, j)
	userService := user.NewService(userRepo, friendshipService)
	recipeService := recipe.NewService(db, recipeRepo, resolver, activityService)
	ratingService := rating.NewService(db, recipeRepo, ratingRepo, resolver, activityService)
	collectionService := collection.NewService(db, collectionRepo, activityService)
	feedService := feed.NewService(recipeRepo, ratingRepo, collectionRepo, resolver)
	importerService := importer.NewService(db, recipeRepo)
	uploadService := upload.NewService(db, cfg.UploadsDir, cfg.StaticBase)

	authHandler := auth.NewHandler(authService)
	userHandler := user.NewHandler(userService)
	recipeHandler := recipe.NewHandler(recipeService)
	ratingHandler := rating.NewHandler(ratingService)
	friendshipHandler := friendship.NewHandler(friendshipService)
	collectionHandler := collection.NewHandler(collectionService)
	feedHandler := feed.NewHandler(feedService)
	activityHandler := activity.NewHandler(activityService)
	importerHandler := importer.NewHandler(importerService)
	uploadHandler := upload.NewHandler(uploadService)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.NewRateLimiter(20, 40).Limit())

	r.Static(cfg.StaticBase, cfg.UploadsDir)

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1)

		// protected
		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			userHandler.RegisterRoutes(protected)
			recipeHandler.RegisterRoutes(protected)
			ratingHandler.RegisterRoutes(protected)
			friendshipHandler.RegisterRoutes(protected)
			collectionHandler.RegisterRoutes(protected)
			feedHandler.RegisterRoutes(protected)
			activityHandler.RegisterRoutes(protected)
			uploadHandler.RegisterRoutes(protected)
		}

		// import collaborator, shared-secret token
		internal := v1.Group("/internal")
		internal.Use(middleware.InternalTokenAuth())
		{
			importerHandler.RegisterRoutes(internal)
		}
	}

	log.Printf("listening on %s", cfg.Addr)
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}
