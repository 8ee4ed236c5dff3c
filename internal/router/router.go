package router

import (
	"log"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/avelichko/pulseline/backend/internal/feed"
	"github.com/avelichko/pulseline/backend/internal/handlers"
	"github.com/avelichko/pulseline/backend/internal/middleware"
	"github.com/avelichko/pulseline/backend/internal/models"
	"github.com/avelichko/pulseline/backend/internal/repositories"
	"github.com/avelichko/pulseline/backend/pkg/config"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, cfg *config.Config, pgdb *gorm.DB, mgClient *mongo.Client, firebaseAuthClient *auth.Client) {
	// AutoMigrate PostgreSQL models. The Follow migration carries the
	// composite unique index and the no-self-follow check constraint.
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.Comment{},
		&models.Follow{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	groupRepo := repositories.NewPostgresGroupRepository(pgdb)
	commentRepo := repositories.NewPostgresCommentRepository(pgdb)
	followRepo := repositories.NewPostgresFollowRepository(pgdb)
	postRepo := repositories.NewMongoPostRepository(mgClient.Database(cfg.MongoDatabase))

	// --- Feed core: global-page cache and composer ---
	pageCache := feed.NewPageCache(time.Duration(cfg.FeedCacheTTLSeconds) * time.Second)
	composer := feed.NewComposer(postRepo, userRepo, groupRepo, followRepo, pageCache, cfg.FeedPageSize)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, firebaseAuthClient, cfg.JWTSecret)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// Public routes accept an optional viewer; protected routes require one.
	public := e.Group("/api/v1")
	public.Use(middleware.OptionalJWTAuthMiddleware(cfg.JWTSecret))

	protected := e.Group("/api/v1")
	protected.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	log.Println("JWT authentication middleware applied to /api/v1 group.")

	// User profile routes
	userHandler := handlers.NewUserHandler(userRepo, postRepo, followRepo)
	userHandler.RegisterProfileRoutes(public)
	log.Println("User profile routes configured.")

	// Post routes
	postHandler := handlers.NewPostHandler(postRepo, groupRepo, commentRepo, pageCache)
	postHandler.RegisterPostRoutes(public, protected)
	log.Println("Post routes configured.")

	// Feed routes
	feedHandler := handlers.NewFeedHandler(composer)
	feedHandler.RegisterFeedRoutes(public, protected)
	log.Println("Feed routes configured.")

	// Follow routes
	followHandler := handlers.NewFollowHandler(followRepo, userRepo)
	followHandler.RegisterFollowRoutes(protected)
	log.Println("Follow routes configured.")

	// Comment routes
	commentHandler := handlers.NewCommentHandler(commentRepo, postRepo)
	commentHandler.RegisterCommentRoutes(public, protected)
	log.Println("Comment routes configured.")

	// Group routes
	groupHandler := handlers.NewGroupHandler(groupRepo, postRepo, pageCache)
	groupHandler.RegisterGroupRoutes(public, protected)
	log.Println("Group routes configured.")

	log.Println("All routes configured.")
}
