package router

import (
	"context"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"github.com/anhnvjm07/v-social/internal/handlers"
	"github.com/anhnvjm07/v-social/internal/middleware"
	"github.com/anhnvjm07/v-social/internal/models"
	"github.com/anhnvjm07/v-social/internal/repositories"
	"github.com/anhnvjm07/v-social/internal/services"
	"github.com/anhnvjm07/v-social/pkg/media"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, mongoDBName string, storage media.Storage) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	mgdb := mgClient.Database(mongoDBName)
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	followRepo := repositories.NewPostgresFollowRepository(pgdb)
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb)
	postRepo := repositories.NewMongoPostRepository(mgdb)
	commentRepo := repositories.NewMongoCommentRepository(mgdb)
	reactionRepo := repositories.NewMongoReactionRepository(mgdb)
	messageRepo := repositories.NewMongoMessageRepository(mgdb)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for name, ensure := range map[string]func(context.Context) error{
		"posts":     postRepo.EnsureIndexes,
		"comments":  commentRepo.EnsureIndexes,
		"reactions": reactionRepo.EnsureIndexes,
		"messages":  messageRepo.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			log.Fatalf("Failed to ensure %s indexes: %v", name, err)
		}
	}
	log.Println("MongoDB indexes ensured.")

	// --- Initialize Services ---
	visibility := services.NewVisibilityEvaluator(followRepo)
	notifier := services.NewNotifier(notificationRepo, userRepo)
	postService := services.NewPostService(postRepo, visibility, storage, notifier)
	commentService := services.NewCommentService(commentRepo, postRepo, visibility, notifier)
	reactionService := services.NewReactionService(reactionRepo, postRepo, commentRepo, visibility, notifier)
	followService := services.NewFollowService(followRepo, userRepo, notifier)
	messageService := services.NewMessageService(messageRepo, userRepo, notifier)
	notificationService := services.NewNotificationService(notificationRepo)
	searchService := services.NewSearchService(userRepo, postRepo, visibility)

	// --- Public routes (optional authentication: an authenticated viewer
	// sees their follower-only content, anonymous viewers see public only) ---
	public := e.Group("/api/v1")
	public.Use(middleware.OptionalJWTAuthMiddleware())

	postHandler := handlers.NewPostHandler(postService, userRepo)
	postHandler.RegisterPublicPostRoutes(public)

	commentHandler := handlers.NewCommentHandler(commentService)
	commentHandler.RegisterPublicCommentRoutes(public)

	reactionHandler := handlers.NewReactionHandler(reactionService)
	reactionHandler.RegisterPublicReactionRoutes(public)

	followHandler := handlers.NewFollowHandler(followService)
	followHandler.RegisterPublicFollowRoutes(public)

	searchHandler := handlers.NewSearchHandler(searchService)
	searchHandler.RegisterPublicSearchRoutes(public)
	log.Println("Public routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware())
	log.Println("JWT authentication middleware applied to /api/v1 group.")

	postHandler.RegisterPostRoutes(api)
	log.Println("Post routes configured.")

	commentHandler.RegisterCommentRoutes(api)
	log.Println("Comment routes configured.")

	reactionHandler.RegisterReactionRoutes(api)
	log.Println("Reaction routes configured.")

	followHandler.RegisterFollowRoutes(api)
	log.Println("Follow routes configured.")

	messageHandler := handlers.NewMessageHandler(messageService)
	messageHandler.RegisterMessageRoutes(api)
	log.Println("Message routes configured.")

	notificationHandler := handlers.NewNotificationHandler(notificationService)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Println("Notification routes configured.")

	log.Println("All routes configured.")
}
