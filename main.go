package main

import (
	"net/http"
	"time"

	"blog-platform-api/config"
	"blog-platform-api/handlers"
	"blog-platform-api/helper"
	"blog-platform-api/middleware"
	"blog-platform-api/models"
	"blog-platform-api/repositories"
	"blog-platform-api/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("invalid configuration: %v", err)
	}

	hasher := services.NewPasswordHasher()

	// Initialize repositories. Postgres when DATABASE_URL is set, otherwise
	// the seeded in-memory demo store.
	var userRepo repositories.UserRepository
	var postRepo repositories.PostRepository
	var commentRepo repositories.CommentRepository

	if cfg.DatabaseURL != "" {
		db, err := config.InitDB(cfg.DatabaseURL)
		if err != nil {
			logrus.Fatalf("database init failed: %v", err)
		}
		userRepo = repositories.NewUserRepository(db)
		postRepo = repositories.NewPostRepository(db)
		commentRepo = repositories.NewCommentRepository(db)
	} else {
		store := repositories.NewMemoryStore()
		userRepo = store.Users()
		postRepo = store.Posts()
		commentRepo = store.Comments()
		if err := seedDemoUsers(userRepo, hasher); err != nil {
			logrus.Fatalf("seeding demo users failed: %v", err)
		}
		logrus.Info("running with in-memory store and demo users")
	}

	// Initialize services
	tokens := services.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	guard := services.NewGuard()
	authService := services.NewAuthService(userRepo, hasher, tokens)
	postService := services.NewPostService(postRepo, commentRepo, guard)
	commentService := services.NewCommentService(commentRepo, postRepo, guard)
	userService := services.NewUserService(userRepo, postRepo, commentRepo, guard)

	// Initialize handlers
	httpHelper := helper.NewHTTPHelper()
	schema, err := handlers.NewSchema(authService, postService, commentService, userService, httpHelper)
	if err != nil {
		logrus.Fatalf("schema build failed: %v", err)
	}
	graphqlHandler := handlers.NewGraphQLHandler(schema, httpHelper)

	// Setup router
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	router.POST("/graphql", middleware.AuthContext(tokens, userRepo), graphqlHandler.Handle)

	logrus.Infof("Server starting on port %s", cfg.Port)
	logrus.Fatal(http.ListenAndServe(":"+cfg.Port, router))
}

// seedDemoUsers creates the demo accounts the in-memory deployment ships with.
func seedDemoUsers(userRepo repositories.UserRepository, hasher services.PasswordHasher) error {
	demo := []struct {
		email    string
		name     string
		password string
		role     models.UserRole
	}{
		{"test@example.com", "Test User", "password123", models.RoleUser},
		{"admin@example.com", "Admin", "admin123", models.RoleAdmin},
	}

	for _, d := range demo {
		existing, err := userRepo.GetByEmail(d.email)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}

		hashed, err := hasher.Hash(d.password)
		if err != nil {
			return err
		}

		now := time.Now()
		if err := userRepo.Create(&models.User{
			ID:           uuid.NewString(),
			Email:        d.email,
			Name:         d.name,
			PasswordHash: hashed,
			Role:         d.role,
			CreatedAt:    now,
			UpdatedAt:    now,
		}); err != nil {
			return err
		}
	}

	return nil
}
