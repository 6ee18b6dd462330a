package main

import (
	"log"

	"github.com/cvassist/task-api/internal/authz"
	"github.com/cvassist/task-api/internal/config"
	"github.com/cvassist/task-api/internal/constants"
	"github.com/cvassist/task-api/internal/database"
	"github.com/cvassist/task-api/internal/handlers"
	"github.com/cvassist/task-api/internal/middleware"
	"github.com/cvassist/task-api/internal/models"
	"github.com/cvassist/task-api/internal/repository"
	"github.com/cvassist/task-api/internal/services"
	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env if present; real deployments set env vars directly
	_ = godotenv.Load()

	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if err := database.AddIndexes(database.GetDB()); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction, // true in production (HTTPS), false in development
		SameSite: 2,            // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Access-control policy; ALLOW_DESIGNER_CREATE selects the relaxed
	// creation variant where designers may open their own tasks.
	policy := authz.NewPolicy(authz.Options{
		AllowDesignerCreate: cfg.AllowDesignerCreate,
	})

	// Repositories
	db := database.GetDB()
	taskRepo := repository.NewTaskRepository(db)
	userRepo := repository.NewUserRepository(db)
	accountRepo := repository.NewAccountRepository(db)

	// Services
	authService := services.NewAuthService(userRepo)
	taskService := services.NewTaskService(taskRepo, userRepo, policy)
	userService := services.NewUserService(userRepo, policy)
	accountService := services.NewAccountService(accountRepo, policy)

	var suggestService *services.SuggestService
	if cfg.OpenAIAPIKey != "" {
		suggestService = services.NewSuggestService(cfg.OpenAIAPIKey)
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	taskHandler := handlers.NewTaskHandler(taskService, suggestService)
	userHandler := handlers.NewUserHandler(userService)
	accountHandler := handlers.NewAccountHandler(accountService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "CV Assist task API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Staff directory routes (protected)
		users := api.Group("/users")
		users.Use(middleware.RequireAuth())
		{
			users.GET("", middleware.RequireRoles(models.RoleAdmin, models.RoleManager), userHandler.ListStaff)
			users.PATCH("/me/status", userHandler.ChangeStatus)
			users.PATCH("/:id/role", middleware.RequireRoles(models.RoleAdmin), userHandler.ChangeRole)
		}

		// Task routes (protected); per-task ownership checks live in the
		// service layer, so only coarse role gates are applied here.
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/stats", middleware.RequireRoles(models.RoleAdmin, models.RoleManager), taskHandler.Stats)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.POST("/:id/transition", taskHandler.Transition)
			tasks.POST("/:id/assign-designer", middleware.RequireRoles(models.RoleAdmin, models.RoleManager), taskHandler.AssignDesigner)
			tasks.POST("/:id/assign-reviewer", middleware.RequireRoles(models.RoleAdmin, models.RoleManager), taskHandler.AssignReviewer)
			tasks.POST("/:id/rate", taskHandler.Rate)
			tasks.POST("/:id/attachments", taskHandler.AddAttachment)
			tasks.PATCH("/:id/notes", taskHandler.UpdateNotes)
			tasks.POST("/:id/suggest-summary", taskHandler.SuggestSummary)
		}

		// Shared service-account registry (admin only)
		accounts := api.Group("/accounts")
		accounts.Use(middleware.RequireAuth(), middleware.RequireRoles(models.RoleAdmin))
		{
			accounts.GET("", accountHandler.List)
			accounts.POST("", accountHandler.Create)
			accounts.PUT("/:id", accountHandler.Update)
			accounts.DELETE("/:id", accountHandler.Delete)
		}
	}

	// Start server
	addr := ":" + cfg.Port
	log.Printf("Server starting on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
