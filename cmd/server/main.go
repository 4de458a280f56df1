package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/task-management-api/internal/config"
	"github.com/yukikurage/task-management-api/internal/database"
	"github.com/yukikurage/task-management-api/internal/handlers"
	"github.com/yukikurage/task-management-api/internal/middleware"
	"github.com/yukikurage/task-management-api/internal/repository"
	"github.com/yukikurage/task-management-api/internal/services"
)

func main() {
	// Load configuration
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
		log.Fatalf("Failed to add indexes: %v", err)
	}

	// Initialize repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	tokenRepo := repository.NewTokenRepository(db)

	// Initialize services
	jwtService := services.NewJWTService(cfg.JWTSecret, cfg.JWTTTL)

	var emailSender services.EmailSender
	if cfg.SMTPHost != "" {
		emailSender = services.NewSMTPEmailSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
	} else {
		emailSender = &services.LogEmailSender{}
	}

	authService := services.NewAuthService(userRepo, tokenRepo, jwtService, emailSender, cfg.BaseURL)
	userService := services.NewUserService(userRepo)
	taskService := services.NewTaskService(taskRepo, userRepo, cfg.ResetCreationDateOnUpdate)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	taskHandler := handlers.NewTaskHandler(taskService)
	userHandler := handlers.NewUserHandler(userService, authService)

	// Initialize Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Task Management API is running",
		})
	})

	requireAuth := middleware.RequireAuth(jwtService, userService)
	requireEnabled := middleware.RequireEnabled()

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/authenticate", authHandler.Authenticate)
			auth.GET("/confirm", authHandler.Confirm)
		}

		// Task routes (protected, enabled accounts only)
		tasks := api.Group("/tasks")
		tasks.Use(requireAuth, requireEnabled)
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/myAuthored", taskHandler.ListMyAuthoredTasks)
			tasks.GET("/myAssigned", taskHandler.ListMyAssignedTasks)
			tasks.GET("/author/:authorId", taskHandler.ListTasksByAuthor)
			tasks.GET("/performer/:performerId", taskHandler.ListTasksByPerformer)
			tasks.GET("/:taskId", taskHandler.GetTask)
			tasks.PUT("/:taskId", taskHandler.UpdateTask)
			tasks.DELETE("/:taskId", taskHandler.DeleteTask)
			tasks.PUT("/:taskId/status", taskHandler.UpdateTaskStatus)
			tasks.POST("/:taskId/performer/:performerId", taskHandler.AssignPerformer)
			tasks.POST("/:taskId/comment", taskHandler.CommentTask)
		}

		// User routes (protected, enabled accounts only)
		users := api.Group("/users")
		users.Use(requireAuth, requireEnabled)
		{
			users.GET("", userHandler.ListUsers)
			users.GET("/:userId", userHandler.GetUser)
			users.PUT("", userHandler.UpdateCurrentUser)
			users.DELETE("", userHandler.DeleteCurrentUser)
		}
	}

	// Start server
	log.Println("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
