package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"room-booking-backend/internal/config"
	"room-booking-backend/internal/database"
	"room-booking-backend/internal/handler"
	"room-booking-backend/internal/middleware"
	"room-booking-backend/internal/repository"
	"room-booking-backend/internal/service"
	"room-booking-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
)

func main() {
	// 1. Load configuration
	cfg := config.LoadConfig()
	log.Println("Configuration loaded successfully")

	// 2. Initialize JWT utilities with config
	utils.InitJWT(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)

	// 3. Initialize database connection and schema
	db := database.Connect(cfg)
	database.Migrate(db)

	// 4. Initialize repositories
	userRepo := repository.NewUserRepo(db)
	roomRepo := repository.NewRoomRepo(db)
	borrowingRepo := repository.NewBorrowingRepo(db)
	historyRepo := repository.NewHistoryRepo(db)
	notificationRepo := repository.NewNotificationRepo(db)
	auditRepo := repository.NewAuditRepo(db)

	// 5. Initialize services
	authService := service.NewAuthService(userRepo, auditRepo)
	roomService := service.NewRoomService(roomRepo, borrowingRepo, auditRepo)
	notificationService := service.NewNotificationService(notificationRepo, userRepo)
	borrowingService := service.NewBorrowingService(db, borrowingRepo, historyRepo, roomRepo, notificationService)
	sweepService := service.NewSweepService(borrowingRepo, roomRepo, borrowingService, cfg.Sweep.Interval)

	// 6. Start reconciliation sweep in goroutine
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sweepService.Start(ctx)

	// 7. Setup Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// 8. Setup Gin router
	r := gin.Default()

	// Apply CORS middleware
	r.Use(middleware.CORS(cfg))

	// 9. Register handlers
	authHandler := handler.NewAuthHandler(authService)
	roomHandler := handler.NewRoomHandler(roomService)
	borrowingHandler := handler.NewBorrowingHandler(borrowingService, userRepo)
	notificationHandler := handler.NewNotificationHandler(notificationService)

	roomListCache := gocache.New(30*time.Second, time.Minute)

	// 10. Define routes
	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		utils.SuccessResponse(c, gin.H{
			"status":  "healthy",
			"service": "room-booking-backend",
		})
	})

	// Auth routes (public, rate limited)
	auth := r.Group("/auth")
	auth.Use(middleware.RateLimiter(5, 10))
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/logout", authHandler.Logout)
	}

	// Room routes (authenticated)
	rooms := r.Group("/rooms")
	rooms.Use(middleware.AuthMiddleware())
	{
		rooms.GET("", middleware.Cache(roomListCache, 30*time.Second), roomHandler.GetAllRooms)
		rooms.GET("/:id", roomHandler.GetRoom)

		// Admin-only routes
		rooms.POST("", middleware.RequireAdmin(), roomHandler.CreateRoom)
		rooms.PUT("/:id", middleware.RequireAdmin(), roomHandler.UpdateRoom)
		rooms.DELETE("/:id", middleware.RequireAdmin(), roomHandler.DeleteRoom)
		rooms.PATCH("/:id/maintenance", middleware.RequireAdmin(), roomHandler.SetMaintenance)
	}

	// Borrowing routes (authenticated)
	borrowings := r.Group("/borrowings")
	borrowings.Use(middleware.AuthMiddleware())
	{
		borrowings.POST("", borrowingHandler.CreateBorrowing)
		borrowings.GET("", borrowingHandler.GetBorrowings)
		borrowings.GET("/:id", borrowingHandler.GetBorrowing)
		borrowings.GET("/:id/history", borrowingHandler.GetHistory)
		borrowings.POST("/:id/cancel", borrowingHandler.Cancel)

		// Admin-only transitions
		borrowings.POST("/:id/approve", middleware.RequireAdmin(), borrowingHandler.Approve)
		borrowings.POST("/:id/reject", middleware.RequireAdmin(), borrowingHandler.Reject)
		borrowings.POST("/:id/start", middleware.RequireAdmin(), borrowingHandler.Start)
		borrowings.POST("/:id/complete", middleware.RequireAdmin(), borrowingHandler.Complete)
	}

	// Notification routes (authenticated)
	notifications := r.Group("/notifications")
	notifications.Use(middleware.AuthMiddleware())
	{
		notifications.GET("", notificationHandler.GetNotifications)
		notifications.POST("/:id/read", notificationHandler.MarkRead)
		notifications.GET("/unread-count", notificationHandler.UnreadCount)
	}

	// 11. Setup graceful shutdown
	go func() {
		log.Printf("Server starting on port %s", cfg.Server.Port)
		if err := r.Run(":" + cfg.Server.Port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Cancel sweep context
	cancel()
	log.Println("Server exited")
}
