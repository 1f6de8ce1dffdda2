package router

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/freelance-escrow/internal/config"
	"github.com/ignatzorin/freelance-escrow/internal/http/handlers"
	"github.com/ignatzorin/freelance-escrow/internal/http/middleware"
	"github.com/ignatzorin/freelance-escrow/internal/service"
)

func SetupRouter(
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	projectHandler *handlers.ProjectHandler,
	bidHandler *handlers.BidHandler,
	paymentHandler *handlers.PaymentHandler,
	disputeHandler *handlers.DisputeHandler,
	notificationHandler *handlers.NotificationHandler,
	wsHandler *handlers.WSHandler,
	healthHandler *handlers.HealthHandler,
	seedHandler *handlers.SeedHandler,
	tokenManager *service.TokenManager,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", healthHandler.Health)

	api := r.Group("/api")

	if seedHandler != nil && cfg.SeedEnabled {
		api.POST("/seed", seedHandler.Seed)
	}

	authGroup := api.Group("/auth")
	authRateLimit := middleware.RateLimitMiddleware(5, cfg.RateLimitPeriod)
	authGroup.Use(authRateLimit)
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
	}

	protectedAuth := api.Group("/auth")
	protectedAuth.Use(middleware.AuthMiddleware(tokenManager))
	{
		protectedAuth.POST("/logout", authHandler.Logout)
		protectedAuth.GET("/me", authHandler.Me)
	}

	// Публичные маршруты
	api.GET("/projects", projectHandler.ListProjects)
	api.GET("/projects/:id", middleware.UUIDValidator("id"), projectHandler.GetProject)
	api.GET("/ws", wsHandler.Handle)

	// Защищённые маршруты
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(tokenManager))
	{
		protected.POST("/projects", projectHandler.CreateProject)
		protected.GET("/projects/my", projectHandler.ListMyProjects)
		protected.POST("/projects/:id/submit-completion", middleware.UUIDValidator("id"), projectHandler.SubmitCompletion)
		protected.POST("/projects/:id/approve-completion", middleware.UUIDValidator("id"), projectHandler.ApproveCompletion)
		protected.POST("/projects/:id/reject-completion", middleware.UUIDValidator("id"), projectHandler.RejectCompletion)

		protected.GET("/projects/:id/bids", middleware.UUIDValidator("id"), bidHandler.ListProjectBids)
		protected.POST("/bids", bidHandler.CreateBid)
		protected.PUT("/bids/:id", middleware.UUIDValidator("id"), bidHandler.UpdateBidStatus)

		protected.GET("/wallet/balance", paymentHandler.GetBalance)
		protected.POST("/wallet/deposit", paymentHandler.Deposit)
		protected.POST("/payments/pay", paymentHandler.Pay)
		protected.GET("/payments/my", paymentHandler.ListMyPayments)
		protected.GET("/projects/:id/payments", middleware.UUIDValidator("id"), paymentHandler.ListProjectPayments)

		protected.GET("/projects/:id/dispute", middleware.UUIDValidator("id"), disputeHandler.GetProjectDispute)
		protected.GET("/disputes", disputeHandler.ListMyDisputes)
		protected.PUT("/disputes/:id/resolve", middleware.UUIDValidator("id"), disputeHandler.ResolveDispute)

		protected.GET("/notifications", notificationHandler.List)
		protected.GET("/notifications/unread/count", notificationHandler.CountUnread)
		protected.PUT("/notifications/:id/read", middleware.UUIDValidator("id"), notificationHandler.MarkAsRead)
		protected.PUT("/notifications/read-all", notificationHandler.MarkAllAsRead)
	}

	return r
}
