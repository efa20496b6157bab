package router

import (
	"net/http"
	"time"

	"github.com/folkadonis/proffessor/internal/config"
	"github.com/folkadonis/proffessor/internal/handler"
	"github.com/folkadonis/proffessor/internal/middleware"
	"github.com/folkadonis/proffessor/internal/response"
	"github.com/folkadonis/proffessor/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth      *handler.AuthHandler
	AdminUser *handler.AdminUserHandler
	Question  *handler.QuestionHandler
	Module    *handler.ModuleHandler
	Test      *handler.TestHandler
	Report    *handler.ReportHandler
	Dashboard *handler.DashboardHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	userService *service.UserService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for credential endpoints (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/register", authLimiter.Middleware(), handlers.Auth.Register)
		auth.POST("/login", authLimiter.Middleware(), handlers.Auth.Login)

		// Authenticated profile routes
		auth.POST("/logout", middleware.RequireAuth(authService), handlers.Auth.Logout)
		auth.GET("/me", middleware.RequireAuth(authService), handlers.Auth.Me)
	}

	// ─── 2. User Group (JWT + Session) ─────────────────────────────────
	// History and stats are readable before approval; an unapproved user
	// simply has no completed attempts yet.
	userAPI := router.Group("/api/v1/user")
	userAPI.Use(
		middleware.RequireAuth(authService),
		middleware.CheckActiveSession(authService),
	)
	{
		userAPI.GET("/history", handlers.Report.MyReports)
		userAPI.GET("/stats", handlers.Report.MyStats)
	}

	// ─── 3. Tests Group (JWT + Session + Approval) ─────────────────────
	testsAPI := router.Group("/api/v1/tests")
	testsAPI.Use(
		middleware.RequireAuth(authService),
		middleware.CheckActiveSession(authService),
		middleware.RequireApproved(userService),
	)
	{
		testsAPI.GET("/available", handlers.Test.Available)
		testsAPI.POST("/start/:module_id", handlers.Test.Start)
		testsAPI.GET("/attempt/:attempt_id", handlers.Test.GetAttempt)
		testsAPI.PUT("/answer/:attempt_id", handlers.Test.Answer)
		testsAPI.POST("/submit/:attempt_id", handlers.Test.Submit)
		testsAPI.GET("/result/:attempt_id", handlers.Test.Result)
	}

	// ─── 4. Reports Group (JWT + Session; approval not required) ───────
	reportsAPI := router.Group("/api/v1/reports")
	reportsAPI.Use(
		middleware.RequireAuth(authService),
		middleware.CheckActiveSession(authService),
	)
	{
		reportsAPI.GET("/mine", handlers.Report.MyReports)
		reportsAPI.GET("/export", handlers.Report.Export)
		reportsAPI.GET("/all", middleware.RequireAdmin(), handlers.Report.AllReports)
	}

	// ─── 5. Admin Group (JWT + Session + Admin Role) ───────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(
		middleware.RequireAuth(authService),
		middleware.CheckActiveSession(authService),
		middleware.RequireAdmin(),
	)
	{
		// Account management
		adminAPI.GET("/users", handlers.AdminUser.ListUsers)
		adminAPI.GET("/users/pending", handlers.AdminUser.ListPending)
		adminAPI.PATCH("/users/:id/approve", handlers.AdminUser.Approve)
		adminAPI.PATCH("/users/:id/toggle-status", handlers.AdminUser.ToggleStatus)
		adminAPI.POST("/users/:id/reset-session", handlers.AdminUser.ResetSession)
		adminAPI.DELETE("/users/:id", handlers.AdminUser.Reject)

		// Question bank
		adminAPI.GET("/questions", handlers.Question.List)
		adminAPI.POST("/questions", handlers.Question.Create)
		adminAPI.PUT("/questions/:id", handlers.Question.Update)
		adminAPI.DELETE("/questions/:id", handlers.Question.Delete)

		// Test modules
		adminAPI.GET("/test-modules", handlers.Module.List)
		adminAPI.POST("/test-modules", handlers.Module.Create)
		adminAPI.PUT("/test-modules/:id", handlers.Module.Update)
		adminAPI.DELETE("/test-modules/:id", handlers.Module.Delete)

		// Dashboard
		adminAPI.GET("/dashboard", handlers.Dashboard.Dashboard)
		adminAPI.GET("/statistics", handlers.Dashboard.Statistics)
	}

	return router
}
