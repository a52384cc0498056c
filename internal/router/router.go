package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/cetprep/cetprep-backend/internal/config"
	"github.com/cetprep/cetprep-backend/internal/handler"
	"github.com/cetprep/cetprep-backend/internal/middleware"
	"github.com/cetprep/cetprep-backend/internal/response"
	"github.com/cetprep/cetprep-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Test    *handler.TestHandler
	Attempt *handler.AttemptHandler
	Result  *handler.ResultHandler
	WS      *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	tokenService *service.TokenService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
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

	// Rate limiter for test creation (10 requests per minute per IP).
	createLimiter := middleware.NewRateLimiter(10, time.Minute)

	// ─── 1. Test Catalog (Public) ──────────────────────────────────────
	tests := router.Group("/api/v1/tests")
	{
		tests.GET("", handlers.Test.List)
		tests.GET("/:test_id", handlers.Test.GetByID)
		tests.POST("", createLimiter.Middleware(), handlers.Test.Create)

		// Results are readable by test ID alone: a submitted result is the
		// record of a finished test, not a protected live attempt.
		tests.GET("/:test_id/result", handlers.Result.Get)
	}

	// ─── 2. Attempt Lifecycle ──────────────────────────────────────────
	attempts := router.Group("/api/v1/attempts")
	{
		// Starting an attempt mints the token the other routes require.
		attempts.POST("", handlers.Attempt.Start)

		authed := attempts.Group("/:attempt_id")
		authed.Use(middleware.RequireAttemptToken(tokenService))
		{
			authed.GET("", handlers.Attempt.State)
			authed.POST("/next", handlers.Attempt.Next)
			authed.POST("/previous", handlers.Attempt.Previous)
			authed.PUT("/section", handlers.Attempt.SelectSection)
			authed.PUT("/question", handlers.Attempt.SelectQuestion)
			authed.PUT("/answer", handlers.Attempt.Answer)
			authed.DELETE("/answer", handlers.Attempt.ClearAnswer)
			authed.POST("/review", handlers.Attempt.ToggleReview)
			authed.POST("/submit", handlers.Attempt.Submit)
		}
	}

	// ─── 3. WebSocket Group (Attempt Token via ?token=) ────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireAttemptToken(tokenService))
	{
		ws.GET("/attempts/:attempt_id/timer", handlers.WS.TimerStream)
	}

	return router
}
