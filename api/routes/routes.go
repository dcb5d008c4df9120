package routes

import (
	"net/http"

	"github.com/ArowuTest/bridgetunes-spin-wheel/internal/config"
	"github.com/ArowuTest/bridgetunes-spin-wheel/internal/handlers"
	"github.com/ArowuTest/bridgetunes-spin-wheel/internal/middleware"
	"github.com/gin-gonic/gin"
)

// HandlerDependencies holds the handlers mounted by SetupRouter
type HandlerDependencies struct {
	SpinHandler  *handlers.SpinHandler
	AuthHandler  *handlers.AuthHandler
	AdminHandler *handlers.AdminHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps HandlerDependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	// Add middleware
	router.Use(middleware.CORSMiddleware(cfg.Server.AllowedOrigins))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())

	// Wheel endpoint, kept at its original path
	router.POST("/api/spin", deps.SpinHandler.Spin)

	// Public routes
	public := router.Group("/api/v1")
	{
		// Health check
		public.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status": "ok",
			})
		})

		// Auth routes
		auth := public.Group("/auth")
		{
			auth.POST("/login", deps.AuthHandler.Login)
		}
	}

	// Protected routes
	admin := router.Group("/api/v1/admin")
	if cfg.AdminEnabled() {
		admin.Use(middleware.JWTAuthMiddleware(cfg.JWT.Secret))
	} else {
		admin.Use(func(c *gin.Context) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Admin API is disabled"})
		})
	}
	{
		spins := admin.Group("/spins")
		{
			spins.GET("", deps.AdminHandler.ListSpins)
			spins.GET("/stats", deps.AdminHandler.GetDailyStats)
			spins.GET("/export", deps.AdminHandler.ExportSpinsCSV)
		}
		admin.GET("/prizes", deps.AdminHandler.GetPrizes)
	}

	return router
}
