package router

import (
	"net/http"

	"visitas/internal/handler"
	"visitas/internal/i18n"
	"visitas/internal/middleware"
	"visitas/internal/services"
	"visitas/internal/types"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// NewRouter wires the middleware chain and all API routes.
func NewRouter(
	serverHandler *handler.Server,
	configManager types.ConfigManager,
	authService *services.AuthService,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Register global middleware
	router.Use(middleware.Recovery())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.Logger(configManager.GetLogConfig()))
	router.Use(middleware.CORS(configManager.GetCORSConfig()))
	router.Use(middleware.RateLimiter(configManager.GetPerformanceConfig()))
	router.Use(middleware.SecurityHeaders())
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	registerSystemRoutes(router, serverHandler)
	registerAPIRoutes(router, serverHandler, authService)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not Found"})
	})

	return router
}

// registerSystemRoutes registers system-level routes
func registerSystemRoutes(router *gin.Engine, serverHandler *handler.Server) {
	router.GET("/health", serverHandler.Health)
}

// registerAPIRoutes registers API routes
func registerAPIRoutes(router *gin.Engine, serverHandler *handler.Server, authService *services.AuthService) {
	api := router.Group("/api")
	api.Use(i18n.Middleware())

	// Public routes
	api.POST("/auth/login", serverHandler.Login)

	// Protected routes
	protected := api.Group("")
	protected.Use(middleware.Auth(authService))
	registerProtectedAPIRoutes(protected, serverHandler)
}

// registerProtectedAPIRoutes registers routes that require authentication.
func registerProtectedAPIRoutes(api *gin.RouterGroup, serverHandler *handler.Server) {
	auth := api.Group("/auth")
	{
		auth.GET("/me", serverHandler.Me)
		auth.PUT("/password", serverHandler.ChangePassword)

		users := auth.Group("/users")
		users.Use(middleware.RequireAdmin())
		{
			users.GET("", serverHandler.ListUsers)
			users.POST("", serverHandler.CreateUser)
			users.DELETE("/:id", serverHandler.DeactivateUser)
		}
	}

	visitors := api.Group("/visitors")
	{
		visitors.POST("", serverHandler.CreateEntry)
		visitors.GET("", serverHandler.ListEntries)
		visitors.GET("/estadisticas", serverHandler.GetEntryStats)
		visitors.GET("/:id", serverHandler.GetEntry)
		visitors.PUT("/:id", serverHandler.UpdateEntry)
		visitors.DELETE("/:id", serverHandler.DeleteEntry)
	}

	reports := api.Group("/reports")
	{
		reports.GET("/dashboard", serverHandler.GetDashboard)
		reports.GET("/range", serverHandler.GetDateRangeReport)
		reports.GET("/monthly", serverHandler.GetMonthlyReport)
		reports.GET("/floors/:id", serverHandler.GetFloorReport)
		reports.GET("/export", serverHandler.ExportReport)
	}

	config := api.Group("/config")
	{
		// Entry forms need the active floor list, so reading floors is not
		// restricted to admins
		config.GET("/floors", serverHandler.ListFloors)
		config.GET("", serverHandler.GetSettings)

		admin := config.Group("")
		admin.Use(middleware.RequireAdmin())
		{
			admin.PUT("", serverHandler.UpdateSettings)
			admin.POST("/floors", serverHandler.CreateFloor)
			admin.PUT("/floors/:id", serverHandler.UpdateFloor)
			admin.DELETE("/floors/:id", serverHandler.DeactivateFloor)
			admin.POST("/floors/:id/reactivate", serverHandler.ReactivateFloor)
		}
	}
}
