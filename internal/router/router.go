package router

import (
	"github.com/gin-gonic/gin"

	"parakh/internal/auth"
	"parakh/internal/handler"
	"parakh/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	validator *auth.TokenValidator,
	corsOrigins []string,
	reconH *handler.ReconciliationHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(corsOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(validator))

	recon := protected.Group("/reconciliations")
	recon.POST("", reconH.Create)
	recon.GET("", reconH.List)
	recon.GET("/:id", reconH.GetByID)
	recon.GET("/:id/export", reconH.Export)
	recon.GET("/:id/source/:kind", reconH.SourceURL)

	return r
}
