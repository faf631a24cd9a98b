package handlers

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/vidora-app/vidora_backend/cmd/docs"
	portssvc "github.com/vidora-app/vidora_backend/internal/core/ports/services"
	"github.com/vidora-app/vidora_backend/internal/middleware"
	"github.com/vidora-app/vidora_backend/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	RegisterCustomValidations()

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/", getHome)

	// Registration and session lifecycle routes
	registerAuthRoutes(r, cfg, services.Auth)

	// Setup API v1 routes, passing service interfaces
	setupAPIV1Routes(r, cfg, services)

	// Swagger routes (not available in production)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 groups and delegates to the
// per-entity route registrations. Two groups exist: one that requires
// authentication and one where the viewer identity is optional.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	authed := r.Group("/api/v1", middleware.AuthMiddleware(services.Auth, cfg.AccessTokenCookieName))
	viewer := r.Group("/api/v1", middleware.OptionalAuthMiddleware(services.Auth, cfg.AccessTokenCookieName))

	registerUserRoutes(authed, services.User, services.Video)
	registerChannelRoutes(viewer, services.User)
	registerSubscriptionRoutes(authed, services.Subscription)
	registerVideoRoutes(viewer, authed, services.Video)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
