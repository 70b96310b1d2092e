package handlers

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/tourdetaxa/bogfoering-backend/cmd/docs"
	portssvc "github.com/tourdetaxa/bogfoering-backend/internal/core/ports/services"
	"github.com/tourdetaxa/bogfoering-backend/internal/middleware"
	"github.com/tourdetaxa/bogfoering-backend/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	registerHomeRoutes(r)

	// Public authentication routes (rate limited)
	registerAuthRoutes(r, services)

	// The OAuth redirect target is public; Google calls it without a token.
	registerDriveCallbackRoute(r, services.Drive, cfg)

	// Everything under /api requires a valid bearer token
	setupAPIRoutes(r, cfg, services)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIRoutes configures the /api group and delegates to the entity route registrations
func setupAPIRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	api := r.Group("/api", middleware.AuthMiddleware(cfg.JWTSecret))

	registerMeRoutes(api, services.User)
	registerAdminRoutes(api, services)
	registerSettingsRoutes(api, services.Settings, services.User)
	registerTransactionRoutes(api, services.Transaction, services.User)
	registerDashboardRoutes(api, services.Dashboard, services.Settings, services.User)
	registerExportRoutes(api, services.Export, services.User)
	registerDriveRoutes(api, services.Drive, services.User, cfg)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
