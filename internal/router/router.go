package router

import (
	"github.com/gin-gonic/gin"

	"github.com/forkful/backend/internal/api"
	"github.com/forkful/backend/internal/middleware"
)

// SetupRouter configures the application routes
func SetupRouter(
	siteURL string,
	authHandler *api.AuthHandler,
	recipeHandler *api.RecipeHandler,
	profileHandler *api.ProfileHandler,
	imageHandler *api.ImageHandler,
) *gin.Engine {
	router := gin.Default()

	// CORS middleware
	router.Use(middleware.CORS(siteURL))

	// API v1 routes
	v1 := router.Group("/api/v1")

	authHandler.RegisterRoutes(v1)
	recipeHandler.RegisterRoutes(v1)
	profileHandler.RegisterRoutes(v1)
	imageHandler.RegisterRoutes(v1)

	return router
}
