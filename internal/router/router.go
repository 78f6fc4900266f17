package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pageza/ingredient-macros/backend/internal/api"
	"github.com/pageza/ingredient-macros/backend/internal/middleware"
	"github.com/pageza/ingredient-macros/backend/internal/service"
)

// SetupRouter configures the application routes. limiter may be nil to
// disable rate limiting.
func SetupRouter(
	ingredients service.IIngredientService,
	images service.IImageService,
	limiter middleware.Limiter,
) *gin.Engine {
	router := gin.New()

	router.Use(gin.Logger())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.Metrics())

	// CORS middleware
	router.Use(middleware.CORS())

	router.NoRoute(middleware.NotFound())

	// Scrapes are not rate limited
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	routes := router.Group("")
	if limiter != nil {
		routes.Use(middleware.RateLimitMiddleware(limiter))
	}
	api.SetupAPI(routes, ingredients, images)

	return router
}
