package api

import (
	"github.com/gin-gonic/gin"

	"github.com/pageza/ingredient-macros/backend/internal/service"
)

// SetupAPI registers the ingredient routes on router, which may be a
// rate-limited group.
func SetupAPI(router gin.IRoutes, ingredients service.IIngredientService, images service.IImageService) {
	ingredientHandler := NewIngredientHandler(ingredients, images)
	ingredientHandler.RegisterRoutes(router)
}
