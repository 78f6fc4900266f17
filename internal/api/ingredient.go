package api

import (
	"errors"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pageza/ingredient-macros/backend/internal/middleware"
	"github.com/pageza/ingredient-macros/backend/internal/model"
	"github.com/pageza/ingredient-macros/backend/internal/service"
	"github.com/pageza/ingredient-macros/backend/internal/types"
)

const (
	ListIngredientsPath   = "/ingredientes"
	IngredientExamplePath = "/ingrediente/1?gramas=150"

	gramsQueryParam = "gramas"
	notFoundMessage = "Ingredient not found"
)

type IngredientHandler struct {
	ingredients service.IIngredientService
	images      service.IImageService
}

// NewIngredientHandler creates the handler. images may be nil when no image
// storage is configured.
func NewIngredientHandler(ingredients service.IIngredientService, images service.IImageService) *IngredientHandler {
	return &IngredientHandler{
		ingredients: ingredients,
		images:      images,
	}
}

func (h *IngredientHandler) RegisterRoutes(router gin.IRoutes) {
	router.GET("/", h.Home)
	router.GET(ListIngredientsPath, h.ListIngredients)
	router.GET("/ingrediente/:id", h.GetIngredient)
	router.GET("/ingrediente/:id/imagem", h.GetIngredientImage)
	router.GET("/health", h.Health)
}

func (h *IngredientHandler) Home(c *gin.Context) {
	c.JSON(http.StatusOK, types.HomeResponse{
		Message: "Ingredients API is up!",
		Routes: types.HomeRoutes{
			ListIngredients:   ListIngredientsPath,
			IngredientExample: IngredientExamplePath,
		},
	})
}

func (h *IngredientHandler) ListIngredients(c *gin.Context) {
	c.JSON(http.StatusOK, h.ingredients.ListAll())
}

func (h *IngredientHandler) GetIngredient(c *gin.Context) {
	ing, ok := h.lookup(c)
	if !ok {
		return
	}

	result := service.Scale(ing, parseGrams(c))
	if !result.Finite() {
		middleware.AbortWithError(c, http.StatusBadRequest, "Scaled values out of range")
		return
	}

	c.JSON(http.StatusOK, types.ScaledIngredientResponse{
		ID:             result.ID,
		Name:           result.Name,
		ImageID:        result.ImageID,
		Gramas:         result.Grams,
		Macronutrients: result.Macronutrients,
	})
}

func (h *IngredientHandler) GetIngredientImage(c *gin.Context) {
	if h.images == nil {
		middleware.AbortWithError(c, http.StatusServiceUnavailable, "Image storage not configured")
		return
	}

	ing, ok := h.lookup(c)
	if !ok {
		return
	}

	url, err := h.images.ImageURL(c.Request.Context(), ing)
	if errors.Is(err, service.ErrNoImage) {
		middleware.AbortWithError(c, http.StatusNotFound, "Ingredient has no image")
		return
	}
	if err != nil {
		log.Printf("[IngredientHandler] image lookup failed: %v", err)
		middleware.AbortWithError(c, http.StatusBadGateway, "Failed to resolve image")
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, url)
}

func (h *IngredientHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, types.HealthResponse{
		Status:      "ok",
		Ingredients: h.ingredients.Len(),
	})
}

// lookup resolves the :id parameter, writing the 404 response itself when the
// id is not an integer or not in the dataset.
func (h *IngredientHandler) lookup(c *gin.Context) (ing model.Ingredient, ok bool) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		middleware.AbortWithError(c, http.StatusNotFound, notFoundMessage)
		return ing, false
	}

	ing, err = h.ingredients.FindByID(id)
	if err != nil {
		middleware.AbortWithError(c, http.StatusNotFound, notFoundMessage)
		return ing, false
	}
	return ing, true
}

// parseID accepts unsigned decimal ids only; strconv.Atoi alone would also
// take a leading sign.
func parseID(raw string) (int, error) {
	if raw == "" || raw[0] < '0' || raw[0] > '9' {
		return 0, strconv.ErrSyntax
	}
	return strconv.Atoi(raw)
}

// parseGrams reads ?gramas=, falling back to the 100 g reference when the
// parameter is absent, unparsable or not finite.
func parseGrams(c *gin.Context) float64 {
	raw, ok := c.GetQuery(gramsQueryParam)
	if !ok {
		return service.ReferenceGrams
	}
	grams, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(grams) || math.IsInf(grams, 0) {
		return service.ReferenceGrams
	}
	return grams
}
