package types

import "github.com/pageza/ingredient-macros/backend/internal/model"

// ScaledIngredientResponse is the body of GET /ingrediente/:id
type ScaledIngredientResponse struct {
	ID             int                        `json:"id"`
	Name           string                     `json:"name"`
	ImageID        model.ImageID              `json:"imageId"`
	Gramas         float64                    `json:"gramas"`
	Macronutrients []model.MacronutrientEntry `json:"macronutrients"`
}

// HomeResponse describes the available routes
type HomeResponse struct {
	Message string     `json:"message"`
	Routes  HomeRoutes `json:"routes"`
}

// HomeRoutes lists example paths for the informational root route
type HomeRoutes struct {
	ListIngredients   string `json:"list_ingredients"`
	IngredientExample string `json:"ingredient_example"`
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status      string `json:"status"`
	Ingredients int    `json:"ingredients"`
}
