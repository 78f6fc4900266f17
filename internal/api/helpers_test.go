package api

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/ingredient-macros/backend/internal/model"
	"github.com/pageza/ingredient-macros/backend/internal/service"
)

// MockImageService implements service.IImageService for testing
type MockImageService struct {
	mock.Mock
}

func (m *MockImageService) ImageURL(ctx context.Context, ing model.Ingredient) (string, error) {
	args := m.Called(ctx, ing)
	return args.String(0), args.Error(1)
}

// fixtureIngredients is the dataset shared by handler tests
func fixtureIngredients() []model.Ingredient {
	return []model.Ingredient{
		{
			ID:      1,
			Name:    "Rice",
			ImageID: model.ImageID("7"),
			Macronutrients: []model.MacronutrientEntry{
				{Name: "carbohydrate", Value: 28.0, Unit: "g"},
				{Name: "protein", Value: 2.7, Unit: "g"},
			},
		},
		{
			ID:      2,
			Name:    "Beans",
			ImageID: model.ImageID(`"beans.png"`),
			Macronutrients: []model.MacronutrientEntry{
				{Name: "protein", Value: 4.8, Unit: "g"},
				{Name: "iron", Value: 1.3, Unit: "mg"},
			},
		},
		{
			ID:   3,
			Name: "Water",
		},
	}
}

// SetupTestRouter builds a gin engine over the fixture dataset
func SetupTestRouter(images service.IImageService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	SetupAPI(router, service.NewIngredientStore(fixtureIngredients()), images)
	return router
}
