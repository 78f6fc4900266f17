package service

import (
	"context"

	"github.com/pageza/ingredient-macros/backend/internal/model"
)

// IIngredientService defines the read-only dataset operations
type IIngredientService interface {
	FindByID(id int) (model.Ingredient, error)
	ListAll() []model.Ingredient
	Len() int
}

// IImageService defines image URL resolution
type IImageService interface {
	ImageURL(ctx context.Context, ing model.Ingredient) (string, error)
}

var (
	_ IIngredientService = (*IngredientStore)(nil)
	_ IImageService      = (*ImageService)(nil)
)
