package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/pageza/ingredient-macros/backend/internal/model"
)

// ErrIngredientNotFound is returned when no ingredient carries the requested id.
var ErrIngredientNotFound = errors.New("ingredient not found")

// DatasetLoadError reports a dataset source that is missing or malformed.
type DatasetLoadError struct {
	Source string
	Err    error
}

func (e *DatasetLoadError) Error() string {
	return fmt.Sprintf("failed to load dataset from %s: %v", e.Source, e.Err)
}

func (e *DatasetLoadError) Unwrap() error {
	return e.Err
}

// IngredientStore is the in-memory, read-only ingredient dataset. It is built
// once at startup and shared by all requests without locking.
type IngredientStore struct {
	ingredients []model.Ingredient
	byID        map[int]int
}

// NewIngredientStore builds a store over a copy of items, preserving order.
// When ids repeat, the first occurrence wins.
func NewIngredientStore(items []model.Ingredient) *IngredientStore {
	s := &IngredientStore{
		ingredients: make([]model.Ingredient, len(items)),
		byID:        make(map[int]int, len(items)),
	}
	for i, ing := range items {
		s.ingredients[i] = ing.Clone()
		if _, dup := s.byID[ing.ID]; dup {
			log.Printf("[IngredientStore] Duplicate ingredient id %d at position %d ignored for lookups", ing.ID, i)
			continue
		}
		s.byID[ing.ID] = i
	}
	return s
}

// LoadIngredientStore reads the source once and returns the populated store.
// Any source failure is fatal to the caller: there is no empty-store fallback.
func LoadIngredientStore(ctx context.Context, src IngredientSource) (*IngredientStore, error) {
	items, err := src.Load(ctx)
	if err != nil {
		return nil, &DatasetLoadError{Source: src.String(), Err: err}
	}

	store := NewIngredientStore(items)
	log.Printf("[IngredientStore] Loaded %d ingredients from %s", store.Len(), src)
	return store, nil
}

// FindByID returns the ingredient with the given id.
func (s *IngredientStore) FindByID(id int) (model.Ingredient, error) {
	idx, ok := s.byID[id]
	if !ok {
		return model.Ingredient{}, fmt.Errorf("%w: id %d", ErrIngredientNotFound, id)
	}
	return s.ingredients[idx].Clone(), nil
}

// ListAll returns every ingredient in load order.
func (s *IngredientStore) ListAll() []model.Ingredient {
	out := make([]model.Ingredient, len(s.ingredients))
	for i, ing := range s.ingredients {
		out[i] = ing.Clone()
	}
	return out
}

// Len returns the number of loaded records, duplicates included.
func (s *IngredientStore) Len() int {
	return len(s.ingredients)
}
