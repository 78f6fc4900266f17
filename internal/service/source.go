package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/pageza/ingredient-macros/backend/internal/model"
)

// IngredientSource produces the ingredient dataset in source order.
type IngredientSource interface {
	Load(ctx context.Context) ([]model.Ingredient, error)
	String() string
}

// FileSource reads a JSON or YAML dataset file.
type FileSource struct {
	Path string
}

// NewFileSource creates a new FileSource instance
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

func (s *FileSource) String() string {
	return "file " + s.Path
}

// Load reads and decodes the whole file.
func (s *FileSource) Load(ctx context.Context) ([]model.Ingredient, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(s.Path)) {
	case ".yaml", ".yml":
		data, err = yamlToJSON(data)
		if err != nil {
			return nil, err
		}
	}

	return DecodeDataset(data)
}

// datasetMacronutrient accepts both the Portuguese file keys and English ones.
type datasetMacronutrient struct {
	Macronutriente *string  `json:"macronutriente"`
	Valor          *float64 `json:"valor"`
	Unidade        *string  `json:"unidade"`

	Name  *string  `json:"name"`
	Value *float64 `json:"value"`
	Unit  *string  `json:"unit"`
}

type datasetRecord struct {
	IDIngrediente   *int                   `json:"idIngrediente"`
	NomeIngrediente *string                `json:"nomeIngrediente"`
	IDImage         model.ImageID          `json:"idImage"`
	Macronutrientes []datasetMacronutrient `json:"macronutrientes"`

	ID             *int                   `json:"id"`
	Name           *string                `json:"name"`
	ImageID        model.ImageID          `json:"imageId"`
	Macronutrients []datasetMacronutrient `json:"macronutrients"`
}

// DecodeDataset parses a JSON array of ingredient records.
func DecodeDataset(data []byte) ([]model.Ingredient, error) {
	var records []datasetRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse dataset: %w", err)
	}

	items := make([]model.Ingredient, 0, len(records))
	for i, rec := range records {
		ing, err := rec.toIngredient()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		items = append(items, ing)
	}
	return items, nil
}

func (r datasetRecord) toIngredient() (model.Ingredient, error) {
	id := firstNonNil(r.IDIngrediente, r.ID)
	if id == nil {
		return model.Ingredient{}, errors.New("missing ingredient id")
	}

	ing := model.Ingredient{
		ID:      *id,
		ImageID: r.IDImage,
	}
	if name := firstNonNil(r.NomeIngrediente, r.Name); name != nil {
		ing.Name = *name
	}
	if ing.ImageID.IsZero() {
		ing.ImageID = r.ImageID
	}

	macros := r.Macronutrientes
	if macros == nil {
		macros = r.Macronutrients
	}
	ing.Macronutrients = make([]model.MacronutrientEntry, len(macros))
	for i, m := range macros {
		entry := model.MacronutrientEntry{}
		if name := firstNonNil(m.Macronutriente, m.Name); name != nil {
			entry.Name = *name
		}
		if value := firstNonNil(m.Valor, m.Value); value != nil {
			entry.Value = *value
		}
		if unit := firstNonNil(m.Unidade, m.Unit); unit != nil {
			entry.Unit = *unit
		}
		ing.Macronutrients[i] = entry
	}
	return ing, nil
}

func firstNonNil[T any](values ...*T) *T {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

func yamlToJSON(data []byte) ([]byte, error) {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse dataset: %w", err)
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to convert dataset: %w", err)
	}
	return out, nil
}

// DatabaseSource reads the dataset imported by the seed command.
type DatabaseSource struct {
	db *gorm.DB
}

// NewDatabaseSource creates a new DatabaseSource instance
func NewDatabaseSource(db *gorm.DB) *DatabaseSource {
	return &DatabaseSource{db: db}
}

func (s *DatabaseSource) String() string {
	return "database " + s.db.Dialector.Name()
}

// Load queries every ingredient ordered by import position.
func (s *DatabaseSource) Load(ctx context.Context) ([]model.Ingredient, error) {
	var records []model.IngredientRecord
	err := s.db.WithContext(ctx).
		Preload("Macronutrients", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		Order("position").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query ingredients: %w", err)
	}

	items := make([]model.Ingredient, len(records))
	for i, rec := range records {
		items[i] = rec.ToIngredient()
	}
	return items, nil
}
