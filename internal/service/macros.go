package service

import (
	"math"

	"github.com/pageza/ingredient-macros/backend/internal/model"
)

// ReferenceGrams is the quantity every dataset value is expressed against.
const ReferenceGrams = 100.0

const scaledPrecision = 1e6

// ScaledResult holds an ingredient's macronutrients scaled to Grams.
type ScaledResult struct {
	ID             int
	Name           string
	ImageID        model.ImageID
	Grams          float64
	Macronutrients []model.MacronutrientEntry
}

// Scale computes value*grams/100 for every macronutrient, in order, rounded to
// six decimals. grams is not bounded: zero, negative and very large
// quantities are applied as given.
func Scale(ing model.Ingredient, grams float64) ScaledResult {
	result := ScaledResult{
		ID:             ing.ID,
		Name:           ing.Name,
		ImageID:        ing.ImageID,
		Grams:          grams,
		Macronutrients: make([]model.MacronutrientEntry, len(ing.Macronutrients)),
	}
	for i, m := range ing.Macronutrients {
		result.Macronutrients[i] = model.MacronutrientEntry{
			Name:  m.Name,
			Value: roundScaled(m.Value * grams / ReferenceGrams),
			Unit:  m.Unit,
		}
	}
	return result
}

// Finite reports whether every scaled value can be represented in JSON.
func (r ScaledResult) Finite() bool {
	for _, m := range r.Macronutrients {
		if math.IsInf(m.Value, 0) || math.IsNaN(m.Value) {
			return false
		}
	}
	return true
}

// roundScaled rounds half away from zero at the sixth decimal. Values too large
// to carry six decimals are already exact at that precision and are returned as is.
func roundScaled(v float64) float64 {
	shifted := v * scaledPrecision
	if math.IsInf(shifted, 0) || math.IsNaN(shifted) {
		return v
	}
	return math.Round(shifted) / scaledPrecision
}
