package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageIDKeepsJSONScalarKind(t *testing.T) {
	var numeric, text struct {
		ImageID ImageID `json:"imageId"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"imageId": 7}`), &numeric))
	require.NoError(t, json.Unmarshal([]byte(`{"imageId": "rice-01"}`), &text))

	out, err := json.Marshal(numeric)
	require.NoError(t, err)
	assert.JSONEq(t, `{"imageId": 7}`, string(out))

	out, err = json.Marshal(text)
	require.NoError(t, err)
	assert.JSONEq(t, `{"imageId": "rice-01"}`, string(out))

	assert.Equal(t, "7", numeric.ImageID.String())
	assert.Equal(t, "rice-01", text.ImageID.String())
}

func TestImageIDNull(t *testing.T) {
	var v struct {
		ImageID ImageID `json:"imageId"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"imageId": null}`), &v))
	assert.True(t, v.ImageID.IsZero())
	assert.Equal(t, "", v.ImageID.String())

	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"imageId": null}`, string(out))
}

func TestImageIDValueScan(t *testing.T) {
	id := ImageID(`"abc"`)
	value, err := id.Value()
	require.NoError(t, err)
	assert.Equal(t, `"abc"`, value)

	var scanned ImageID
	require.NoError(t, scanned.Scan([]byte(`"abc"`)))
	assert.Equal(t, "abc", scanned.String())

	require.NoError(t, scanned.Scan(nil))
	assert.True(t, scanned.IsZero())

	assert.Error(t, scanned.Scan(42))
}

func TestIngredientCloneIsDeep(t *testing.T) {
	orig := Ingredient{
		ID:      1,
		Name:    "Arroz",
		ImageID: ImageID("7"),
		Macronutrients: []MacronutrientEntry{
			{Name: "carboidrato", Value: 28, Unit: "g"},
		},
	}

	clone := orig.Clone()
	clone.Macronutrients[0].Value = 99
	clone.ImageID[0] = '9'

	assert.Equal(t, 28.0, orig.Macronutrients[0].Value)
	assert.Equal(t, "7", orig.ImageID.String())
}

func TestIngredientRecordRoundTrip(t *testing.T) {
	ing := Ingredient{
		ID:      3,
		Name:    "Feijão",
		ImageID: ImageID("12"),
		Macronutrients: []MacronutrientEntry{
			{Name: "proteina", Value: 4.8, Unit: "g"},
			{Name: "ferro", Value: 1.3, Unit: "mg"},
		},
	}

	rec := NewIngredientRecord(5, ing)
	assert.Equal(t, 5, rec.Position)
	assert.Equal(t, 3, rec.IngredientID)
	require.Len(t, rec.Macronutrients, 2)
	assert.Equal(t, 1, rec.Macronutrients[1].Position)

	assert.Equal(t, ing, rec.ToIngredient())
}

func TestIngredientCloneKeepsEmptySlices(t *testing.T) {
	clone := Ingredient{ID: 2, Macronutrients: []MacronutrientEntry{}}.Clone()
	assert.NotNil(t, clone.Macronutrients)
	assert.Empty(t, clone.Macronutrients)

	assert.Nil(t, Ingredient{ID: 3}.Clone().Macronutrients)
}
