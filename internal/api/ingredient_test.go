package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/ingredient-macros/backend/internal/model"
	"github.com/pageza/ingredient-macros/backend/internal/service"
	"github.com/pageza/ingredient-macros/backend/internal/types"
)

func get(t *testing.T, handler http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestHome(t *testing.T) {
	router := SetupTestRouter(nil)

	w := get(t, router, "/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"message": "Ingredients API is up!",
		"routes": {
			"list_ingredients": "/ingredientes",
			"ingredient_example": "/ingrediente/1?gramas=150"
		}
	}`, w.Body.String())
}

func TestListIngredients(t *testing.T) {
	router := SetupTestRouter(nil)

	w := get(t, router, "/ingredientes")
	require.Equal(t, http.StatusOK, w.Code)

	var got []model.Ingredient
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, len(fixtureIngredients()))
	for i, ing := range fixtureIngredients() {
		assert.Equal(t, ing.ID, got[i].ID)
		assert.Equal(t, ing.Name, got[i].Name)
	}

	// values are the unscaled 100 g reference
	assert.Equal(t, 28.0, got[0].Macronutrients[0].Value)
	assert.Contains(t, w.Body.String(), `"imageId":"beans.png"`)
}

func TestGetIngredientScaled(t *testing.T) {
	router := SetupTestRouter(nil)

	w := get(t, router, "/ingrediente/1?gramas=150")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"id": 1,
		"name": "Rice",
		"imageId": 7,
		"gramas": 150,
		"macronutrients": [
			{"name": "carbohydrate", "value": 42.0, "unit": "g"},
			{"name": "protein", "value": 4.05, "unit": "g"}
		]
	}`, w.Body.String())
}

func TestGetIngredientDefaultGrams(t *testing.T) {
	router := SetupTestRouter(nil)

	tests := []struct {
		name string
		path string
	}{
		{name: "absent", path: "/ingrediente/1"},
		{name: "unparsable", path: "/ingrediente/1?gramas=abc"},
		{name: "empty", path: "/ingrediente/1?gramas="},
		{name: "nan", path: "/ingrediente/1?gramas=NaN"},
		{name: "infinite", path: "/ingrediente/1?gramas=inf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(t, router, tt.path)
			require.Equal(t, http.StatusOK, w.Code)

			var resp types.ScaledIngredientResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, 100.0, resp.Gramas)
			assert.Equal(t, fixtureIngredients()[0].Macronutrients, resp.Macronutrients)
		})
	}
}

func TestGetIngredientPermissiveGrams(t *testing.T) {
	router := SetupTestRouter(nil)

	w := get(t, router, "/ingrediente/2?gramas=-50")
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.ScaledIngredientResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, -50.0, resp.Gramas)
	assert.InDelta(t, -2.4, resp.Macronutrients[0].Value, 1e-9)
	assert.Equal(t, "mg", resp.Macronutrients[1].Unit)

	w = get(t, router, "/ingrediente/2?gramas=1e308")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetIngredientWithoutMacronutrients(t *testing.T) {
	router := SetupTestRouter(nil)

	w := get(t, router, "/ingrediente/3?gramas=250")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":3,"name":"Water","imageId":null,"gramas":250,"macronutrients":[]}`, w.Body.String())
}

func TestParseID(t *testing.T) {
	for _, raw := range []string{"1", "42", "007"} {
		_, err := parseID(raw)
		assert.NoError(t, err, raw)
	}
	for _, raw := range []string{"", "+1", "-1", " 1", "1.0", "abc"} {
		_, err := parseID(raw)
		assert.Error(t, err, raw)
	}
}

func TestGetIngredientNotFound(t *testing.T) {
	router := SetupTestRouter(nil)

	for _, path := range []string{"/ingrediente/9999", "/ingrediente/999?gramas=10", "/ingrediente/rice", "/ingrediente/-1", "/ingrediente/+1", "/ingrediente/%2B1"} {
		w := get(t, router, path)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.JSONEq(t, `{"error":"Ingredient not found"}`, w.Body.String(), path)
	}
}

func TestGetIngredientImage(t *testing.T) {
	images := new(MockImageService)
	router := SetupTestRouter(images)

	images.On("ImageURL", mock.Anything, mock.MatchedBy(func(ing model.Ingredient) bool { return ing.ID == 1 })).
		Return("https://bucket.s3.amazonaws.com/ingredients/7?X-Amz-Signature=abc", nil)
	images.On("ImageURL", mock.Anything, mock.MatchedBy(func(ing model.Ingredient) bool { return ing.ID == 3 })).
		Return("", service.ErrNoImage)
	images.On("ImageURL", mock.Anything, mock.MatchedBy(func(ing model.Ingredient) bool { return ing.ID == 2 })).
		Return("", errors.New("presign failed"))

	w := get(t, router, "/ingrediente/1/imagem")
	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Equal(t, "https://bucket.s3.amazonaws.com/ingredients/7?X-Amz-Signature=abc", w.Header().Get("Location"))

	w = get(t, router, "/ingrediente/3/imagem")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Ingredient has no image"}`, w.Body.String())

	w = get(t, router, "/ingrediente/2/imagem")
	assert.Equal(t, http.StatusBadGateway, w.Code)

	w = get(t, router, "/ingrediente/42/imagem")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Ingredient not found"}`, w.Body.String())

	images.AssertExpectations(t)
}

func TestGetIngredientImageNotConfigured(t *testing.T) {
	router := SetupTestRouter(nil)

	w := get(t, router, "/ingrediente/1/imagem")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"error":"Image storage not configured"}`, w.Body.String())
}

func TestHealth(t *testing.T) {
	router := SetupTestRouter(nil)

	w := get(t, router, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","ingredients":3}`, w.Body.String())
}
