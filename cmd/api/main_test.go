package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/ingredient-macros/backend/config"
	"github.com/pageza/ingredient-macros/backend/internal/middleware"
	"github.com/pageza/ingredient-macros/backend/internal/model"
	"github.com/pageza/ingredient-macros/backend/internal/router"
	"github.com/pageza/ingredient-macros/backend/internal/service"
)

func TestNewLimiterDisabledByDefault(t *testing.T) {
	t.Setenv("RATE_LIMIT", "")
	t.Setenv("RATE_LIMIT_WINDOW", "")
	t.Setenv("REDIS_URL", "")
	t.Setenv("SECRETS_DIR", t.TempDir())

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	limiter, client := newLimiter(context.Background(), cfg)
	assert.Nil(t, limiter)
	assert.Nil(t, client)

	gin.SetMode(gin.TestMode)
	store := service.NewIngredientStore([]model.Ingredient{
		{ID: 1, Name: "Arroz", Macronutrients: []model.MacronutrientEntry{{Name: "carboidrato", Value: 28, Unit: "g"}}},
	})
	r := router.SetupRouter(store, nil, limiter)

	// Requests stay independent: no request is rejected because of earlier ones.
	for i := 0; i < 650; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ingrediente/1?gramas=150", nil))
		require.Equal(t, http.StatusOK, w.Code, "request %d", i)
	}
}

func TestNewLimiterLocalFallback(t *testing.T) {
	cfg := &config.Config{RateLimit: 5, RateLimitWindow: time.Minute}

	limiter, client := newLimiter(context.Background(), cfg)
	assert.IsType(t, &middleware.LocalLimiter{}, limiter)
	assert.Nil(t, client)

	cfg.RedisURL = "redis://127.0.0.1:1/0"
	limiter, client = newLimiter(context.Background(), cfg)
	assert.IsType(t, &middleware.LocalLimiter{}, limiter)
	assert.Nil(t, client)
	assert.Equal(t, 5, limiter.Config().Limit)
}

func TestCloseRedisNil(t *testing.T) {
	assert.NotPanics(t, func() { closeRedis(nil) })
}
