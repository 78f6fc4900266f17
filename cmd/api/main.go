package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/pageza/ingredient-macros/backend/config"
	"github.com/pageza/ingredient-macros/backend/internal/api"
	"github.com/pageza/ingredient-macros/backend/internal/database"
	"github.com/pageza/ingredient-macros/backend/internal/middleware"
	"github.com/pageza/ingredient-macros/backend/internal/server"
	"github.com/pageza/ingredient-macros/backend/internal/service"
)

func main() {
	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Environment.ReleaseMode() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	// The dataset is loaded once; a missing or malformed source stops startup.
	store, err := loadStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to load ingredients: %v", err)
	}

	var images service.IImageService
	if cfg.ImagesEnabled() {
		s3Config, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to configure image storage: %v", err)
		}
		images = service.NewImageService(s3Config, cfg.S3ImagePrefix, cfg.ImageURLTTL)
		log.Printf("Serving ingredient images from bucket %s", cfg.S3BucketName)
	}

	limiter, redisClient := newLimiter(ctx, cfg)

	// Create and start server
	srv := server.New(cfg, store, images, limiter)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)

	go func() {
		log.Println("🚀 Ingredients API starting...")
		log.Printf("✅ All ingredients: %s%s", cfg.BaseURL(), api.ListIngredientsPath)
		log.Printf("✅ Single ingredient (150g example): %s%s", cfg.BaseURL(), api.IngredientExamplePath)
		errChan <- srv.Start()
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or error
	select {
	case err := <-errChan:
		closeRedis(redisClient)
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
		return
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	// Gracefully shutdown the server
	log.Println("Shutting down server...")
	shutdownErr := srv.Shutdown(context.Background())
	closeRedis(redisClient)
	if shutdownErr != nil {
		log.Fatalf("Server shutdown error: %v", shutdownErr)
	}
	log.Println("Server stopped")
}

// closeRedis releases the rate limiter's Redis connection, if any.
func closeRedis(client *redis.Client) {
	if client == nil {
		return
	}
	if err := client.Close(); err != nil {
		log.Printf("Failed to close Redis client: %v", err)
	}
}

func loadStore(ctx context.Context, cfg *config.Config) (*service.IngredientStore, error) {
	if cfg.DatasetSource != config.DatasetSourceDatabase {
		return service.LoadIngredientStore(ctx, service.NewFileSource(cfg.DatasetPath))
	}

	db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	// The store keeps everything in memory, so the connection is only needed for the load.
	defer database.Close(db)

	return service.LoadIngredientStore(ctx, service.NewDatabaseSource(db))
}

// newLimiter returns a nil limiter when rate limiting is disabled. A configured
// but unreachable Redis falls back to the per-process limiter. The returned
// client is non-nil only when the Redis limiter is in use and must be closed
// by the caller.
func newLimiter(ctx context.Context, cfg *config.Config) (middleware.Limiter, *redis.Client) {
	if cfg.RateLimit == 0 {
		return nil, nil
	}

	limitCfg := middleware.RateLimitConfig{
		Window:    cfg.RateLimitWindow,
		Limit:     cfg.RateLimit,
		KeyPrefix: "rate_limit:ingredients",
	}

	if cfg.RedisURL != "" {
		client, err := database.NewRedisClient(ctx, cfg.RedisURL)
		if err == nil {
			return middleware.NewRateLimiter(client, limitCfg), client
		}
		log.Printf("⚠️  Redis unavailable, using in-process rate limiting: %v", err)
	}

	return middleware.NewLocalLimiter(limitCfg), nil
}
