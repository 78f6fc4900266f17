package middleware

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// RateLimitConfig defines configuration for rate limiting
type RateLimitConfig struct {
	// Window is the time window for rate limiting
	Window time.Duration
	// Limit is the maximum number of requests allowed in the window
	Limit int
	// Key prefix for Redis keys
	KeyPrefix string
}

// Limiter decides whether a client identified by key may proceed
type Limiter interface {
	// IsAllowed returns: allowed, remaining requests, reset time, error
	IsAllowed(ctx context.Context, key string) (bool, int, time.Time, error)
	Config() RateLimitConfig
}

// RateLimiter is a fixed-window limiter shared across instances through Redis
type RateLimiter struct {
	redis  *redis.Client
	config RateLimitConfig
}

// NewRateLimiter creates a new rate limiter instance
func NewRateLimiter(redisClient *redis.Client, config RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		redis:  redisClient,
		config: config,
	}
}

// Config returns the limiter configuration
func (rl *RateLimiter) Config() RateLimitConfig {
	return rl.config
}

// IsAllowed checks if a request from the given client is allowed
func (rl *RateLimiter) IsAllowed(ctx context.Context, key string) (bool, int, time.Time, error) {
	windowStart := time.Now().Truncate(rl.config.Window)
	redisKey := fmt.Sprintf("%s:%s:%d", rl.config.KeyPrefix, key, windowStart.Unix())

	// Use Redis pipeline for atomic operations
	pipe := rl.redis.Pipeline()
	incrCmd := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, rl.config.Window)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, time.Time{}, err
	}

	count := int(incrCmd.Val())
	remaining := rl.config.Limit - count
	if remaining < 0 {
		remaining = 0
	}

	return count <= rl.config.Limit, remaining, windowStart.Add(rl.config.Window), nil
}

// LocalLimiter is an in-process token bucket per client, used when no Redis is configured
type LocalLimiter struct {
	config  RateLimitConfig
	every   rate.Limit
	mu      sync.Mutex
	clients map[string]*localClient
}

type localClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// maxLocalClients bounds the client map before idle entries are swept.
const maxLocalClients = 10000

// NewLocalLimiter creates a limiter refilling Limit tokens per Window
func NewLocalLimiter(config RateLimitConfig) *LocalLimiter {
	return &LocalLimiter{
		config:  config,
		every:   rate.Every(config.Window / time.Duration(config.Limit)),
		clients: make(map[string]*localClient),
	}
}

// Config returns the limiter configuration
func (l *LocalLimiter) Config() RateLimitConfig {
	return l.config
}

// IsAllowed consumes one token for key if available
func (l *LocalLimiter) IsAllowed(_ context.Context, key string) (bool, int, time.Time, error) {
	now := time.Now()

	l.mu.Lock()
	client, ok := l.clients[key]
	if !ok {
		if len(l.clients) >= maxLocalClients {
			l.sweep(now)
		}
		client = &localClient{limiter: rate.NewLimiter(l.every, l.config.Limit)}
		l.clients[key] = client
	}
	client.lastSeen = now
	l.mu.Unlock()

	allowed := client.limiter.AllowN(now, 1)
	tokens := client.limiter.TokensAt(now)
	remaining := int(tokens)
	if remaining < 0 {
		remaining = 0
	}

	// reset is when the next token becomes available
	reset := now
	if tokens < 1 {
		reset = now.Add(time.Duration((1 - tokens) / float64(l.every) * float64(time.Second)))
	}
	return allowed, remaining, reset, nil
}

// sweep drops clients idle for longer than a full window. Caller holds mu.
func (l *LocalLimiter) sweep(now time.Time) {
	for key, client := range l.clients {
		if now.Sub(client.lastSeen) > l.config.Window {
			delete(l.clients, key)
		}
	}
}

// RateLimitMiddleware returns a Gin middleware that enforces rate limiting per client IP
func RateLimitMiddleware(l Limiter) gin.HandlerFunc {
	cfg := l.Config()
	return func(c *gin.Context) {
		allowed, remaining, resetTime, err := l.IsAllowed(c.Request.Context(), c.ClientIP())
		if err != nil {
			// Log error but don't fail the request
			log.Printf("[RateLimiter] check failed: %v", err)
			c.Header("X-RateLimit-Error", "rate limit check failed")
			c.Next()
			return
		}

		// Set rate limit headers
		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

		if !allowed {
			rateLimitRejects.Inc()
			retryAfter := int(time.Until(resetTime).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			AbortWithError(c, http.StatusTooManyRequests,
				fmt.Sprintf("Rate limit of %d requests per %v exceeded", cfg.Limit, cfg.Window))
			return
		}

		c.Next()
	}
}
