package router

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/storage/redis"

	"github.com/itzsam-lol/com-app/internal/pkg/config"
)

// limiterDatabase keeps limiter keys apart from the plan cache (DB 0).
const limiterDatabase = 1

// NewLimiterStorage returns Redis storage for the rate limiter, or nil when
// no cache host is configured.
func NewLimiterStorage(cfg config.CacheConfig) fiber.Storage {
	if cfg.Host == "" {
		return nil
	}
	return redis.New(redis.Config{
		Host:     cfg.Host,
		Port:     cfg.Port,
		Password: cfg.Password,
		Database: limiterDatabase,
		Reset:    false,
	})
}

func newLimiter(cfg config.RateLimitConfig, storage fiber.Storage) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        cfg.Max,
		Expiration: cfg.Window,
		Storage:    storage,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":   "too_many_requests",
				"message": fmt.Sprintf("Rate limit of %d requests exceeded", cfg.Max),
			})
		},
	})
}
