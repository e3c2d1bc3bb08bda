package http

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	apperrors "github.com/cryptobloom/backend/pkg/util"
)

// RateLimiter bounds per-IP request volume using a fixed Redis window.
// When Redis is unreachable the limiter fails open; losing rate
// limiting is preferable to refusing all traffic.
type RateLimiter struct {
	client redis.Cmdable
	logger *zap.Logger
	max    int
	window time.Duration
}

// NewRateLimiter constructs the limiter.
func NewRateLimiter(client redis.Cmdable, logger *zap.Logger, max int, window time.Duration) *RateLimiter {
	if max <= 0 {
		max = 100
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &RateLimiter{client: client, logger: logger, max: max, window: window}
}

// Handle counts the request against the caller's window.
func (rl *RateLimiter) Handle(c *fiber.Ctx) error {
	key := "ratelimit:" + c.IP()

	count, err := rl.client.Incr(c.Context(), key).Result()
	if err != nil {
		rl.logger.Warn("rate limiter unavailable", zap.Error(err))
		return c.Next()
	}
	if count == 1 {
		if err := rl.client.Expire(c.Context(), key, rl.window).Err(); err != nil {
			rl.logger.Warn("rate limiter expire failed", zap.Error(err))
		}
	}
	if count > int64(rl.max) {
		return apperrors.NewDomainError("RATE_LIMITED",
			"too many requests from this IP, please try again later",
			http.StatusTooManyRequests, nil)
	}
	return c.Next()
}
