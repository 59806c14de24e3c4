package serverutils

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"coursehub-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// RateLimiter is a Redis fixed-window counter keyed by user (or IP for
// anonymous callers) and endpoint.
type RateLimiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
	logger logger.ILogger
}

func NewRateLimiter(rdb *redis.Client, limit int, window time.Duration, log logger.ILogger) *RateLimiter {
	return &RateLimiter{rdb: rdb, limit: limit, window: window, logger: log}
}

// incrementScript bumps the window counter and arms its expiry in one atomic
// step. A counter found without a TTL gets one, so it can never stick.
var incrementScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if redis.call("PTTL", KEYS[1]) < 0 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count
`)

func (rl *RateLimiter) increment(ctx context.Context, key string) (int64, error) {
	count, err := incrementScript.Run(ctx, rl.rdb, []string{key}, rl.window.Milliseconds()).Int64()
	if err != nil {
		return 0, fmt.Errorf("increment rate limit: %w", err)
	}
	return count, nil
}

// Limit fails open: when Redis is unavailable the request goes through.
func (rl *RateLimiter) Limit(endpoint string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		subject := ctx.IP()
		if id := ViewerID(ctx); id != nil {
			subject = "user:" + strconv.FormatInt(*id, 10)
		}
		key := fmt.Sprintf("ratelimit:%s:%s", subject, endpoint)

		count, err := rl.increment(ctx.UserContext(), key)
		if err != nil {
			rl.logger.Error("RATE_LIMIT", "Failed to check rate limit", map[string]interface{}{
				"key":   key,
				"error": err,
			})
			return ctx.Next()
		}

		ctx.Set("X-RateLimit-Limit", strconv.Itoa(rl.limit))

		if count > int64(rl.limit) {
			rl.logger.Warn("RATE_LIMIT", "Rate limit exceeded", map[string]interface{}{
				"key":   key,
				"count": count,
			})
			ctx.Set("X-RateLimit-Remaining", "0")
			ctx.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(rl.window.Seconds())))
			return ctx.Status(fiber.StatusTooManyRequests).
				JSON(ErrorResponse(fiber.StatusTooManyRequests, "rate limit exceeded, please try again later"))
		}

		ctx.Set("X-RateLimit-Remaining", strconv.Itoa(rl.limit-int(count)))
		return ctx.Next()
	}
}
