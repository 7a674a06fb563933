package serverutils

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// NewRateLimitMiddleware caps requests per user inside a rolling window,
// backed by Redis. With a nil client (Redis not configured) it is a
// pass-through, and Redis outages fail open rather than blocking traffic.
func NewRateLimitMiddleware(rdb *redis.Client, limit int, window time.Duration) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if rdb == nil {
			return ctx.Next()
		}

		userId, _ := ctx.Locals("user_id").(string)
		if userId == "" {
			return ctx.Next()
		}

		key := fmt.Sprintf("ratelimit:%s:%s", ctx.Route().Path, userId)
		count, err := rdb.Incr(ctx.Context(), key).Result()
		if err != nil {
			return ctx.Next()
		}
		if count == 1 {
			rdb.Expire(ctx.Context(), key, window)
		}

		if count > int64(limit) {
			return ctx.Status(fiber.StatusTooManyRequests).
				JSON(ErrorResponse(fiber.StatusTooManyRequests, "Too many requests, please try again later"))
		}

		return ctx.Next()
	}
}
