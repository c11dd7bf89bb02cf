package middleware

import (
	"fmt"
	"math"

	"github.com/gofiber/fiber/v2"

	"github.com/zara-ai/backend/internal/dto"
	"github.com/zara-ai/backend/internal/ratelimit"
)

// PerUserRateLimit applies the sliding-window limiter keyed by user id.
// Anonymous requests pass through; IP-level limiting is handled separately
// at the router.
func PerUserRateLimit(limiter *ratelimit.Limiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return c.Next()
		}

		if !limiter.Allow(user.ID.String()) {
			minutes := int(math.Ceil(limiter.RetryAfter().Minutes()))
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.Err(
				fmt.Sprintf("Rate limit exceeded. Try again in %d minutes.", minutes)))
		}
		return c.Next()
	}
}
