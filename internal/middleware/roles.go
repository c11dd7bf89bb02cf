package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/zara-ai/backend/internal/dto"
)

// RequireRoles gates a route on the authenticated subject's role. Must run
// after Protected.
func RequireRoles(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return unauthorized(c, "Access denied. No token provided.")
		}
		if _, ok := allowed[user.Role]; !ok {
			return c.Status(fiber.StatusForbidden).
				JSON(dto.Err("You do not have permission to perform this action."))
		}
		return c.Next()
	}
}

// RequireVerified gates a route on a verified email address. Must run
// after Protected.
func RequireVerified() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return unauthorized(c, "Access denied. No token provided.")
		}
		if !user.IsVerified {
			return c.Status(fiber.StatusForbidden).
				JSON(dto.Err("Please verify your email address to access this resource."))
		}
		return c.Next()
	}
}
