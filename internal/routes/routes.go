package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/zara-ai/backend/internal/config"
	"github.com/zara-ai/backend/internal/handlers"
	"github.com/zara-ai/backend/internal/middleware"
	"github.com/zara-ai/backend/internal/models"
	"github.com/zara-ai/backend/internal/ratelimit"
	"github.com/zara-ai/backend/internal/store"
	"github.com/zara-ai/backend/internal/token"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	st store.UserStore,
	iss *token.Issuer,
	userLimiter *ratelimit.Limiter,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	adminHandler *handlers.AdminHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Public auth routes get a stricter per-IP limit on top of the
	// per-user limiter that guards authenticated endpoints.
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", middleware.RefreshRequired(iss, st), authHandler.Refresh)
	auth.Get("/verify-email/:token", authHandler.VerifyEmail)
	auth.Post("/resend-verification", authHandler.ResendVerification)
	auth.Post("/forgot-password", authHandler.ForgotPassword)
	auth.Put("/reset-password/:token", authHandler.ResetPassword)

	protect := middleware.Protected(cfg, st)
	throttle := middleware.PerUserRateLimit(userLimiter)

	api.Post("/auth/logout", protect, throttle, authHandler.Logout)
	api.Post("/auth/logout-all", protect, throttle, authHandler.LogoutAll)
	api.Get("/auth/me", protect, throttle, authHandler.Me)

	// User-scoped routes
	user := api.Group("/user", protect, throttle)
	user.Put("/profile", userHandler.UpdateProfile)
	user.Put("/change-password", userHandler.ChangePassword)
	user.Put("/avatar", userHandler.UpdateAvatar)
	user.Get("/dashboard", userHandler.Dashboard)
	user.Get("/activity", userHandler.Activity)
	user.Delete("/account", userHandler.DeleteAccount)

	// Admin panel
	admin := api.Group("/admin", protect, throttle, middleware.RequireRoles(models.RoleAdmin))
	admin.Get("/users", adminHandler.ListUsers)
	admin.Put("/users/:id/status", adminHandler.UpdateUserStatus)
	admin.Get("/stats", adminHandler.Stats)
}
