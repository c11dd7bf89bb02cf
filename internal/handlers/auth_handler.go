package handlers

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/zara-ai/backend/internal/config"
	"github.com/zara-ai/backend/internal/dto"
	"github.com/zara-ai/backend/internal/middleware"
	"github.com/zara-ai/backend/internal/models"
	"github.com/zara-ai/backend/internal/services"
)

type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, cfg: cfg}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	user, err := h.authService.Register(c.UserContext(), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken):
			return c.Status(fiber.StatusConflict).
				JSON(dto.Err("User already exists with this email address"))
		case errors.Is(err, services.ErrDeliveryFailed):
			return c.Status(fiber.StatusInternalServerError).
				JSON(dto.Err("User created but failed to send verification email. Please try again."))
		default:
			return internalError(c, "register", err)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(dto.MessageWithData(
		"User registered successfully. Please check your email to verify your account.",
		fiber.Map{"user": registeredUser(user)},
	))
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	deviceInfo := c.Get("User-Agent")
	if deviceInfo == "" {
		deviceInfo = "Unknown Device"
	}

	user, accessToken, refreshToken, err := h.authService.Login(c.UserContext(), &req, deviceInfo)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			return unauthorized(c, "Invalid email or password")
		case errors.Is(err, services.ErrAccountDeactivated):
			return unauthorized(c, "Your account has been deactivated. Please contact support.")
		default:
			return internalError(c, "login", err)
		}
	}

	h.setRefreshCookie(c, refreshToken, req.RememberMe)

	return c.JSON(dto.MessageWithData("Login successful", dto.AuthResponse{
		User:         dto.NewUserResponse(user),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}))
}

// Refresh runs behind the refresh-token middleware, which has already
// re-checked the presented token against the stored collection.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	accessToken, err := h.authService.RefreshAccess(user)
	if err != nil {
		return internalError(c, "refresh", err)
	}

	return c.JSON(dto.MessageWithData("Token refreshed successfully", fiber.Map{
		"accessToken": accessToken,
		"user":        dto.NewUserResponse(user),
	}))
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var req dto.LogoutRequest
	_ = c.BodyParser(&req)
	refreshToken := req.RefreshToken
	if refreshToken == "" {
		refreshToken = c.Cookies(middleware.RefreshCookie)
	}

	if err := h.authService.Logout(c.UserContext(), user, refreshToken); err != nil {
		return internalError(c, "logout", err)
	}

	c.ClearCookie(middleware.RefreshCookie)
	return c.JSON(dto.Message("Logout successful"))
}

func (h *AuthHandler) LogoutAll(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	if err := h.authService.LogoutAll(c.UserContext(), user); err != nil {
		return internalError(c, "logout-all", err)
	}

	c.ClearCookie(middleware.RefreshCookie)
	return c.JSON(dto.Message("Logged out from all devices successfully"))
}

func (h *AuthHandler) VerifyEmail(c *fiber.Ctx) error {
	user, err := h.authService.VerifyEmail(c.UserContext(), c.Params("token"))
	if err != nil {
		if errors.Is(err, services.ErrInvalidOneTimeToken) {
			return badRequest(c, "Invalid or expired verification token")
		}
		return internalError(c, "verify-email", err)
	}

	return c.JSON(dto.MessageWithData(
		"Email verified successfully. Welcome to Zara AI!",
		fiber.Map{"user": registeredUser(user)},
	))
}

func (h *AuthHandler) ResendVerification(c *fiber.Ctx) error {
	var req dto.ResendVerificationRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Email == "" {
		return badRequest(c, "Email is required")
	}

	err := h.authService.ResendVerification(c.UserContext(), req.Email)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return notFound(c, "No user found with this email address")
		case errors.Is(err, services.ErrAlreadyVerified):
			return badRequest(c, "This account is already verified")
		case errors.Is(err, services.ErrDeliveryFailed):
			return c.Status(fiber.StatusInternalServerError).
				JSON(dto.Err("Failed to send verification email"))
		default:
			return internalError(c, "resend-verification", err)
		}
	}

	return c.JSON(dto.Message("Verification email sent successfully"))
}

func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req dto.ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := dto.ValidateEmail(dto.NormalizeEmail(req.Email)); err != nil {
		return badRequest(c, err.Error())
	}

	err := h.authService.ForgotPassword(c.UserContext(), req.Email)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return notFound(c, "No user found with this email address")
		case errors.Is(err, services.ErrDeliveryFailed):
			return c.Status(fiber.StatusInternalServerError).
				JSON(dto.Err("Failed to send password reset email"))
		default:
			return internalError(c, "forgot-password", err)
		}
	}

	return c.JSON(dto.Message("Password reset email sent successfully"))
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := dto.ValidatePassword(req.Password); err != nil {
		return badRequest(c, err.Error())
	}

	err := h.authService.ResetPassword(c.UserContext(), c.Params("token"), req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidOneTimeToken) {
			return badRequest(c, "Invalid or expired reset token")
		}
		return internalError(c, "reset-password", err)
	}

	return c.JSON(dto.Message("Password reset successful. Please log in with your new password."))
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	return c.JSON(dto.OK(fiber.Map{"user": dto.NewUserResponse(user)}))
}

func (h *AuthHandler) setRefreshCookie(c *fiber.Ctx, refreshToken string, rememberMe bool) {
	maxAge := 24 * time.Hour
	if rememberMe {
		maxAge = 30 * 24 * time.Hour
	}
	c.Cookie(&fiber.Cookie{
		Name:     middleware.RefreshCookie,
		Value:    refreshToken,
		Expires:  time.Now().Add(maxAge),
		HTTPOnly: true,
		Secure:   h.cfg.AppEnv == "production",
		SameSite: fiber.CookieSameSiteStrictMode,
		Path:     "/",
	})
}

// registeredUser is the compact projection returned by registration and
// verification.
func registeredUser(u *models.User) fiber.Map {
	return fiber.Map{
		"id":         u.ID,
		"firstName":  u.FirstName,
		"lastName":   u.LastName,
		"email":      u.Email,
		"isVerified": u.IsVerified,
	}
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.Err(msg))
}

func unauthorized(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.Err(msg))
}

func notFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.Err(msg))
}

func internalError(c *fiber.Ctx, action string, err error) error {
	slog.Error("request failed", "action", action, "path", c.Path(), "error", err.Error())
	return c.Status(fiber.StatusInternalServerError).JSON(dto.Err("Internal server error"))
}
