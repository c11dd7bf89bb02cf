package middleware

import (
	"errors"
	"time"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/zara-ai/backend/internal/config"
	"github.com/zara-ai/backend/internal/dto"
	"github.com/zara-ai/backend/internal/models"
	"github.com/zara-ai/backend/internal/store"
	"github.com/zara-ai/backend/internal/token"
)

const (
	currentUserKey  = "currentUser"
	refreshTokenKey = "refreshToken"

	// RefreshCookie is the HTTP-only cookie set on login.
	RefreshCookie = "refreshToken"
)

// CurrentUser returns the authenticated subject attached by the session
// middleware, or nil for anonymous requests under OptionalAuth.
func CurrentUser(c *fiber.Ctx) *models.User {
	u, _ := c.Locals(currentUserKey).(*models.User)
	return u
}

// PresentedRefreshToken returns the refresh token validated by
// RefreshRequired for the current request.
func PresentedRefreshToken(c *fiber.Ctx) string {
	t, _ := c.Locals(refreshTokenKey).(string)
	return t
}

// Protected validates the bearer access token, loads the subject user and
// enforces the account-status check. Each failure mode rejects with its own
// 401 reason.
func Protected(cfg *config.Config, st store.UserStore) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:     jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		SuccessHandler: attachSubject(st),
		ErrorHandler:   accessTokenError,
	})
}

func accessTokenError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, jwtware.ErrJWTMissingOrMalformed):
		return unauthorized(c, "Access denied. No token provided.")
	case errors.Is(err, jwt.ErrTokenExpired):
		return unauthorized(c, "Your token has expired. Please log in again.")
	default:
		return unauthorized(c, "Invalid token. Please log in again.")
	}
}

func attachSubject(st store.UserStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := subjectID(c)
		if err != nil {
			return unauthorized(c, "Invalid token. Please log in again.")
		}

		user, err := st.FindByID(c.UserContext(), userID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return unauthorized(c, "The user belonging to this token no longer exists.")
			}
			return fiber.ErrInternalServerError
		}
		if !user.Usable() {
			return unauthorized(c, "Your account has been deactivated. Please contact support.")
		}

		c.Locals(currentUserKey, user)
		return c.Next()
	}
}

// OptionalAuth attaches the subject when a valid token is presented and
// silently falls through to anonymous handling otherwise.
func OptionalAuth(cfg *config.Config, st store.UserStore) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		SuccessHandler: func(c *fiber.Ctx) error {
			if userID, err := subjectID(c); err == nil {
				if user, err := st.FindByID(c.UserContext(), userID); err == nil && user.Usable() {
					c.Locals(currentUserKey, user)
				}
			}
			return c.Next()
		},
		ErrorHandler: func(c *fiber.Ctx, _ error) error {
			return c.Next()
		},
	})
}

// RefreshRequired validates the presented refresh token. Beyond signature
// and expiry it re-checks presence in the user's stored collection, so a
// token revoked by logout or rotation is rejected even while its signature
// still verifies. All token failures share one generic reason.
func RefreshRequired(iss *token.Issuer, st store.UserStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		presented := refreshTokenFromRequest(c)
		if presented == "" {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Err("Refresh token is required."))
		}

		claims, err := iss.ParseRefresh(presented)
		if err != nil {
			return unauthorized(c, "Invalid or expired refresh token.")
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			return unauthorized(c, "Invalid or expired refresh token.")
		}

		user, err := st.FindByID(c.UserContext(), userID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return unauthorized(c, "Invalid or expired refresh token.")
			}
			return fiber.ErrInternalServerError
		}

		if !user.HasValidRefreshToken(presented, time.Now()) {
			return unauthorized(c, "Invalid or expired refresh token.")
		}
		if !user.Usable() {
			return unauthorized(c, "Your account has been deactivated. Please contact support.")
		}

		c.Locals(currentUserKey, user)
		c.Locals(refreshTokenKey, presented)
		return c.Next()
	}
}

func refreshTokenFromRequest(c *fiber.Ctx) string {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err == nil && req.RefreshToken != "" {
		return req.RefreshToken
	}
	return c.Cookies(RefreshCookie)
}

func subjectID(c *fiber.Ctx) (uuid.UUID, error) {
	tok, ok := c.Locals("user").(*jwt.Token)
	if !ok || tok == nil {
		return uuid.Nil, errors.New("no token in context")
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, errors.New("invalid claims")
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, errors.New("missing sub claim")
	}
	return uuid.Parse(sub)
}

func unauthorized(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.Err(msg))
}
