package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/datatypes"

	"github.com/zara-ai/backend/internal/dto"
	"github.com/zara-ai/backend/internal/mailer"
	"github.com/zara-ai/backend/internal/models"
	"github.com/zara-ai/backend/internal/store"
	"github.com/zara-ai/backend/internal/token"
)

var (
	ErrEmailTaken         = errors.New("user already exists with this email address")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDeactivated = errors.New("account deactivated")
	ErrUserNotFound       = errors.New("no user found with this email address")
	ErrAlreadyVerified    = errors.New("account already verified")

	// ErrInvalidOneTimeToken covers consumed, expired and forged
	// verification/reset secrets alike so the rejection never leaks which
	// state caused it.
	ErrInvalidOneTimeToken = errors.New("invalid or expired token")

	// ErrDeliveryFailed reports a failed email send after the generated
	// token fields were rolled back.
	ErrDeliveryFailed = errors.New("email delivery failed")
)

// AuthService implements the session and credential lifecycle: registration,
// login, refresh-token rotation and the verification/reset flows.
type AuthService struct {
	store  store.UserStore
	issuer *token.Issuer
	mailer *mailer.Mailer
}

func NewAuthService(st store.UserStore, iss *token.Issuer, m *mailer.Mailer) *AuthService {
	return &AuthService{store: st, issuer: iss, mailer: m}
}

// Register creates an unverified account and emails the verification link.
// A failed delivery rolls the token fields back so the user can retry
// cleanly via resend-verification.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error) {
	if _, err := s.store.FindByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	user := &models.User{
		FirstName:           req.FirstName,
		LastName:            req.LastName,
		Email:               req.Email,
		Role:                models.RoleUser,
		IsActive:            true,
		AccountStatus:       models.StatusActive,
		SubscribeNewsletter: req.SubscribeNewsletter,
		Preferences:         defaultPreferences(),
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.store.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := s.issueVerification(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates credentials and mints an access/refresh token pair.
// The refresh token is appended to the user's collection and persisted
// before returning.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest, deviceInfo string) (*models.User, string, string, error) {
	user, err := s.store.FindByEmail(ctx, dto.NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, "", "", ErrInvalidCredentials
		}
		return nil, "", "", err
	}
	if !user.ComparePassword(req.Password) {
		return nil, "", "", ErrInvalidCredentials
	}
	if !user.Usable() {
		return nil, "", "", ErrAccountDeactivated
	}

	user.UpdateLoginInfo(time.Now())

	accessToken, err := s.issuer.IssueAccess(user)
	if err != nil {
		return nil, "", "", err
	}
	refreshToken, err := s.issuer.IssueRefresh(user, deviceInfo)
	if err != nil {
		return nil, "", "", err
	}

	if err := s.store.Save(ctx, user); err != nil {
		return nil, "", "", err
	}
	return user, accessToken, refreshToken, nil
}

// RefreshAccess mints a new access token for a subject that already passed
// refresh-token validation.
func (s *AuthService) RefreshAccess(user *models.User) (string, error) {
	return s.issuer.IssueAccess(user)
}

// Logout revokes a single refresh token by exact match. An unknown token is
// not an error; the session is gone either way.
func (s *AuthService) Logout(ctx context.Context, user *models.User, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	user.RemoveRefreshToken(refreshToken)
	return s.store.Save(ctx, user)
}

// LogoutAll revokes every refresh token. The clear is durably persisted
// before this returns.
func (s *AuthService) LogoutAll(ctx context.Context, user *models.User) error {
	user.ClearRefreshTokens()
	return s.store.Save(ctx, user)
}

// VerifyEmail consumes a verification secret. Single-use: the stored hash
// is cleared on success, so a second presentation fails like a forged one.
// The welcome email is best-effort; verification has already succeeded.
func (s *AuthService) VerifyEmail(ctx context.Context, secret string) (*models.User, error) {
	user, err := s.store.FindByVerificationHash(ctx, models.HashSecret(secret), time.Now())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidOneTimeToken
		}
		return nil, err
	}

	user.IsVerified = true
	user.ClearVerificationToken()
	if err := s.store.Save(ctx, user); err != nil {
		return nil, err
	}

	if err := s.mailer.SendWelcomeEmail(ctx, user.Email, user.FirstName); err != nil {
		slog.Error("failed to send welcome email", "error", err, "user_id", user.ID.String())
	}
	return user, nil
}

// ResendVerification regenerates the verification secret for an unverified
// account, overwriting the outstanding one.
func (s *AuthService) ResendVerification(ctx context.Context, email string) error {
	user, err := s.store.FindByEmail(ctx, dto.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if user.IsVerified {
		return ErrAlreadyVerified
	}
	return s.issueVerification(ctx, user)
}

// ForgotPassword generates a short-lived reset secret and emails it. As
// with verification, a failed delivery rolls the token fields back.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.store.FindByEmail(ctx, dto.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	secret, hash, err := token.NewOneTimeSecret()
	if err != nil {
		return err
	}
	user.SetResetToken(hash, time.Now().Add(token.ResetTokenTTL))
	if err := s.store.Save(ctx, user); err != nil {
		return err
	}

	if err := s.mailer.SendPasswordResetEmail(ctx, user.Email, user.FirstName, secret); err != nil {
		user.ClearResetToken()
		if saveErr := s.store.Save(ctx, user); saveErr != nil {
			slog.Error("failed to roll back reset token", "error", saveErr, "user_id", user.ID.String())
		}
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}
	return nil
}

// ResetPassword consumes a reset secret and installs the new password.
// Every refresh token is cleared so all devices must log in again; the
// clear is persisted before returning.
func (s *AuthService) ResetPassword(ctx context.Context, secret, newPassword string) error {
	user, err := s.store.FindByResetHash(ctx, models.HashSecret(secret), time.Now())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidOneTimeToken
		}
		return err
	}

	if err := user.SetPassword(newPassword); err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.ClearResetToken()
	user.ClearRefreshTokens()
	return s.store.Save(ctx, user)
}

func (s *AuthService) issueVerification(ctx context.Context, user *models.User) error {
	secret, hash, err := token.NewOneTimeSecret()
	if err != nil {
		return err
	}
	user.SetVerificationToken(hash, time.Now().Add(token.VerificationTokenTTL))
	if err := s.store.Save(ctx, user); err != nil {
		return err
	}

	if err := s.mailer.SendVerificationEmail(ctx, user.Email, user.FirstName, secret); err != nil {
		user.ClearVerificationToken()
		if saveErr := s.store.Save(ctx, user); saveErr != nil {
			slog.Error("failed to roll back verification token", "error", saveErr, "user_id", user.ID.String())
		}
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}
	return nil
}

func defaultPreferences() datatypes.JSON {
	return datatypes.JSON(`{"theme":"system","language":"en","notifications":{"email":true,"marketing":false}}`)
}
