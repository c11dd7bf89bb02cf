package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/zara-ai/backend/internal/dto"
	"github.com/zara-ai/backend/internal/models"
	"github.com/zara-ai/backend/internal/store"
)

var ErrWrongPassword = errors.New("incorrect password")

// UserService covers profile, password and account-status operations on an
// already-authenticated subject, plus the admin listing operations.
type UserService struct {
	store store.UserStore
}

func NewUserService(st store.UserStore) *UserService {
	return &UserService{store: st}
}

// UpdateProfile applies the allow-listed profile fields. Preference updates
// are merged key-by-key into the stored document rather than replacing it.
func (s *UserService) UpdateProfile(ctx context.Context, user *models.User, req *dto.UpdateProfileRequest) (*models.User, error) {
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.SubscribeNewsletter != nil {
		user.SubscribeNewsletter = *req.SubscribeNewsletter
	}
	if req.Preferences != nil {
		merged, err := mergePreferences(user.Preferences, req.Preferences)
		if err != nil {
			return nil, err
		}
		user.Preferences = merged
	}

	if err := s.store.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword verifies the current password before installing the new
// one, then clears every refresh token so all other devices re-login.
func (s *UserService) ChangePassword(ctx context.Context, user *models.User, currentPassword, newPassword string) error {
	if !user.ComparePassword(currentPassword) {
		return ErrWrongPassword
	}
	if err := user.SetPassword(newPassword); err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.ClearRefreshTokens()
	return s.store.Save(ctx, user)
}

func (s *UserService) UpdateAvatar(ctx context.Context, user *models.User, avatarURL string) error {
	user.Avatar = &avatarURL
	return s.store.Save(ctx, user)
}

// DeactivateAccount soft-deletes: status flips to deactivated and refresh
// tokens are cleared. The record itself is kept.
func (s *UserService) DeactivateAccount(ctx context.Context, user *models.User, password string) error {
	if !user.ComparePassword(password) {
		return ErrWrongPassword
	}
	user.IsActive = false
	user.AccountStatus = models.StatusDeactivated
	user.ClearRefreshTokens()
	return s.store.Save(ctx, user)
}

// Dashboard derives the usage stats shown on the account dashboard.
func (s *UserService) Dashboard(user *models.User) dto.DashboardStats {
	now := time.Now()
	stats := dto.DashboardStats{
		TotalInteractions: user.AIInteractions,
		AccountAgeDays:    int(now.Sub(user.CreatedAt).Hours() / 24),
		TotalLogins:       user.LoginCount,
	}
	if user.LastLogin != nil {
		days := int(now.Sub(*user.LastLogin).Hours() / 24)
		stats.LastLoginDays = &days
	}
	return stats
}

// Activity summarizes recent account activity, including the number of
// live sessions (non-expired refresh tokens).
func (s *UserService) Activity(user *models.User) dto.ActivityResponse {
	var resp dto.ActivityResponse
	resp.RecentLogins.LastLogin = user.LastLogin
	resp.RecentLogins.TotalLogins = user.LoginCount
	resp.Account.CreatedAt = user.CreatedAt
	resp.Account.IsVerified = user.IsVerified
	resp.Account.AccountStatus = user.AccountStatus

	resp.Usage.AIInteractions = user.AIInteractions

	now := time.Now()
	for _, rt := range user.RefreshTokens {
		if rt.ExpiresAt.After(now) {
			resp.ActiveSessions++
		}
	}
	return resp
}

func (s *UserService) ListUsers(ctx context.Context, f store.ListFilter) ([]models.User, int64, error) {
	return s.store.List(ctx, f)
}

// UpdateStatus sets the account status; IsActive tracks it so the session
// middleware check stays consistent.
func (s *UserService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.User, error) {
	user, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	user.AccountStatus = status
	user.IsActive = status == models.StatusActive
	if err := s.store.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Stats(ctx context.Context) (store.Stats, error) {
	return s.store.Stats(ctx)
}

func mergePreferences(current datatypes.JSON, updates map[string]interface{}) (datatypes.JSON, error) {
	merged := make(map[string]interface{})
	if len(current) > 0 {
		if err := json.Unmarshal(current, &merged); err != nil {
			return nil, fmt.Errorf("failed to decode stored preferences: %w", err)
		}
	}
	for k, v := range updates {
		merged[k] = v
	}
	b, err := json.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("failed to encode preferences: %w", err)
	}
	return datatypes.JSON(b), nil
}
