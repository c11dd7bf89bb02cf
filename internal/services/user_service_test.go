package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/zara-ai/backend/internal/dto"
	"github.com/zara-ai/backend/internal/models"
	"github.com/zara-ai/backend/internal/store"
)

func newTestUserService(t *testing.T) (*UserService, *store.MemoryStore, *models.User) {
	t.Helper()
	st := store.NewMemoryStore()
	user := &models.User{
		FirstName:     "Jane",
		LastName:      "Doe",
		Email:         "jane@example.com",
		Role:          models.RoleUser,
		IsActive:      true,
		AccountStatus: models.StatusActive,
		Preferences:   datatypes.JSON(`{"theme":"dark","language":"en"}`),
	}
	require.NoError(t, user.SetPassword("Secret123"))
	require.NoError(t, st.Create(context.Background(), user))
	return NewUserService(st), st, user
}

func strPtr(s string) *string { return &s }

func TestUpdateProfileAppliesFields(t *testing.T) {
	svc, st, user := newTestUserService(t)

	updated, err := svc.UpdateProfile(context.Background(), user, &dto.UpdateProfileRequest{
		FirstName: strPtr("Janet"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Janet", updated.FirstName)
	assert.Equal(t, "Doe", updated.LastName)

	stored, err := st.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Janet", stored.FirstName)
}

func TestUpdateProfileMergesPreferences(t *testing.T) {
	svc, _, user := newTestUserService(t)

	updated, err := svc.UpdateProfile(context.Background(), user, &dto.UpdateProfileRequest{
		Preferences: map[string]interface{}{"theme": "light", "timezone": "UTC"},
	})
	require.NoError(t, err)

	var prefs map[string]interface{}
	require.NoError(t, json.Unmarshal(updated.Preferences, &prefs))
	assert.Equal(t, "light", prefs["theme"])
	assert.Equal(t, "UTC", prefs["timezone"])
	// Untouched keys survive the merge.
	assert.Equal(t, "en", prefs["language"])
}

func TestChangePassword(t *testing.T) {
	svc, st, user := newTestUserService(t)
	user.AppendRefreshToken("tok", "device-a", time.Now().Add(time.Hour))
	require.NoError(t, st.Save(context.Background(), user))

	require.NoError(t, svc.ChangePassword(context.Background(), user, "Secret123", "NewSecret456"))

	stored, err := st.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.True(t, stored.ComparePassword("NewSecret456"))
	assert.Empty(t, stored.RefreshTokens)
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	svc, _, user := newTestUserService(t)

	err := svc.ChangePassword(context.Background(), user, "WrongPass1", "NewSecret456")
	assert.ErrorIs(t, err, ErrWrongPassword)
	assert.True(t, user.ComparePassword("Secret123"))
}

func TestUpdateAvatar(t *testing.T) {
	svc, st, user := newTestUserService(t)

	require.NoError(t, svc.UpdateAvatar(context.Background(), user, "https://cdn.example.com/a.png"))

	stored, err := st.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Avatar)
	assert.Equal(t, "https://cdn.example.com/a.png", *stored.Avatar)
}

func TestDeactivateAccount(t *testing.T) {
	svc, st, user := newTestUserService(t)
	user.AppendRefreshToken("tok", "device-a", time.Now().Add(time.Hour))
	require.NoError(t, st.Save(context.Background(), user))

	assert.ErrorIs(t, svc.DeactivateAccount(context.Background(), user, "WrongPass1"), ErrWrongPassword)

	require.NoError(t, svc.DeactivateAccount(context.Background(), user, "Secret123"))

	stored, err := st.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
	assert.Equal(t, models.StatusDeactivated, stored.AccountStatus)
	assert.Empty(t, stored.RefreshTokens)
	assert.False(t, stored.Usable())
}

func TestDashboard(t *testing.T) {
	svc, _, user := newTestUserService(t)
	lastLogin := time.Now().Add(-48 * time.Hour)
	user.LastLogin = &lastLogin
	user.LoginCount = 7
	user.AIInteractions = 42
	user.CreatedAt = time.Now().Add(-10 * 24 * time.Hour)

	stats := svc.Dashboard(user)

	assert.EqualValues(t, 42, stats.TotalInteractions)
	assert.Equal(t, 10, stats.AccountAgeDays)
	assert.Equal(t, 7, stats.TotalLogins)
	require.NotNil(t, stats.LastLoginDays)
	assert.Equal(t, 2, *stats.LastLoginDays)
}

func TestActivityCountsLiveSessions(t *testing.T) {
	svc, _, user := newTestUserService(t)
	user.AppendRefreshToken("live", "device-a", time.Now().Add(time.Hour))
	user.AppendRefreshToken("expired", "device-b", time.Now().Add(-time.Minute))

	resp := svc.Activity(user)

	assert.Equal(t, 1, resp.ActiveSessions)
	assert.Equal(t, models.StatusActive, resp.Account.AccountStatus)
}

func TestUpdateStatus(t *testing.T) {
	svc, st, user := newTestUserService(t)

	updated, err := svc.UpdateStatus(context.Background(), user.ID, models.StatusSuspended)
	require.NoError(t, err)
	assert.Equal(t, models.StatusSuspended, updated.AccountStatus)
	assert.False(t, updated.IsActive)

	stored, err := st.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.False(t, stored.Usable())

	updated, err = svc.UpdateStatus(context.Background(), user.ID, models.StatusActive)
	require.NoError(t, err)
	assert.True(t, updated.IsActive)
}

func TestUpdateStatusUnknownUser(t *testing.T) {
	svc, _, _ := newTestUserService(t)

	_, err := svc.UpdateStatus(context.Background(), uuid.New(), models.StatusSuspended)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
