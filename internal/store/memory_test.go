package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zara-ai/backend/internal/models"
)

func newStoredUser(t *testing.T, s *MemoryStore, email string) *models.User {
	t.Helper()
	u := &models.User{
		FirstName:     "Jane",
		LastName:      "Doe",
		Email:         email,
		Role:          models.RoleUser,
		IsActive:      true,
		AccountStatus: models.StatusActive,
	}
	require.NoError(t, s.Create(context.Background(), u))
	return u
}

func TestMemoryStoreCreateAndFind(t *testing.T) {
	s := NewMemoryStore()
	u := newStoredUser(t, s, "jane@example.com")

	byID, err := s.FindByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, byID.Email)

	byEmail, err := s.FindByEmail(context.Background(), "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	_, err = s.FindByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreSavePrunesExpiredTokens(t *testing.T) {
	s := NewMemoryStore()
	u := newStoredUser(t, s, "jane@example.com")

	u.AppendRefreshToken("live", "device-a", time.Now().Add(time.Hour))
	u.AppendRefreshToken("expired", "device-b", time.Now().Add(-time.Minute))
	require.NoError(t, s.Save(context.Background(), u))

	stored, err := s.FindByID(context.Background(), u.ID)
	require.NoError(t, err)
	require.Len(t, stored.RefreshTokens, 1)
	assert.Equal(t, "live", stored.RefreshTokens[0].Token)
}

func TestMemoryStoreFindByVerificationHash(t *testing.T) {
	s := NewMemoryStore()
	u := newStoredUser(t, s, "jane@example.com")

	now := time.Now()
	u.SetVerificationToken(models.HashSecret("secret"), now.Add(time.Hour))
	require.NoError(t, s.Save(context.Background(), u))

	found, err := s.FindByVerificationHash(context.Background(), models.HashSecret("secret"), now)
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)

	// Expired hash behaves like an unknown one.
	_, err = s.FindByVerificationHash(context.Background(), models.HashSecret("secret"), now.Add(2*time.Hour))
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.FindByVerificationHash(context.Background(), models.HashSecret("other"), now)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreListFiltersAndPaginates(t *testing.T) {
	s := NewMemoryStore()
	for i := 0; i < 5; i++ {
		u := newStoredUser(t, s, fmt.Sprintf("user%d@example.com", i))
		if i < 2 {
			u.IsVerified = true
			require.NoError(t, s.Save(context.Background(), u))
		}
	}

	verified := true
	users, total, err := s.List(context.Background(), ListFilter{Page: 1, Limit: 10, Verified: &verified})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, users, 2)

	users, total, err = s.List(context.Background(), ListFilter{Page: 2, Limit: 3})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, users, 2)

	users, _, err = s.List(context.Background(), ListFilter{Page: 9, Limit: 3})
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestMemoryStoreStats(t *testing.T) {
	s := NewMemoryStore()
	a := newStoredUser(t, s, "a@example.com")
	a.IsVerified = true
	require.NoError(t, s.Save(context.Background(), a))

	b := newStoredUser(t, s, "b@example.com")
	b.IsActive = false
	b.AccountStatus = models.StatusDeactivated
	require.NoError(t, s.Save(context.Background(), b))

	stats, err := s.Stats(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.Total)
	assert.EqualValues(t, 1, stats.Verified)
	assert.EqualValues(t, 1, stats.Unverified)
	assert.EqualValues(t, 1, stats.Active)
}
