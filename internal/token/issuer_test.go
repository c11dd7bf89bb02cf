package token

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zara-ai/backend/internal/models"
)

func testUser() *models.User {
	return &models.User{
		ID:    uuid.New(),
		Email: "jane@example.com",
		Role:  models.RoleUser,
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	iss := NewIssuer("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
	u := testUser()

	signed, err := iss.IssueAccess(u)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := iss.ParseAccess(signed)
	require.NoError(t, err)
	assert.Equal(t, u.ID.String(), claims.UserID)
	assert.Equal(t, u.Email, claims.Email)
	assert.Equal(t, models.RoleUser, claims.Role)
	assert.Equal(t, u.ID.String(), claims.Subject)
}

func TestAccessTokenExpired(t *testing.T) {
	iss := NewIssuer("access-secret", "refresh-secret", -time.Minute, 24*time.Hour)

	signed, err := iss.IssueAccess(testUser())
	require.NoError(t, err)

	_, err = iss.ParseAccess(signed)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestAccessTokenWrongSecret(t *testing.T) {
	iss := NewIssuer("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
	other := NewIssuer("different-secret", "refresh-secret", time.Hour, 24*time.Hour)

	signed, err := iss.IssueAccess(testUser())
	require.NoError(t, err)

	_, err = other.ParseAccess(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseAccessMalformed(t *testing.T) {
	iss := NewIssuer("access-secret", "refresh-secret", time.Hour, 24*time.Hour)

	_, err := iss.ParseAccess("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAccessTokenRejectedAsRefresh(t *testing.T) {
	// Shared secret isolates the type discriminator from the signature check.
	iss := NewIssuer("shared-secret", "shared-secret", time.Hour, 24*time.Hour)

	signed, err := iss.IssueAccess(testUser())
	require.NoError(t, err)

	_, err = iss.ParseRefresh(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssueRefreshAppendsRecord(t *testing.T) {
	iss := NewIssuer("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
	u := testUser()

	signed, err := iss.IssueRefresh(u, "Firefox on Linux")
	require.NoError(t, err)

	require.Len(t, u.RefreshTokens, 1)
	rt := u.RefreshTokens[0]
	assert.Equal(t, signed, rt.Token)
	assert.Equal(t, u.ID, rt.UserID)
	assert.Equal(t, "Firefox on Linux", rt.DeviceInfo)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), rt.ExpiresAt, 5*time.Second)

	claims, err := iss.ParseRefresh(signed)
	require.NoError(t, err)
	assert.Equal(t, u.ID.String(), claims.UserID)
}

func TestRefreshTokenWrongSecret(t *testing.T) {
	iss := NewIssuer("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
	other := NewIssuer("access-secret", "another-secret", time.Hour, 24*time.Hour)

	signed, err := iss.IssueRefresh(testUser(), "test")
	require.NoError(t, err)

	_, err = other.ParseRefresh(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewOneTimeSecret(t *testing.T) {
	plain, hash, err := NewOneTimeSecret()
	require.NoError(t, err)

	assert.Len(t, plain, 64)
	assert.Equal(t, models.HashSecret(plain), hash)
	assert.NotEqual(t, plain, hash)

	plain2, _, err := NewOneTimeSecret()
	require.NoError(t, err)
	assert.NotEqual(t, plain, plain2)
}
