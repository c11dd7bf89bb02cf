// Package token issues and verifies the credentials of the session
// lifecycle: short-lived signed access tokens, device-scoped refresh
// tokens, and the single-use secrets behind email verification and
// password reset links.
package token

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/zara-ai/backend/internal/models"
)

// Lifetimes of the out-of-band single-use secrets.
const (
	VerificationTokenTTL = 24 * time.Hour
	ResetTokenTTL        = 10 * time.Minute
)

const refreshTokenType = "refresh"

var (
	ErrTokenExpired = errors.New("token expired")
	ErrInvalidToken = errors.New("invalid token")
)

// AccessClaims identify the subject of a stateless access token.
type AccessClaims struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// RefreshClaims carry only the subject id and a type discriminator so an
// access token can never pass refresh verification.
type RefreshClaims struct {
	UserID    string `json:"id"`
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

// Issuer signs access and refresh tokens. Access and refresh tokens use
// separate secrets; both are HS256.
type Issuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewIssuer(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *Issuer {
	return &Issuer{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (i *Issuer) AccessSecret() []byte { return i.accessSecret }

// IssueAccess signs a stateless access token for the user. Nothing is
// persisted.
func (i *Issuer) IssueAccess(u *models.User) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		UserID: u.ID.String(),
		Email:  u.Email,
		Role:   u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.accessTTL)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.accessSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

// IssueRefresh signs a refresh token and appends the matching record to the
// user's owned collection. The caller is expected to persist the user so
// the token becomes redeemable.
func (i *Issuer) IssueRefresh(u *models.User, deviceInfo string) (string, error) {
	now := time.Now()
	expiresAt := now.Add(i.refreshTTL)
	claims := RefreshClaims{
		UserID:    u.ID.String(),
		TokenType: refreshTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.refreshSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign refresh token: %w", err)
	}
	u.AppendRefreshToken(signed, deviceInfo, expiresAt)
	return signed, nil
}

// ParseAccess verifies signature and expiry of an access token and returns
// its claims.
func (i *Issuer) ParseAccess(tokenString string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	err := i.parse(tokenString, claims, i.accessSecret)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// ParseRefresh verifies signature, expiry and the type discriminator of a
// refresh token. Structural validity alone does not make the token
// redeemable; the caller must still check it against the user's stored
// collection.
func (i *Issuer) ParseRefresh(tokenString string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if err := i.parse(tokenString, claims, i.refreshSecret); err != nil {
		return nil, err
	}
	if claims.TokenType != refreshTokenType {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (i *Issuer) parse(tokenString string, claims jwt.Claims, secret []byte) error {
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrTokenExpired
		}
		return ErrInvalidToken
	}
	if !parsed.Valid {
		return ErrInvalidToken
	}
	return nil
}

// NewOneTimeSecret generates a 256-bit random secret for verification and
// reset links. The plaintext is sent out-of-band and never persisted; only
// the returned hash is stored on the user.
func NewOneTimeSecret() (plain string, hash string, err error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", "", fmt.Errorf("failed to generate random secret: %w", err)
	}
	plain = hex.EncodeToString(raw)
	return plain, models.HashSecret(plain), nil
}
