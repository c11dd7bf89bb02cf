package models

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

// Account roles.
const (
	RoleUser      = "user"
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
)

// Account statuses. IsActive mirrors StatusActive and is kept as a separate
// column because the admin status route toggles both together.
const (
	StatusActive      = "active"
	StatusSuspended   = "suspended"
	StatusDeactivated = "deactivated"
)

// User is the persisted account and credential record. Accounts are never
// hard-deleted: deletion transitions AccountStatus to "deactivated" and
// clears the refresh-token collection.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FirstName string    `gorm:"size:50;not null" json:"firstName"`
	LastName  string    `gorm:"size:50;not null" json:"lastName"`
	Email     string    `gorm:"size:255;not null;uniqueIndex" json:"email"`

	// Bcrypt hash. Empty for OAuth-only accounts (GoogleID/GithubID set).
	PasswordHash string  `gorm:"size:100" json:"-"`
	Avatar       *string `gorm:"size:500" json:"avatar"`
	Role         string  `gorm:"size:20;default:'user'" json:"role"`

	IsVerified          bool   `gorm:"default:false" json:"isVerified"`
	IsActive            bool   `gorm:"default:true" json:"isActive"`
	AccountStatus       string `gorm:"size:20;default:'active'" json:"accountStatus"`
	SubscribeNewsletter bool   `gorm:"default:false" json:"subscribeNewsletter"`

	GoogleID *string `gorm:"size:255;index" json:"-"`
	GithubID *string `gorm:"size:255;index" json:"-"`

	// One-way hashes of the outstanding verification/reset secrets. At most
	// one of each: generating a new secret overwrites the previous one.
	EmailVerificationToken  *string    `gorm:"size:64;index" json:"-"`
	EmailVerificationExpire *time.Time `json:"-"`
	ResetPasswordToken      *string    `gorm:"size:64;index" json:"-"`
	ResetPasswordExpire     *time.Time `json:"-"`

	RefreshTokens []RefreshToken `gorm:"foreignKey:UserID" json:"-"`

	LastLogin  *time.Time `json:"lastLogin"`
	LoginCount int        `gorm:"default:0" json:"loginCount"`

	Preferences    datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"preferences"`
	AIInteractions int64          `gorm:"default:0" json:"aiInteractions"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Usable reports whether the account may authenticate.
func (u *User) Usable() bool {
	return u.IsActive && u.AccountStatus == StatusActive
}

// SetPassword replaces the stored hash with a bcrypt hash of plain.
func (u *User) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// ComparePassword reports whether plain matches the stored hash. Always
// false for OAuth-only accounts without a password.
func (u *User) ComparePassword(plain string) bool {
	if u.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plain)) == nil
}

// UpdateLoginInfo records a successful login.
func (u *User) UpdateLoginInfo(now time.Time) {
	u.LastLogin = &now
	u.LoginCount++
}

// AppendRefreshToken adds a device-scoped refresh token to the owned
// collection. The caller is expected to persist the user afterwards.
func (u *User) AppendRefreshToken(token, deviceInfo string, expiresAt time.Time) {
	u.RefreshTokens = append(u.RefreshTokens, RefreshToken{
		ID:         uuid.New(),
		UserID:     u.ID,
		Token:      token,
		DeviceInfo: deviceInfo,
		ExpiresAt:  expiresAt,
		CreatedAt:  time.Now(),
	})
}

// RemoveRefreshToken revokes a single token by exact string match and
// reports whether it was present.
func (u *User) RemoveRefreshToken(token string) bool {
	kept := u.RefreshTokens[:0]
	removed := false
	for _, rt := range u.RefreshTokens {
		if rt.Token == token {
			removed = true
			continue
		}
		kept = append(kept, rt)
	}
	u.RefreshTokens = kept
	return removed
}

// ClearRefreshTokens revokes every session (logout-all, password reset,
// password change, deactivation).
func (u *User) ClearRefreshTokens() {
	u.RefreshTokens = nil
}

// PruneRefreshTokens drops expired entries. The store invokes this before
// every persistence of the user so expired tokens never accumulate.
func (u *User) PruneRefreshTokens(now time.Time) {
	kept := u.RefreshTokens[:0]
	for _, rt := range u.RefreshTokens {
		if rt.ExpiresAt.After(now) {
			kept = append(kept, rt)
		}
	}
	u.RefreshTokens = kept
}

// HasValidRefreshToken reports whether token is present in the collection
// and not logically expired. A structurally valid signature alone is not
// sufficient for a refresh: revocation is removal from this collection.
func (u *User) HasValidRefreshToken(token string, now time.Time) bool {
	for _, rt := range u.RefreshTokens {
		if rt.Token == token && rt.ExpiresAt.After(now) {
			return true
		}
	}
	return false
}

// SetVerificationToken stores the hash of a freshly generated verification
// secret, overwriting any outstanding one.
func (u *User) SetVerificationToken(hash string, expiresAt time.Time) {
	u.EmailVerificationToken = &hash
	u.EmailVerificationExpire = &expiresAt
}

// ClearVerificationToken removes the outstanding verification secret, either
// after consumption or to roll back a failed email delivery.
func (u *User) ClearVerificationToken() {
	u.EmailVerificationToken = nil
	u.EmailVerificationExpire = nil
}

// SetResetToken stores the hash of a freshly generated password-reset
// secret, overwriting any outstanding one.
func (u *User) SetResetToken(hash string, expiresAt time.Time) {
	u.ResetPasswordToken = &hash
	u.ResetPasswordExpire = &expiresAt
}

func (u *User) ClearResetToken() {
	u.ResetPasswordToken = nil
	u.ResetPasswordExpire = nil
}

// HashSecret returns the hex SHA-256 of a plaintext verification/reset
// secret. Only this hash is ever persisted.
func HashSecret(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}

// SecretMatches compares a presented plaintext secret against a stored hash
// in constant time.
func SecretMatches(plain string, storedHash string) bool {
	presented := HashSecret(plain)
	return subtle.ConstantTimeCompare([]byte(presented), []byte(storedHash)) == 1
}

func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleAdmin, RoleModerator:
		return true
	}
	return false
}

func ValidStatus(status string) bool {
	switch status {
	case StatusActive, StatusSuspended, StatusDeactivated:
		return true
	}
	return false
}
