package models

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken is a device-scoped long-lived credential owned by a User.
// A token is valid only while it is present in the owner's collection and
// its expiry is in the future; removal is the revocation mechanism.
type RefreshToken struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Token      string    `gorm:"type:text;uniqueIndex;not null" json:"-"`
	DeviceInfo string    `gorm:"size:255" json:"device_info"`
	ExpiresAt  time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt  time.Time `json:"created_at"`
}
