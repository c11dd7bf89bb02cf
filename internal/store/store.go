// Package store persists user records and their owned refresh-token
// collections. Expired tokens are purged on every save and only hashed
// one-time secrets are ever written.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/zara-ai/backend/internal/models"
)

var ErrNotFound = errors.New("user not found")

// ListFilter narrows and paginates admin user listings.
type ListFilter struct {
	Page     int
	Limit    int
	Status   string
	Verified *bool
}

// Stats are aggregate account counts for the admin panel.
type Stats struct {
	Total      int64
	Verified   int64
	Unverified int64
	Active     int64
}

// UserStore persists user records. Save must prune expired refresh tokens
// before writing and must be durable when it returns: a refresh-token
// rotation observed by the caller has already hit the database.
type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	Save(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// FindByVerificationHash and FindByResetHash match only non-expired
	// hashes; a consumed, expired or forged secret all yield ErrNotFound.
	FindByVerificationHash(ctx context.Context, hash string, now time.Time) (*models.User, error)
	FindByResetHash(ctx context.Context, hash string, now time.Time) (*models.User, error)

	List(ctx context.Context, f ListFilter) ([]models.User, int64, error)
	Stats(ctx context.Context) (Stats, error)
}
