package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/zara-ai/backend/internal/models"
)

// GormStore is the PostgreSQL-backed UserStore.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Create(ctx context.Context, u *models.User) error {
	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Save persists the user and reconciles the refresh-token collection:
// expired entries are pruned first, rows revoked in memory are deleted,
// and new entries are inserted. Runs in a single transaction so a
// logout-all or reset is durable before the caller responds.
func (s *GormStore) Save(ctx context.Context, u *models.User) error {
	u.PruneRefreshTokens(time.Now())

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(u).Error; err != nil {
			return err
		}

		q := tx.Where("user_id = ?", u.ID)
		if len(u.RefreshTokens) > 0 {
			kept := make([]string, 0, len(u.RefreshTokens))
			for _, rt := range u.RefreshTokens {
				kept = append(kept, rt.Token)
			}
			q = q.Where("token NOT IN ?", kept)
		}
		if err := q.Delete(&models.RefreshToken{}).Error; err != nil {
			return err
		}

		if len(u.RefreshTokens) > 0 {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&u.RefreshTokens).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (s *GormStore) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.findOne(ctx, "id = ?", id)
}

func (s *GormStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx, "email = ?", email)
}

func (s *GormStore) FindByVerificationHash(ctx context.Context, hash string, now time.Time) (*models.User, error) {
	return s.findOne(ctx, "email_verification_token = ? AND email_verification_expire > ?", hash, now)
}

func (s *GormStore) FindByResetHash(ctx context.Context, hash string, now time.Time) (*models.User, error) {
	return s.findOne(ctx, "reset_password_token = ? AND reset_password_expire > ?", hash, now)
}

func (s *GormStore) findOne(ctx context.Context, query string, args ...interface{}) (*models.User, error) {
	var u models.User
	err := s.db.WithContext(ctx).
		Preload("RefreshTokens", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where(query, args...).
		First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &u, nil
}

func (s *GormStore) List(ctx context.Context, f ListFilter) ([]models.User, int64, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 10
	}

	q := s.db.WithContext(ctx).Model(&models.User{})
	if f.Status != "" {
		q = q.Where("account_status = ?", f.Status)
	}
	if f.Verified != nil {
		q = q.Where("is_verified = ?", *f.Verified)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	var users []models.User
	err := q.Order("created_at DESC").
		Offset((f.Page - 1) * f.Limit).
		Limit(f.Limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

func (s *GormStore) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	if err := s.db.WithContext(ctx).Model(&models.User{}).Count(&st.Total).Error; err != nil {
		return st, fmt.Errorf("failed to count users: %w", err)
	}
	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("is_verified = true").Count(&st.Verified).Error; err != nil {
		return st, fmt.Errorf("failed to count verified users: %w", err)
	}
	st.Unverified = st.Total - st.Verified
	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("is_active = true AND account_status = ?", models.StatusActive).
		Count(&st.Active).Error; err != nil {
		return st, fmt.Errorf("failed to count active users: %w", err)
	}
	return st, nil
}
