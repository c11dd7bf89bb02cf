package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zara-ai/backend/internal/models"
)

// MemoryStore is an in-process UserStore used by tests and local
// development without PostgreSQL. It applies the same Save-time pruning
// semantics as the GORM implementation.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[uuid.UUID]models.User
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[uuid.UUID]models.User)}
}

func (s *MemoryStore) Create(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	s.users[u.ID] = cloneUser(u)
	return nil
}

func (s *MemoryStore) Save(_ context.Context, u *models.User) error {
	u.PruneRefreshTokens(time.Now())
	s.mu.Lock()
	defer s.mu.Unlock()
	u.UpdatedAt = time.Now()
	s.users[u.ID] = cloneUser(u)
	return nil
}

func (s *MemoryStore) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	c := cloneUser(&u)
	return &c, nil
}

func (s *MemoryStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	return s.findBy(func(u *models.User) bool { return u.Email == email })
}

func (s *MemoryStore) FindByVerificationHash(_ context.Context, hash string, now time.Time) (*models.User, error) {
	return s.findBy(func(u *models.User) bool {
		return u.EmailVerificationToken != nil && *u.EmailVerificationToken == hash &&
			u.EmailVerificationExpire != nil && u.EmailVerificationExpire.After(now)
	})
}

func (s *MemoryStore) FindByResetHash(_ context.Context, hash string, now time.Time) (*models.User, error) {
	return s.findBy(func(u *models.User) bool {
		return u.ResetPasswordToken != nil && *u.ResetPasswordToken == hash &&
			u.ResetPasswordExpire != nil && u.ResetPasswordExpire.After(now)
	})
}

func (s *MemoryStore) findBy(match func(*models.User) bool) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if match(&u) {
			c := cloneUser(&u)
			return &c, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) List(_ context.Context, f ListFilter) ([]models.User, int64, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 10
	}

	s.mu.RLock()
	all := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		if f.Status != "" && u.AccountStatus != f.Status {
			continue
		}
		if f.Verified != nil && u.IsVerified != *f.Verified {
			continue
		}
		all = append(all, cloneUser(&u))
	}
	s.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	total := int64(len(all))
	start := (f.Page - 1) * f.Limit
	if start >= len(all) {
		return []models.User{}, total, nil
	}
	end := start + f.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (s *MemoryStore) Stats(_ context.Context) (Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var st Stats
	for _, u := range s.users {
		st.Total++
		if u.IsVerified {
			st.Verified++
		} else {
			st.Unverified++
		}
		if u.Usable() {
			st.Active++
		}
	}
	return st, nil
}

func cloneUser(u *models.User) models.User {
	c := *u
	c.RefreshTokens = append([]models.RefreshToken(nil), u.RefreshTokens...)
	return c
}
