package user

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// MemoryRepository keeps users in process. It backs the service in tests and
// mirrors the unique email constraint of the users table.
type MemoryRepository struct {
	mu      sync.RWMutex
	byID    map[string]*User
	byEmail map[string]string
}

func NewMemoryRepository(seed ...User) *MemoryRepository {
	r := &MemoryRepository{
		byID:    make(map[string]*User),
		byEmail: make(map[string]string),
	}
	for i := range seed {
		u := seed[i]
		r.byID[u.ID] = &u
		r.byEmail[u.Email] = u.ID
	}
	return r
}

func (r *MemoryRepository) createUser(_ context.Context, user *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[user.Email]; taken {
		return ErrEmailAlreadyExists
	}
	user.CreatedAt = time.Now().UTC()
	stored := *user
	r.byID[user.ID] = &stored
	r.byEmail[user.Email] = user.ID
	return nil
}

func (r *MemoryRepository) emailExists(_ context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byEmail[email]
	return ok, nil
}

func (r *MemoryRepository) getUserIDByEmail(_ context.Context, email string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[email]
	if !ok {
		return "", ErrUserNotFound
	}
	return id, nil
}

func (r *MemoryRepository) userExists(_ context.Context, userID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byID[userID]
	return ok, nil
}

func (r *MemoryRepository) getMonthLimit(_ context.Context, userID string) (decimal.NullDecimal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[userID]
	if !ok {
		return decimal.NullDecimal{}, ErrUserNotFound
	}
	return u.MonthLimit, nil
}

func (r *MemoryRepository) updateMonthLimit(_ context.Context, userID string, limit decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[userID]
	if !ok {
		return ErrUserNotFound
	}
	u.MonthLimit = decimal.NewNullDecimal(limit)
	return nil
}

// PasswordHash exposes the stored hash for assertions.
func (r *MemoryRepository) PasswordHash(userID string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if u, ok := r.byID[userID]; ok {
		return u.PasswordHash
	}
	return ""
}
