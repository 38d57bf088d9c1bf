package user

import (
	"context"
	"fmt"
	"sync"

	"github.com/mycontacts/mycontacts/internal/apperr"
)

type memoryRepository struct {
	mu         sync.RWMutex
	users      map[string]User
	byEmail    map[string]string
	byUsername map[string]string
}

// NewMemoryRepository builds an in-memory user store for tests and local development.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		users:      make(map[string]User),
		byEmail:    make(map[string]string),
		byUsername: make(map[string]string),
	}
}

func (r *memoryRepository) Create(_ context.Context, user User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byEmail[user.Email]; exists {
		return fmt.Errorf("%w: email already registered", apperr.ErrConflict)
	}
	if _, exists := r.byUsername[user.Username]; exists {
		return fmt.Errorf("%w: username already taken", apperr.ErrConflict)
	}
	r.users[user.ID] = user
	r.byEmail[user.Email] = user.ID
	r.byUsername[user.Username] = user.ID
	return nil
}

func (r *memoryRepository) FindByEmail(_ context.Context, email string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[email]
	if !ok {
		return User{}, fmt.Errorf("user: %w", apperr.ErrNotFound)
	}
	return r.users[id], nil
}

func (r *memoryRepository) FindByID(_ context.Context, id string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return User{}, fmt.Errorf("user: %w", apperr.ErrNotFound)
	}
	return user, nil
}
