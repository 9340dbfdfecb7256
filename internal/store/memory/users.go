// Package memory provides in-memory implementations of the blog repository
// interfaces. They back unit tests and run without PostgreSQL; behavior
// mirrors the postgres implementations, including (nil, nil) for misses.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"inkpress/internal/models"
)

// UserRepository is an in-memory blog.UserRepository.
type UserRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]models.User
}

// NewUserRepository returns an empty in-memory user repository.
func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[uuid.UUID]models.User)}
}

// FindByUsername returns the user with the given username, or nil.
func (r *UserRepository) FindByUsername(_ context.Context, username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Username == username {
			copied := u
			return &copied, nil
		}
	}
	return nil, nil
}

// ExistsByUsername reports whether a user with the given username exists.
func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	u, err := r.FindByUsername(ctx, username)
	return u != nil, err
}

// ExistsByEmail reports whether a user with the given email exists,
// case-insensitively.
func (r *UserRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

// Create stores a new user, assigning id and timestamps.
func (r *UserRepository) Create(_ context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *user
	stored.ID = uuid.New()
	now := time.Now()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	r.users[stored.ID] = stored
	copied := stored
	return &copied, nil
}
