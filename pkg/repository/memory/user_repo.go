// Package memory provides an in-memory user.Repository. It backs tests and
// local development without a database.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/agenda-pj/accounts/pkg/user"
)

// UserRepository keeps records in insertion order so login matching and
// listing behave like the SQL implementation (earliest-created wins).
type UserRepository struct {
	mu    sync.RWMutex
	users []user.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) Create(ctx context.Context, u user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return user.ErrDuplicateEmail
		}
	}
	r.users = append(r.users, u)
	return nil
}

func (r *UserRepository) FindByLogin(ctx context.Context, login string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == login || u.Name == login {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (r *UserRepository) List(ctx context.Context) ([]user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]user.User, len(r.users))
	copy(out, r.users)
	return out, nil
}

func (r *UserRepository) Update(ctx context.Context, u user.User) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.users {
		if existing.ID != u.ID {
			continue
		}
		existing.Name = u.Name
		existing.Email = u.Email
		if u.PasswordHash != "" {
			existing.PasswordHash = u.PasswordHash
		}
		r.users[i] = existing
		return existing, nil
	}
	return user.User{}, user.ErrNotFound
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.users {
		if existing.ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return user.ErrNotFound
}
