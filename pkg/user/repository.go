package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Errors shared by repository implementations and use cases.
var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already registered")

	ErrMissingField       = errors.New("name, email and password are required")
	ErrInvalidCredentials = errors.New("invalid login or password")
	ErrUpdateFailed       = errors.New("failed to update user")
	ErrDeleteFailed       = errors.New("failed to delete user")
)

// Repository abstracts persistence of user records. The service never
// caches records; every operation goes to the store.
type Repository interface {
	Create(ctx context.Context, u User) error
	// FindByLogin matches either the stored email or the stored name.
	// When several records share a name, the earliest-created one wins.
	FindByLogin(ctx context.Context, login string) (User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, u User) (User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
