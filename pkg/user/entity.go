package user

import (
	"time"

	"github.com/google/uuid"
)

// User is a domain entity representing a registered account.
//
// The JSON shape mirrors what the frontend already consumes: the stored
// bcrypt digest is serialized under "password". See DESIGN.md for the
// data-exposure note on list responses.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password"`
	CreatedAt    time.Time `json:"createdAt"`
}
