package users

import (
	"errors"
	"time"
)

// User is the public projection of a directory record. Credential hashes,
// confirmation flags and other auth-plumbing columns are never selected into
// this struct, so they cannot leak through any response that carries it.
type User struct {
	ID          string    `json:"id"`
	FirebaseUID string    `json:"-"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	PhotoURL    string    `json:"photo_url,omitempty"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

var ErrNotFound = errors.New("user not found")
