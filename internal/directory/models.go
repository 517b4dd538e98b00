package directory

import (
	"context"
	"errors"
	"time"
)

// User is a directory-managed identity record. PasswordHash never leaves
// this package except toward the password verifier; HTTP-facing code must
// use Public().
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Roles        []string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicUser is the wire-safe projection of a User.
type PublicUser struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
	Active   bool     `json:"active"`
}

func (u User) Public() PublicUser {
	roles := make([]string, len(u.Roles))
	copy(roles, u.Roles)
	return PublicUser{
		ID:       u.ID,
		Username: u.Username,
		Roles:    roles,
		Active:   u.Active,
	}
}

var (
	ErrNotFound  = errors.New("user not found")
	ErrDuplicate = errors.New("username already exists")
)

// Store is the user directory contract.
//
// Username equality is case-insensitive, matching the uniqueness constraint
// enforced at write time (UNIQUE (LOWER(username)) in Postgres). Lookups
// must use the same collation rule or duplicate-username races become
// possible.
type Store interface {
	FindByUsername(ctx context.Context, username string) (User, error)
	FindByID(ctx context.Context, id string) (User, error)
	List(ctx context.Context) ([]User, error)
	Create(ctx context.Context, u User) (User, error)
	Update(ctx context.Context, u User) (User, error)
	Delete(ctx context.Context, id string) (User, error)
}
