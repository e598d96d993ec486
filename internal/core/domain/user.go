package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

var ErrUserExists = errors.New("username already taken")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrMissingCredentials = errors.New("missing credentials")

// DeletedUserPlaceholder is returned in rosters for enrollment ids that no
// longer resolve to a user record. The literal is part of the wire contract.
const DeletedUserPlaceholder = "Usuario eliminado"

// User models a registered member of the gym.
type User struct {
	ID           string
	Username     string
	FirstName    string
	LastName     string
	PasswordHash string
	IsAdmin      bool
	Role         string
	CreatedAt    time.Time
}

// EffectiveRole returns the stored role, defaulting to "user" for legacy
// documents written without one.
func (u *User) EffectiveRole() string {
	if u.Role == "" {
		return RoleUser
	}
	return u.Role
}
