package domain

import (
	"errors"
	"time"
)

// Role is the closed set of account roles. Routing dispatches on the parsed
// value, never on string prefixes.
type Role string

const (
	RoleUser      Role = "user"
	RoleAdmin     Role = "admin"
	RoleCounselor Role = "counselor"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrRoleNotFound = errors.New("account has no role assigned, contact the admin")
var ErrBadVerificationToken = errors.New("invalid or expired verification token")

// ParseRole resolves a stored role string to a Role. An empty or unknown
// value is a configuration error, not something the caller can retry.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser, RoleAdmin, RoleCounselor:
		return Role(s), nil
	default:
		return "", ErrRoleNotFound
	}
}

// User models an account in the system. New registrations always start as
// RoleUser with Verified false; any other role is assigned out-of-band.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Verified     bool      `json:"verified"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
