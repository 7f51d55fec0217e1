package domain

import (
	"errors"
	"time"
)

var ErrUserNotFound = errors.New("user not found")
var ErrEmailTaken = errors.New("email already registered")

// User is a registered account. The password hash is optional: accounts
// created through the Riot login flow carry no local credential.
type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	RiotID       string     `json:"riot_id,omitempty"`
	PasswordHash string     `json:"-"`
	Avatar       string     `json:"avatar,omitempty"`
	BirthDate    *time.Time `json:"birth_date,omitempty"`
	RoleID       string     `json:"role_id"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// SafeUser is the projection exposed for any user other than the caller.
// Sensitive fields (email, password, birth date, role) are stripped.
type SafeUser struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	RiotID    string `json:"riot_id,omitempty"`
	Avatar    string `json:"avatar,omitempty"`
}

// Safe returns the user's safe projection.
func (u *User) Safe() SafeUser {
	return SafeUser{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		RiotID:    u.RiotID,
		Avatar:    u.Avatar,
	}
}

// Profile is the caller's own full view: the user plus the resolved role
// and friend list.
type Profile struct {
	User
	Role    *Role      `json:"role,omitempty"`
	Friends []SafeUser `json:"friends"`
}
