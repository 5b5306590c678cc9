package store

import (
	"time"
)

type User struct {
	UserID       int64     `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	SessionKey   string    `json:"-"`
	Email        string    `json:"email"`
	UserRole     Role      `json:"role"`
	PasswordHash string    `json:"-"`
}

// Sanitized returns a copy safe to hand past the authentication
// boundary. The password hash never leaves the directory.
func (u *User) Sanitized() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.PasswordHash = ""
	return &c
}
