package models

import "time"

// User is an account that can request API tokens.
// PasswordHash is a bcrypt hash and never leaves the server.
type User struct {
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
