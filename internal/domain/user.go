package domain

import "time"

// User is the domain entity for an account. Email is the unique,
// immutable identity; PasswordHash is a bcrypt hash, never the plaintext.
type User struct {
	ID           int64
	Email        string
	FullName     *string
	PasswordHash string
	CreatedAt    time.Time
}
