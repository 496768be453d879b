package model

import "time"

// User mirrors the 'users' table.  Passwords are stored as bcrypt hashes.
type User struct {
	ID           uint64
	Email        string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
