package entity

import (
	"time"
)

// User is the aggregate root for the account domain. It owns the Wallet
// created at registration, the optional public Profile and any Enrollments.
// Passwords are stored as bcrypt hashes in Password.
type User struct {
	ID        string
	Name      string
	Username  string
	Email     string
	Password  string
	Admin     bool
	AvatarURL string
	CreatedAt time.Time
	UpdatedAt time.Time
}
