package auth

import "time"

// User is a domain entity representing a registered account.
// IDs are assigned sequentially by the repository, starting at 1.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Name         string
	CreatedAt    time.Time
}
