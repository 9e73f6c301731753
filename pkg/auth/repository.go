package auth

import (
	"context"
	"errors"
)

// Common errors used by repository/use cases
var (
	ErrNotFound           = errors.New("not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// UserRepository abstracts persistence concerns from the domain layer.
// Implementations may be in-memory, SQL, NoSQL, etc.
//
// Create must assign the id and detect a duplicate email atomically
// (no separate exists-check by the caller), returning ErrUserAlreadyExists.
type UserRepository interface {
	Create(ctx context.Context, user User) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id int64) (User, error)
}
