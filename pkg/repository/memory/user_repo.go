package memory

import (
	"context"
	"sync"

	"github.com/artem13815/fundwatch/pkg/auth"
)

// UserRepository implements auth.UserRepository in process memory.
// The email check and the insert happen under one mutex hold, so two
// concurrent registrations for the same email cannot both succeed.
type UserRepository struct {
	mu      sync.Mutex
	byID    map[int64]auth.User
	byEmail map[string]int64
	nextID  int64
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:    make(map[int64]auth.User),
		byEmail: make(map[string]int64),
		nextID:  1,
	}
}

func (r *UserRepository) Create(ctx context.Context, user auth.User) (auth.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byEmail[user.Email]; exists {
		return auth.User{}, auth.ErrUserAlreadyExists
	}
	user.ID = r.nextID
	r.nextID++
	r.byID[user.ID] = user
	r.byEmail[user.Email] = user.ID
	return user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (auth.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byEmail[email]
	if !ok {
		return auth.User{}, auth.ErrNotFound
	}
	return r.byID[id], nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (auth.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.byID[id]
	if !ok {
		return auth.User{}, auth.ErrNotFound
	}
	return user, nil
}
