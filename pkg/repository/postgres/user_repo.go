package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/fundwatch/pkg/auth"
)

// UserRepository implements auth.UserRepository backed by PostgreSQL (pgx).
// Email uniqueness is enforced by the table constraint, so the duplicate
// check is atomic even across processes.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) (*UserRepository, error) {
	repo := &UserRepository{pool: pool}
	if err := repo.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *UserRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			name TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		);
	`)
	return err
}

func (r *UserRepository) Create(ctx context.Context, user auth.User) (auth.User, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, name, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, user.Email, user.PasswordHash, user.Name, user.CreatedAt)
	if err := row.Scan(&user.ID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return auth.User{}, auth.ErrUserAlreadyExists
		}
		return auth.User{}, err
	}
	return user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (auth.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, name, created_at
		FROM users WHERE email = $1
	`, email)
	return scanUser(row)
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (auth.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, name, created_at
		FROM users WHERE id = $1
	`, id)
	return scanUser(row)
}

func scanUser(row pgx.Row) (auth.User, error) {
	var user auth.User
	var createdAt time.Time
	if err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Name, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.User{}, auth.ErrNotFound
		}
		return auth.User{}, err
	}
	user.CreatedAt = createdAt.UTC()
	return user, nil
}
