package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/fundwatch/pkg/watchlist"
)

// SavedFundRepository stores watchlist entries in PostgreSQL. The
// (user_id, fund_id) unique constraint carries the one-entry-per-fund
// invariant; a violation surfaces as watchlist.ErrAlreadySaved.
type SavedFundRepository struct {
	pool *pgxpool.Pool
}

func NewSavedFundRepository(pool *pgxpool.Pool) (*SavedFundRepository, error) {
	r := &SavedFundRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *SavedFundRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS saved_funds (
	id BIGSERIAL PRIMARY KEY,
	user_id BIGINT NOT NULL,
	fund_id TEXT NOT NULL,
	fund_name TEXT NOT NULL,
	fund_category TEXT,
	nav TEXT,
	saved_at TIMESTAMPTZ NOT NULL,
	UNIQUE (user_id, fund_id)
);
CREATE INDEX IF NOT EXISTS idx_saved_funds_user ON saved_funds(user_id);
`)
	return err
}

func (r *SavedFundRepository) ListByUser(ctx context.Context, userID int64) ([]watchlist.SavedFund, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, user_id, fund_id, fund_name, fund_category, nav, saved_at
FROM saved_funds WHERE user_id = $1
ORDER BY saved_at
`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	funds := make([]watchlist.SavedFund, 0)
	for rows.Next() {
		var f watchlist.SavedFund
		var savedAt time.Time
		if err := rows.Scan(&f.ID, &f.UserID, &f.FundID, &f.FundName, &f.FundCategory, &f.NAV, &savedAt); err != nil {
			return nil, err
		}
		f.SavedAt = savedAt.UTC()
		funds = append(funds, f)
	}
	return funds, rows.Err()
}

func (r *SavedFundRepository) IsSaved(ctx context.Context, userID int64, fundID string) (bool, error) {
	row := r.pool.QueryRow(ctx, `
SELECT EXISTS (SELECT 1 FROM saved_funds WHERE user_id = $1 AND fund_id = $2)
`, userID, fundID)
	var saved bool
	if err := row.Scan(&saved); err != nil {
		return false, err
	}
	return saved, nil
}

func (r *SavedFundRepository) Save(ctx context.Context, fund watchlist.SavedFund) (watchlist.SavedFund, error) {
	if fund.SavedAt.IsZero() {
		fund.SavedAt = time.Now().UTC()
	}
	row := r.pool.QueryRow(ctx, `
INSERT INTO saved_funds (user_id, fund_id, fund_name, fund_category, nav, saved_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id
`, fund.UserID, fund.FundID, fund.FundName, fund.FundCategory, fund.NAV, fund.SavedAt)
	if err := row.Scan(&fund.ID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return watchlist.SavedFund{}, watchlist.ErrAlreadySaved
		}
		return watchlist.SavedFund{}, err
	}
	return fund, nil
}

func (r *SavedFundRepository) Remove(ctx context.Context, userID int64, fundID string) (bool, error) {
	cmd, err := r.pool.Exec(ctx, `
DELETE FROM saved_funds WHERE user_id = $1 AND fund_id = $2
`, userID, fundID)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}
