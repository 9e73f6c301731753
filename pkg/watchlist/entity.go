package watchlist

import (
	"context"
	"errors"
	"time"
)

// SavedFund is one watchlist entry: a fund a user bookmarked from the
// external catalog. FundID is the catalog's opaque scheme code; NAV is
// an informational snapshot string taken at save time, never a number
// the service computes with.
type SavedFund struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"userId"`
	FundID       string    `json:"fundId"`
	FundName     string    `json:"fundName"`
	FundCategory *string   `json:"fundCategory"`
	NAV          *string   `json:"nav"`
	SavedAt      time.Time `json:"savedAt"`
}

var (
	ErrAlreadySaved = errors.New("fund already saved")
	ErrNotFound     = errors.New("saved fund not found")
)

// Repository is the persistence port for watchlist entries.
//
// Save must enforce the one-entry-per-(user,fund) invariant atomically
// and return ErrAlreadySaved on a duplicate. Remove reports via its
// bool whether an entry existed; absence is not an error at this layer.
type Repository interface {
	ListByUser(ctx context.Context, userID int64) ([]SavedFund, error)
	IsSaved(ctx context.Context, userID int64, fundID string) (bool, error)
	Save(ctx context.Context, fund SavedFund) (SavedFund, error)
	Remove(ctx context.Context, userID int64, fundID string) (bool, error)
}
