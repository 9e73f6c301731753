package memory

import (
	"context"
	"sync"
	"time"

	"github.com/artem13815/fundwatch/pkg/watchlist"
)

type fundKey struct {
	userID int64
	fundID string
}

// SavedFundRepository implements watchlist.Repository in process memory.
// The (user, fund) uniqueness check and the insert share one mutex hold.
type SavedFundRepository struct {
	mu     sync.Mutex
	byID   map[int64]watchlist.SavedFund
	byKey  map[fundKey]int64
	nextID int64
}

func NewSavedFundRepository() *SavedFundRepository {
	return &SavedFundRepository{
		byID:   make(map[int64]watchlist.SavedFund),
		byKey:  make(map[fundKey]int64),
		nextID: 1,
	}
}

func (r *SavedFundRepository) ListByUser(ctx context.Context, userID int64) ([]watchlist.SavedFund, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	funds := make([]watchlist.SavedFund, 0)
	for _, f := range r.byID {
		if f.UserID == userID {
			funds = append(funds, f)
		}
	}
	return funds, nil
}

func (r *SavedFundRepository) IsSaved(ctx context.Context, userID int64, fundID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.byKey[fundKey{userID, fundID}]
	return ok, nil
}

func (r *SavedFundRepository) Save(ctx context.Context, fund watchlist.SavedFund) (watchlist.SavedFund, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := fundKey{fund.UserID, fund.FundID}
	if _, exists := r.byKey[key]; exists {
		return watchlist.SavedFund{}, watchlist.ErrAlreadySaved
	}
	fund.ID = r.nextID
	r.nextID++
	if fund.SavedAt.IsZero() {
		fund.SavedAt = time.Now().UTC()
	}
	r.byID[fund.ID] = fund
	r.byKey[key] = fund.ID
	return fund, nil
}

func (r *SavedFundRepository) Remove(ctx context.Context, userID int64, fundID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := fundKey{userID, fundID}
	id, ok := r.byKey[key]
	if !ok {
		return false, nil
	}
	delete(r.byKey, key)
	delete(r.byID, id)
	return true, nil
}
