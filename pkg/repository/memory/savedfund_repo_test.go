package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/fundwatch/pkg/watchlist"
)

func newFund(userID int64, fundID string) watchlist.SavedFund {
	return watchlist.SavedFund{UserID: userID, FundID: fundID, FundName: "Fund " + fundID}
}

func TestSavedFundRepository_SaveCheckRemove(t *testing.T) {
	repo := NewSavedFundRepository()
	ctx := context.Background()

	saved, err := repo.Save(ctx, newFund(1, "119551"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), saved.ID)
	assert.False(t, saved.SavedAt.IsZero())

	ok, err := repo.IsSaved(ctx, 1, "119551")
	require.NoError(t, err)
	assert.True(t, ok)

	removed, err := repo.Remove(ctx, 1, "119551")
	require.NoError(t, err)
	assert.True(t, removed)

	ok, err = repo.IsSaved(ctx, 1, "119551")
	require.NoError(t, err)
	assert.False(t, ok)

	// Second remove is a no-op reported via the bool, not an error.
	removed, err = repo.Remove(ctx, 1, "119551")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestSavedFundRepository_DuplicateSave(t *testing.T) {
	repo := NewSavedFundRepository()
	ctx := context.Background()

	_, err := repo.Save(ctx, newFund(1, "119551"))
	require.NoError(t, err)

	_, err = repo.Save(ctx, newFund(1, "119551"))
	assert.ErrorIs(t, err, watchlist.ErrAlreadySaved)

	funds, err := repo.ListByUser(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, funds, 1)
}

func TestSavedFundRepository_ConcurrentSaveSameFund(t *testing.T) {
	repo := NewSavedFundRepository()
	ctx := context.Background()

	const n = 32
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = repo.Save(ctx, newFund(7, "100027"))
		}(i)
	}
	wg.Wait()

	saves := 0
	for _, err := range errs {
		if err == nil {
			saves++
		} else {
			assert.ErrorIs(t, err, watchlist.ErrAlreadySaved)
		}
	}
	assert.Equal(t, 1, saves)

	funds, err := repo.ListByUser(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, funds, 1)
}

func TestSavedFundRepository_ListIsPerUser(t *testing.T) {
	repo := NewSavedFundRepository()
	ctx := context.Background()

	_, err := repo.Save(ctx, newFund(1, "119551"))
	require.NoError(t, err)
	_, err = repo.Save(ctx, newFund(1, "100027"))
	require.NoError(t, err)
	_, err = repo.Save(ctx, newFund(2, "119551"))
	require.NoError(t, err)

	funds, err := repo.ListByUser(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, funds, 2)

	funds, err = repo.ListByUser(ctx, 3)
	require.NoError(t, err)
	assert.Empty(t, funds)

	// Same fund id under another user is an independent record.
	ok, err := repo.IsSaved(ctx, 2, "119551")
	require.NoError(t, err)
	assert.True(t, ok)
}
