package watchlist

import (
	"context"
	"strings"
)

// UseCase encapsulates the saved-funds workflow for one authenticated user.
type UseCase interface {
	List(ctx context.Context, userID int64) ([]SavedFund, error)
	Save(ctx context.Context, fund SavedFund) (SavedFund, error)
	Remove(ctx context.Context, userID int64, fundID string) error
	IsSaved(ctx context.Context, userID int64, fundID string) (bool, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) UseCase { return &service{repo: repo} }

func (s *service) List(ctx context.Context, userID int64) ([]SavedFund, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) Save(ctx context.Context, fund SavedFund) (SavedFund, error) {
	fund.FundID = strings.TrimSpace(fund.FundID)
	fund.FundName = strings.TrimSpace(fund.FundName)
	if fund.FundID == "" || fund.FundName == "" {
		return SavedFund{}, ErrValidation("fundId and fundName are required")
	}
	return s.repo.Save(ctx, fund)
}

func (s *service) Remove(ctx context.Context, userID int64, fundID string) error {
	removed, err := s.repo.Remove(ctx, userID, fundID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotFound
	}
	return nil
}

func (s *service) IsSaved(ctx context.Context, userID int64, fundID string) (bool, error) {
	return s.repo.IsSaved(ctx, userID, fundID)
}

// ErrValidation простая ошибка валидации.
type ErrValidation string

func (e ErrValidation) Error() string { return string(e) }
