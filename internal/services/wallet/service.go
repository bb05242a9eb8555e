// Package wallet exposes read operations over wallets and their
// ledger history. Balance mutation lives in the distribution engine.
package wallet

import (
	"context"
	stderrors "errors"
	"fmt"

	"mudra/internal/errors"
	"mudra/internal/models"
	"mudra/internal/repositories"
	"mudra/internal/repositories/cache"
	"mudra/internal/services/limits"
)

const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

type Service interface {
	GetWallet(ctx context.Context, userID uint) (*models.Wallet, error)
	GetBalance(ctx context.Context, userID uint) (int64, error)
	GetTransactionHistory(ctx context.Context, userID uint, limit, offset int) ([]models.Transaction, error)
	DailyTotals(ctx context.Context, role models.Role, userID uint) (limits.Totals, error)
}

type service struct {
	repo   repositories.WalletRepository
	cache  *cache.CacheService
	totals *limits.Aggregator
}

func NewService(repo repositories.WalletRepository, cacheService *cache.CacheService, totals *limits.Aggregator) Service {
	if repo == nil {
		panic("wallet repository is required")
	}
	if totals == nil {
		panic("aggregator is required")
	}
	return &service{
		repo:   repo,
		cache:  cacheService,
		totals: totals,
	}
}

func (s *service) GetWallet(ctx context.Context, userID uint) (*models.Wallet, error) {
	if s.cache != nil {
		if wallet, err := s.cache.GetWallet(ctx, userID); err == nil {
			return wallet, nil
		}
	}

	wallet, err := s.repo.GetByUserID(userID)
	if err != nil {
		if stderrors.Is(err, repositories.ErrWalletNotFound) {
			return nil, errors.ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}

	if s.cache != nil {
		_ = s.cache.CacheWallet(ctx, wallet)
	}
	return wallet, nil
}

func (s *service) GetBalance(ctx context.Context, userID uint) (int64, error) {
	wallet, err := s.GetWallet(ctx, userID)
	if err != nil {
		return 0, err
	}
	return wallet.Balance, nil
}

func (s *service) GetTransactionHistory(ctx context.Context, userID uint, limit, offset int) ([]models.Transaction, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.GetTransactionHistory(ctx, userID, limit, offset)
}

func (s *service) DailyTotals(ctx context.Context, role models.Role, userID uint) (limits.Totals, error) {
	return s.totals.DailyTotals(ctx, role, userID)
}
