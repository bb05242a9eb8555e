package repositories

import (
	"context"
	"errors"
	"time"

	"mudra/internal/models"
)

var (
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrInsufficientBalance = errors.New("insufficient wallet balance")
	ErrDuplicateWallet     = errors.New("wallet already exists")
)

// WalletRepository defines wallet and ledger database operations. The
// mutation methods are server-side increments so concurrent writers to
// the same wallet never lose updates; Debit additionally guards
// against the balance going negative.
type WalletRepository interface {
	// Wallet operations
	Create(wallet *models.Wallet) error
	GetByID(id uint) (*models.Wallet, error)
	GetByUserID(userID uint) (*models.Wallet, error)

	// Balance mutation
	Credit(ctx context.Context, userID uint, amount int64) error
	Debit(ctx context.Context, userID uint, amount int64) error

	// Ledger operations
	CreateTransactions(ctx context.Context, txs []*models.Transaction) error
	GetTransactionHistory(ctx context.Context, userID uint, limit, offset int) ([]models.Transaction, error)
	SumAmountInWindow(ctx context.Context, kind models.TransactionKind, userID uint, asSender bool, start, end time.Time) (int64, error)

	// ExecuteInTransaction runs fn against a repository bound to one
	// database transaction; fn's writes commit or roll back together.
	ExecuteInTransaction(fn func(WalletRepository) error) error
}
