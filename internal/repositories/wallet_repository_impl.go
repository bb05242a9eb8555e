package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mudra/internal/models"

	"gorm.io/gorm"
)

type walletRepository struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) WalletRepository {
	return &walletRepository{
		db: db,
	}
}

func (r *walletRepository) Create(wallet *models.Wallet) error {
	if err := r.db.Create(wallet).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateWallet
		}
		return fmt.Errorf("failed to create wallet: %w", err)
	}
	return nil
}

func (r *walletRepository) GetByID(id uint) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := r.db.First(&wallet, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return &wallet, nil
}

func (r *walletRepository) GetByUserID(userID uint) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := r.db.Where("user_id = ?", userID).First(&wallet).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return &wallet, nil
}

// Credit adds amount to the wallet balance with a server-side
// increment, never a read-then-overwrite.
func (r *walletRepository) Credit(ctx context.Context, userID uint, amount int64) error {
	result := r.db.WithContext(ctx).
		Model(&models.Wallet{}).
		Where("user_id = ?", userID).
		Update("balance", gorm.Expr("balance + ?", amount))
	if result.Error != nil {
		return fmt.Errorf("failed to credit wallet: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrWalletNotFound
	}
	return nil
}

// Debit subtracts amount from the wallet balance. The WHERE clause
// guards the balance so it can never go negative, even under
// concurrent debits of the same wallet: only one writer wins the row
// when funds run short.
func (r *walletRepository) Debit(ctx context.Context, userID uint, amount int64) error {
	result := r.db.WithContext(ctx).
		Model(&models.Wallet{}).
		Where("user_id = ? AND balance >= ?", userID, amount).
		Update("balance", gorm.Expr("balance - ?", amount))
	if result.Error != nil {
		return fmt.Errorf("failed to debit wallet: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		// Zero rows means either no wallet or not enough balance.
		var count int64
		if err := r.db.WithContext(ctx).Model(&models.Wallet{}).
			Where("user_id = ?", userID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to debit wallet: %w", err)
		}
		if count == 0 {
			return ErrWalletNotFound
		}
		return ErrInsufficientBalance
	}
	return nil
}

// CreateTransactions inserts ledger records as a single batch.
func (r *walletRepository) CreateTransactions(ctx context.Context, txs []*models.Transaction) error {
	if len(txs) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(txs).Error; err != nil {
		return fmt.Errorf("failed to create transactions: %w", err)
	}
	return nil
}

func (r *walletRepository) GetTransactionHistory(ctx context.Context, userID uint, limit, offset int) ([]models.Transaction, error) {
	var history []models.Transaction
	err := r.db.WithContext(ctx).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&history).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction history: %w", err)
	}
	return history, nil
}

// SumAmountInWindow totals committed ledger amounts of one kind for a
// user, from the sender or receiver perspective, within [start, end).
func (r *walletRepository) SumAmountInWindow(ctx context.Context, kind models.TransactionKind, userID uint, asSender bool, start, end time.Time) (int64, error) {
	column := "receiver_id"
	if asSender {
		column = "sender_id"
	}

	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where(column+" = ? AND kind = ? AND created_at >= ? AND created_at < ?", userID, kind, start, end).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum transactions: %w", err)
	}
	return total, nil
}

func (r *walletRepository) ExecuteInTransaction(fn func(WalletRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		txRepo := &walletRepository{db: tx}
		return fn(txRepo)
	})
}
