// Package user provisions accounts. Credential handling lives in the
// external auth system; this service only owns the account record and
// its wallet.
package user

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"mudra/internal/errors"
	"mudra/internal/models"
	"mudra/internal/repositories/cache"

	"gorm.io/gorm"
)

type Service interface {
	// Create provisions an account and its wallet in one database
	// transaction: an account never exists without a wallet.
	Create(ctx context.Context, email, phone, name string, role models.Role) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type service struct {
	db    *gorm.DB
	cache *cache.CacheService
}

func NewService(db *gorm.DB, cacheService *cache.CacheService) Service {
	if db == nil {
		panic("db is required")
	}
	return &service{
		db:    db,
		cache: cacheService,
	}
}

func (s *service) Create(ctx context.Context, email, phone, name string, role models.Role) (*models.User, error) {
	user := &models.User{
		Email:  strings.ToLower(strings.TrimSpace(email)),
		Phone:  strings.TrimSpace(phone),
		Name:   name,
		Role:   role,
		Status: models.UserStatusActive,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return translateCreateError(err)
		}

		wallet := &models.Wallet{UserID: user.ID}
		if err := tx.Create(wallet).Error; err != nil {
			return fmt.Errorf("failed to create wallet: %w", err)
		}

		user.WalletID = &wallet.ID
		user.Wallet = wallet
		return tx.Model(user).Update("wallet_id", wallet.ID).Error
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// translateCreateError maps a unique violation on the email or phone
// column to the conflict domain error; anything else stays wrapped.
func translateCreateError(err error) error {
	if stderrors.Is(err, gorm.ErrDuplicatedKey) {
		return errors.ErrDuplicateAccount
	}
	return fmt.Errorf("failed to create user: %w", err)
}

func (s *service) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
