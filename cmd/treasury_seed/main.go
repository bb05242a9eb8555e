// Command treasury_seed provisions the platform-root account and its
// treasury wallet with an opening float. Fee-bearing distributions
// cannot run until this has been done once per deployment.
package main

import (
	"log"

	"mudra/internal/config"
	"mudra/internal/models"
	"mudra/internal/repositories"

	"gorm.io/gorm"
)

func main() {
	config.LoadEnv()

	if err := repositories.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if repositories.DB != nil {
			if sqlDB, err := repositories.DB.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
	}()

	cfg := config.LoadTransactionConfig()
	openingFloat := config.GetInt64Env("TREASURY_OPENING_FLOAT", 100_000_000)
	phone := config.GetEnv("TREASURY_PHONE", "+8800000000000")

	var existing models.User
	if err := repositories.DB.Where("email = ?", cfg.TreasuryEmail).First(&existing).Error; err == nil {
		log.Printf("Treasury account %s already exists (id=%d)", cfg.TreasuryEmail, existing.ID)
		return
	}

	err := repositories.DB.Transaction(func(tx *gorm.DB) error {
		root := &models.User{
			Email:  cfg.TreasuryEmail,
			Phone:  phone,
			Name:   "Treasury",
			Role:   models.RoleRoot,
			Status: models.UserStatusActive,
		}
		if err := tx.Create(root).Error; err != nil {
			return err
		}

		wallet := &models.Wallet{UserID: root.ID, Balance: openingFloat}
		if err := tx.Create(wallet).Error; err != nil {
			return err
		}

		return tx.Model(root).Update("wallet_id", wallet.ID).Error
	})
	if err != nil {
		log.Fatalf("Failed to seed treasury: %v", err)
	}

	log.Printf("Treasury account %s created with opening float %d", cfg.TreasuryEmail, openingFloat)
}
