package models

import (
	"time"

	"gorm.io/gorm"
)

// Wallet holds one balance per account, in minor units (poisha).
// Balances are mutated only by the distribution engine, through
// server-side increments inside a database transaction.
type Wallet struct {
	ID        uint  `gorm:"primarykey"`
	UserID    uint  `gorm:"uniqueIndex;not null"`
	Balance   int64 `gorm:"not null;default:0;check:balance >= 0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (w *Wallet) BeforeCreate(tx *gorm.DB) error {
	if w.Balance < 0 {
		w.Balance = 0
	}
	return nil
}
