package models

import (
	"gorm.io/gorm"
)

// Role is the account tier. Roles form a strict hierarchy:
// root > admin > agent > user.
type Role string

const (
	RoleRoot  Role = "root"
	RoleAdmin Role = "admin"
	RoleAgent Role = "agent"
	RoleUser  Role = "user"
)

// Account statuses
const (
	UserStatusActive  = "active"
	UserStatusBlocked = "blocked"
)

type User struct {
	gorm.Model
	Email    string  `gorm:"uniqueIndex;not null"`
	Phone    string  `gorm:"uniqueIndex;not null"`
	Name     string  `gorm:"not null"`
	Role     Role    `gorm:"default:'user'"`
	Status   string  `gorm:"default:'active'"`
	WalletID *uint   `gorm:"unique;default:null"`
	Wallet   *Wallet `gorm:"foreignKey:WalletID"`
}

// IsActive reports whether the account may participate in transactions.
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}
