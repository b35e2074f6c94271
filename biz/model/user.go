package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 用户角色
const (
	RoleUser   = "user"
	RoleTrader = "trader"
	RoleAdmin  = "admin"
)

// User 用户模型（GORM），Balance 为 USD 现金余额
type User struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Email        string          `gorm:"column:email;uniqueIndex;not null" json:"email"`
	PasswordHash string          `gorm:"column:password_hash;not null" json:"-"`
	Role         string          `gorm:"column:role;not null;default:user" json:"role"`
	Balance      decimal.Decimal `gorm:"column:balance;type:decimal(32,18);not null;default:0" json:"balance"`
	CreatedAt    time.Time       `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"column:updated_at" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func ValidRole(r string) bool {
	switch r {
	case RoleUser, RoleTrader, RoleAdmin:
		return true
	}
	return false
}
