package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 出入金请求状态，pending 为唯一可审核状态
const (
	FundingStatusPending  = "pending"
	FundingStatusApproved = "approved"
	FundingStatusDeclined = "declined"
)

// Deposit 充值申请，审核通过时入账
type Deposit struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	UserID     uint            `gorm:"column:user_id;index;not null" json:"user_id"`
	Amount     decimal.Decimal `gorm:"column:amount;type:decimal(32,18);not null" json:"amount"`
	Method     string          `gorm:"column:method" json:"method"`
	Reference  string          `gorm:"column:reference" json:"reference"`
	Status     string          `gorm:"column:status;index;not null;default:pending" json:"status"`
	ReviewedBy *uint           `gorm:"column:reviewed_by" json:"reviewed_by,omitempty"`
	ReviewNote string          `gorm:"column:review_note" json:"review_note"`
	ReviewedAt *time.Time      `gorm:"column:reviewed_at" json:"reviewed_at,omitempty"`
	CreatedAt  time.Time       `gorm:"column:created_at" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"column:updated_at" json:"updated_at"`
}

func (Deposit) TableName() string {
	return "deposits"
}

// Withdrawal 提现申请，审核通过时扣款
type Withdrawal struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	UserID     uint            `gorm:"column:user_id;index;not null" json:"user_id"`
	Amount     decimal.Decimal `gorm:"column:amount;type:decimal(32,18);not null" json:"amount"`
	Address    string          `gorm:"column:address" json:"address"`
	Method     string          `gorm:"column:method" json:"method"`
	Status     string          `gorm:"column:status;index;not null;default:pending" json:"status"`
	ReviewedBy *uint           `gorm:"column:reviewed_by" json:"reviewed_by,omitempty"`
	ReviewNote string          `gorm:"column:review_note" json:"review_note"`
	ReviewedAt *time.Time      `gorm:"column:reviewed_at" json:"reviewed_at,omitempty"`
	CreatedAt  time.Time       `gorm:"column:created_at" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"column:updated_at" json:"updated_at"`
}

func (Withdrawal) TableName() string {
	return "withdrawals"
}
